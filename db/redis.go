// db/redis.go
package db

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/smartnest/sentinel/logging"
	"github.com/smartnest/sentinel/model"
)

var (
	RedisClient   *redis.Client
	encryptionKey []byte
)

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	encryptionKey = []byte(viper.GetString("redis.encryptionKey"))
	if len(encryptionKey) != 32 {
		return fmt.Errorf("invalid encryption key length: must be 32 bytes")
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// CacheUser stores a user record encrypted; the record carries PII.
func CacheUser(ctx context.Context, user *model.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	encryptedUser, err := encrypt(userJSON)
	if err != nil {
		return fmt.Errorf("failed to encrypt user: %w", err)
	}

	key := fmt.Sprintf("user:%s", user.ID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, base64.StdEncoding.EncodeToString(encryptedUser), defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	logger.Debug("User cached successfully", zap.String("userID", user.ID))
	return nil
}

func GetCachedUser(ctx context.Context, userID string) (*model.User, error) {
	key := fmt.Sprintf("user:%s", userID)
	encryptedUserStr, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("User not found in cache", zap.String("userID", userID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user from cache: %w", err)
	}

	encryptedUser, err := base64.StdEncoding.DecodeString(encryptedUserStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	userJSON, err := decrypt(encryptedUser)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt user: %w", err)
	}

	var user model.User
	err = json.Unmarshal(userJSON, &user)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	logger.Debug("User retrieved from cache", zap.String("userID", userID))
	return &user, nil
}

func DeleteCachedUser(ctx context.Context, userID string) error {
	key := fmt.Sprintf("user:%s", userID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete user from cache: %w", err)
	}
	logger.Debug("User deleted from cache", zap.String("userID", userID))
	return nil
}

// CacheEffectivePermissions stores a resolved permission set. The ttl, when
// positive, caps the entry's lifetime below the configured default so a set
// resolved from a temporary grant never outlives the grant itself.
func CacheEffectivePermissions(ctx context.Context, userID string, permissions *model.PermissionSet, ttl time.Duration) error {
	permissionsJSON, err := json.Marshal(permissions)
	if err != nil {
		return fmt.Errorf("failed to marshal permissions: %w", err)
	}

	key := fmt.Sprintf("effective:%s", userID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	if ttl <= 0 || (defaultTTL > 0 && ttl > defaultTTL) {
		ttl = defaultTTL
	}
	err = RedisClient.Set(ctx, key, permissionsJSON, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to cache effective permissions: %w", err)
	}

	logger.Debug("Effective permissions cached successfully", zap.String("userID", userID))
	return nil
}

func GetCachedEffectivePermissions(ctx context.Context, userID string) (*model.PermissionSet, error) {
	key := fmt.Sprintf("effective:%s", userID)
	permissionsJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Effective permissions not found in cache", zap.String("userID", userID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get effective permissions from cache: %w", err)
	}

	var permissions model.PermissionSet
	err = json.Unmarshal([]byte(permissionsJSON), &permissions)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal effective permissions: %w", err)
	}

	logger.Debug("Effective permissions retrieved from cache", zap.String("userID", userID))
	return &permissions, nil
}

func DeleteCachedEffectivePermissions(ctx context.Context, userID string) error {
	key := fmt.Sprintf("effective:%s", userID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete effective permissions from cache: %w", err)
	}
	logger.Debug("Effective permissions deleted from cache", zap.String("userID", userID))
	return nil
}

func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}

func LockResource(ctx context.Context, resourceName string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:%s", resourceName)
	locked, err := RedisClient.SetNX(ctx, key, "locked", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	logger.Debug("Lock acquisition attempt",
		zap.String("resource", resourceName),
		zap.Bool("locked", locked))
	return locked, nil
}

func UnlockResource(ctx context.Context, resourceName string) error {
	key := fmt.Sprintf("lock:%s", resourceName)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	logger.Debug("Lock released", zap.String("resource", resourceName))
	return nil
}
