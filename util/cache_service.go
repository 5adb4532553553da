// util/cache_service.go

package util

import (
	"context"
	"time"

	"github.com/smartnest/sentinel/db"
	"github.com/smartnest/sentinel/model"
)

type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return db.GetCachedUser(ctx, userID)
}

func (c *CacheService) SetUser(ctx context.Context, user model.User) error {
	return db.CacheUser(ctx, &user)
}

func (c *CacheService) DeleteUser(ctx context.Context, userID string) error {
	return db.DeleteCachedUser(ctx, userID)
}

func (c *CacheService) GetEffectivePermissions(ctx context.Context, userID string) (*model.PermissionSet, error) {
	return db.GetCachedEffectivePermissions(ctx, userID)
}

func (c *CacheService) SetEffectivePermissions(ctx context.Context, userID string, permissions model.PermissionSet, ttl time.Duration) error {
	return db.CacheEffectivePermissions(ctx, userID, &permissions, ttl)
}

func (c *CacheService) DeleteEffectivePermissions(ctx context.Context, userID string) error {
	return db.DeleteCachedEffectivePermissions(ctx, userID)
}

func (c *CacheService) TryLock(ctx context.Context, resource string, ttl time.Duration) (bool, error) {
	return db.LockResource(ctx, resource, ttl)
}

func (c *CacheService) Unlock(ctx context.Context, resource string) error {
	return db.UnlockResource(ctx, resource)
}
