// service/deps.go
package service

import (
	"context"
	"time"

	"github.com/smartnest/sentinel/model"
)

// Cache is the read-through cache the services invalidate on every mutation.
// Satisfied by util.CacheService.
type Cache interface {
	GetUser(ctx context.Context, userID string) (*model.User, error)
	SetUser(ctx context.Context, user model.User) error
	DeleteUser(ctx context.Context, userID string) error
	GetEffectivePermissions(ctx context.Context, userID string) (*model.PermissionSet, error)
	// SetEffectivePermissions stores a resolved set. A ttl of zero means the
	// cache default; a positive ttl caps the entry's lifetime below it.
	SetEffectivePermissions(ctx context.Context, userID string, permissions model.PermissionSet, ttl time.Duration) error
	DeleteEffectivePermissions(ctx context.Context, userID string) error
	// TryLock takes a best-effort advisory lock on a named resource. It
	// reports false when another holder already has it.
	TryLock(ctx context.Context, resource string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, resource string) error
}

// Notifier is the fire-and-forget message sink. Satisfied by
// util.NotificationService.
type Notifier interface {
	NotifyAccessGranted(ctx context.Context, user model.User) error
	NotifyAccessRevoked(ctx context.Context, userID string) error
	NotifyAccessExpired(ctx context.Context, userID string) error
	NotifyReviewCompleted(ctx context.Context, entry model.ReviewHistoryEntry) error
	NotifyUserChange(ctx context.Context, changeType string, user model.User) error
	NotifyRoleChange(ctx context.Context, changeType string, role model.Role) error
	NotifyDeviceGroupChange(ctx context.Context, changeType string, group model.DeviceGroup) error
}
