// service/access_service_test.go
package service_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	sentinel_errors "github.com/smartnest/sentinel/errors"
	logger "github.com/smartnest/sentinel/logging"
	"github.com/smartnest/sentinel/model"
	"github.com/smartnest/sentinel/registry"
	"github.com/smartnest/sentinel/service"
	mock_audit "github.com/smartnest/sentinel/test/mock"
	"github.com/smartnest/sentinel/util"
)

func TestMain(m *testing.M) {
	logger.InitLogger("../logging")
	defer logger.Sync()
	os.Exit(m.Run())
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

type fakeCache struct{}

func (fakeCache) GetUser(ctx context.Context, userID string) (*model.User, error) { return nil, nil }
func (fakeCache) SetUser(ctx context.Context, user model.User) error              { return nil }
func (fakeCache) DeleteUser(ctx context.Context, userID string) error             { return nil }
func (fakeCache) GetEffectivePermissions(ctx context.Context, userID string) (*model.PermissionSet, error) {
	return nil, nil
}
func (fakeCache) SetEffectivePermissions(ctx context.Context, userID string, permissions model.PermissionSet, ttl time.Duration) error {
	return nil
}
func (fakeCache) DeleteEffectivePermissions(ctx context.Context, userID string) error { return nil }
func (fakeCache) TryLock(ctx context.Context, resource string, ttl time.Duration) (bool, error) {
	return true, nil
}
func (fakeCache) Unlock(ctx context.Context, resource string) error { return nil }

// contendedLockCache reports every lock as already held elsewhere.
type contendedLockCache struct {
	fakeCache
}

func (contendedLockCache) TryLock(ctx context.Context, resource string, ttl time.Duration) (bool, error) {
	return false, nil
}

// storingCache keeps effective-permission entries in memory and honours their
// TTL against the fixture clock, mirroring how the Redis entries age.
type storingCache struct {
	fakeCache
	clock   *fakeClock
	entries map[string]storedPermissions
}

type storedPermissions struct {
	permissions model.PermissionSet
	deadline    time.Time
}

func newStoringCache(clock *fakeClock) *storingCache {
	return &storingCache{clock: clock, entries: map[string]storedPermissions{}}
}

func (c *storingCache) GetEffectivePermissions(ctx context.Context, userID string) (*model.PermissionSet, error) {
	entry, ok := c.entries[userID]
	if !ok || !c.clock.Now().Before(entry.deadline) {
		return nil, nil
	}
	permissions := entry.permissions.Clone()
	return &permissions, nil
}

func (c *storingCache) SetEffectivePermissions(ctx context.Context, userID string, permissions model.PermissionSet, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	c.entries[userID] = storedPermissions{permissions: permissions.Clone(), deadline: c.clock.Now().Add(ttl)}
	return nil
}

func (c *storingCache) DeleteEffectivePermissions(ctx context.Context, userID string) error {
	delete(c.entries, userID)
	return nil
}

type fakeNotifier struct{}

func (fakeNotifier) NotifyAccessGranted(ctx context.Context, user model.User) error { return nil }
func (fakeNotifier) NotifyAccessRevoked(ctx context.Context, userID string) error   { return nil }
func (fakeNotifier) NotifyAccessExpired(ctx context.Context, userID string) error   { return nil }
func (fakeNotifier) NotifyReviewCompleted(ctx context.Context, entry model.ReviewHistoryEntry) error {
	return nil
}
func (fakeNotifier) NotifyUserChange(ctx context.Context, changeType string, user model.User) error {
	return nil
}
func (fakeNotifier) NotifyRoleChange(ctx context.Context, changeType string, role model.Role) error {
	return nil
}
func (fakeNotifier) NotifyDeviceGroupChange(ctx context.Context, changeType string, group model.DeviceGroup) error {
	return nil
}

func newAuditMock() *mock_audit.MockAuditService {
	auditMock := &mock_audit.MockAuditService{}
	auditMock.On("LogAction", mock.Anything, mock.Anything).Return(nil)
	return auditMock
}

func newAccessFixture(t *testing.T) (*service.AccessService, *registry.Store, *fakeClock) {
	t.Helper()
	store := registry.NewStore()
	clock := &fakeClock{now: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)}
	svc := service.NewAccessService(
		store,
		util.NewValidationUtil(),
		fakeCache{},
		fakeNotifier{},
		util.NewEventBus(),
		newAuditMock(),
		clock,
	)
	return svc, store, clock
}

func seedMember(t *testing.T, store *registry.Store, id string) {
	t.Helper()
	err := store.CreateUser(model.User{
		ID:           id,
		Name:         "Jamie Rivera",
		Email:        id + "@example.com",
		RoleID:       model.RoleMember,
		Permissions:  model.Permissions(model.CapabilityView, model.CapabilityControl),
		DeviceGroups: []string{"living-room"},
		Status:       model.StatusActive,
	})
	assert.NoError(t, err)
}

func TestGrantTemporaryAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsDurationOutsideAllowedSet", func(t *testing.T) {
		svc, store, _ := newAccessFixture(t)
		seedMember(t, store, "u1")

		for _, hours := range []int{0, -4, 2, 3, 5, 7, 9, 25, 100, 169} {
			_, err := svc.GrantTemporaryAccess(ctx, "u1", hours, "", "admin-1")
			assert.ErrorIs(t, err, sentinel_errors.ErrInvalidDuration)
		}

		user, err := store.GetUser("u1")
		assert.NoError(t, err)
		assert.Nil(t, user.TemporaryAccess)
	})

	t.Run("AcceptsEveryAllowedDuration", func(t *testing.T) {
		svc, store, clock := newAccessFixture(t)
		seedMember(t, store, "u1")

		for _, hours := range model.AllowedGrantDurationsHours {
			user, err := svc.GrantTemporaryAccess(ctx, "u1", hours, "", "admin-1")
			assert.NoError(t, err)
			assert.Equal(t, clock.now.Add(time.Duration(hours)*time.Hour), user.TemporaryAccess.ExpiresAt)
		}
	})

	t.Run("UserNotFound", func(t *testing.T) {
		svc, _, _ := newAccessFixture(t)

		_, err := svc.GrantTemporaryAccess(ctx, "nobody", 4, "", "admin-1")
		assert.ErrorIs(t, err, sentinel_errors.ErrUserNotFound)
	})

	t.Run("GrantWithoutTemplateKeepsBaseSet", func(t *testing.T) {
		svc, store, clock := newAccessFixture(t)
		seedMember(t, store, "u1")

		user, err := svc.GrantTemporaryAccess(ctx, "u1", 4, "", "admin-1")
		assert.NoError(t, err)
		assert.NotNil(t, user.TemporaryAccess)
		assert.Equal(t, clock.now.Add(4*time.Hour), user.TemporaryAccess.ExpiresAt)
		assert.True(t, user.TemporaryAccess.GrantedPermissions.Equal(model.Permissions(model.CapabilityView, model.CapabilityControl)))
		assert.Equal(t, []string{"living-room"}, user.TemporaryAccess.GrantedDeviceGroups)
		assert.Empty(t, user.TemporaryAccess.SourceTemplateName)
		assert.Equal(t, model.StatusActive, user.Status)
	})

	t.Run("GrantWithTemplateReplacesSet", func(t *testing.T) {
		svc, store, clock := newAccessFixture(t)
		seedMember(t, store, "u1")
		err := store.CreateTemplate(model.AccessTemplate{
			Name:         "babysitter",
			Permissions:  model.Permissions(model.CapabilityView, model.CapabilityControl, model.CapabilityNotifications),
			DeviceGroups: []string{"kids-room", "kitchen"},
		})
		assert.NoError(t, err)

		user, err := svc.GrantTemporaryAccess(ctx, "u1", 8, "babysitter", "admin-1")
		assert.NoError(t, err)
		assert.Equal(t, clock.now.Add(8*time.Hour), user.TemporaryAccess.ExpiresAt)
		assert.Equal(t, "babysitter", user.TemporaryAccess.SourceTemplateName)
		assert.True(t, user.TemporaryAccess.GrantedPermissions.Has(model.CapabilityNotifications))
		assert.False(t, user.TemporaryAccess.GrantedPermissions.Has(model.CapabilityAutomation))
		assert.Equal(t, []string{"kids-room", "kitchen"}, user.TemporaryAccess.GrantedDeviceGroups)

		// The base record is untouched; only the overlay carries the
		// template's scope.
		stored, err := store.GetUser("u1")
		assert.NoError(t, err)
		assert.Equal(t, []string{"living-room"}, stored.DeviceGroups)
	})

	t.Run("UnknownTemplateLeavesUserUntouched", func(t *testing.T) {
		svc, store, _ := newAccessFixture(t)
		seedMember(t, store, "u1")

		_, err := svc.GrantTemporaryAccess(ctx, "u1", 4, "no-such-template", "admin-1")
		assert.ErrorIs(t, err, sentinel_errors.ErrTemplateNotFound)

		user, err := store.GetUser("u1")
		assert.NoError(t, err)
		assert.Nil(t, user.TemporaryAccess)
	})

	t.Run("RegrantOverwritesPriorGrant", func(t *testing.T) {
		svc, store, clock := newAccessFixture(t)
		seedMember(t, store, "u1")

		_, err := svc.GrantTemporaryAccess(ctx, "u1", 24, "", "admin-1")
		assert.NoError(t, err)

		clock.Advance(2 * time.Hour)
		user, err := svc.GrantTemporaryAccess(ctx, "u1", 1, "", "admin-1")
		assert.NoError(t, err)
		assert.Equal(t, clock.now.Add(time.Hour), user.TemporaryAccess.ExpiresAt)

		stored, err := store.GetUser("u1")
		assert.NoError(t, err)
		assert.Equal(t, user.TemporaryAccess.ExpiresAt, stored.TemporaryAccess.ExpiresAt)
	})

	t.Run("GrantActivatesInactiveUser", func(t *testing.T) {
		svc, store, _ := newAccessFixture(t)
		err := store.CreateUser(model.User{
			ID:          "u2",
			Name:        "Sam Okafor",
			Email:       "u2@example.com",
			RoleID:      model.RoleRestricted,
			Permissions: model.Permissions(model.CapabilityView),
			Status:      model.StatusInactive,
		})
		assert.NoError(t, err)

		user, err := svc.GrantTemporaryAccess(ctx, "u2", 12, "", "admin-1")
		assert.NoError(t, err)
		assert.Equal(t, model.StatusActive, user.Status)
	})
}

func TestRevokeTemporaryAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("RevokeClearsGrantOnly", func(t *testing.T) {
		svc, store, _ := newAccessFixture(t)
		seedMember(t, store, "u1")
		_, err := svc.GrantTemporaryAccess(ctx, "u1", 4, "", "admin-1")
		assert.NoError(t, err)

		err = svc.RevokeTemporaryAccess(ctx, "u1", "admin-1")
		assert.NoError(t, err)

		user, err := store.GetUser("u1")
		assert.NoError(t, err)
		assert.Nil(t, user.TemporaryAccess)
		// Revocation is not a demotion.
		assert.Equal(t, model.RoleMember, user.RoleID)
		assert.Equal(t, model.StatusActive, user.Status)
	})

	t.Run("RevokeWithoutGrant", func(t *testing.T) {
		svc, store, _ := newAccessFixture(t)
		seedMember(t, store, "u1")

		err := svc.RevokeTemporaryAccess(ctx, "u1", "admin-1")
		assert.ErrorIs(t, err, sentinel_errors.ErrNoTemporaryAccess)
	})

	t.Run("RevokeUnknownUser", func(t *testing.T) {
		svc, _, _ := newAccessFixture(t)

		err := svc.RevokeTemporaryAccess(ctx, "nobody", "admin-1")
		assert.ErrorIs(t, err, sentinel_errors.ErrUserNotFound)
	})
}

func TestSweepExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("DemotesOnlyExpiredGrants", func(t *testing.T) {
		svc, store, clock := newAccessFixture(t)
		seedMember(t, store, "expired")
		seedMember(t, store, "fresh")
		seedMember(t, store, "no-grant")

		_, err := svc.GrantTemporaryAccess(ctx, "expired", 1, "", "admin-1")
		assert.NoError(t, err)
		_, err = svc.GrantTemporaryAccess(ctx, "fresh", 24, "", "admin-1")
		assert.NoError(t, err)

		clock.Advance(2 * time.Hour)
		demoted, err := svc.SweepExpired(ctx, clock.Now())
		assert.NoError(t, err)
		assert.Equal(t, []string{"expired"}, demoted)

		swept, err := store.GetUser("expired")
		assert.NoError(t, err)
		assert.Nil(t, swept.TemporaryAccess)
		assert.Equal(t, model.RoleRestricted, swept.RoleID)
		assert.Equal(t, model.StatusInactive, swept.Status)

		untouched, err := store.GetUser("fresh")
		assert.NoError(t, err)
		assert.NotNil(t, untouched.TemporaryAccess)
		assert.Equal(t, model.RoleMember, untouched.RoleID)

		plain, err := store.GetUser("no-grant")
		assert.NoError(t, err)
		assert.Equal(t, model.RoleMember, plain.RoleID)
		assert.Equal(t, model.StatusActive, plain.Status)
	})

	t.Run("BoundaryInstantCountsAsExpired", func(t *testing.T) {
		svc, store, clock := newAccessFixture(t)
		seedMember(t, store, "u1")

		_, err := svc.GrantTemporaryAccess(ctx, "u1", 1, "", "admin-1")
		assert.NoError(t, err)

		clock.Advance(time.Hour)
		demoted, err := svc.SweepExpired(ctx, clock.Now())
		assert.NoError(t, err)
		assert.Equal(t, []string{"u1"}, demoted)
	})

	t.Run("SecondSweepIsNoOp", func(t *testing.T) {
		svc, store, clock := newAccessFixture(t)
		seedMember(t, store, "u1")

		_, err := svc.GrantTemporaryAccess(ctx, "u1", 1, "", "admin-1")
		assert.NoError(t, err)

		clock.Advance(2 * time.Hour)
		demoted, err := svc.SweepExpired(ctx, clock.Now())
		assert.NoError(t, err)
		assert.Len(t, demoted, 1)

		demoted, err = svc.SweepExpired(ctx, clock.Now())
		assert.NoError(t, err)
		assert.Empty(t, demoted)
	})

	t.Run("SkipsPassWhenLockHeldElsewhere", func(t *testing.T) {
		store := registry.NewStore()
		clock := &fakeClock{now: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)}
		svc := service.NewAccessService(
			store,
			util.NewValidationUtil(),
			contendedLockCache{},
			fakeNotifier{},
			util.NewEventBus(),
			newAuditMock(),
			clock,
		)
		seedMember(t, store, "u1")

		_, err := svc.GrantTemporaryAccess(ctx, "u1", 1, "", "admin-1")
		assert.NoError(t, err)

		clock.Advance(2 * time.Hour)
		demoted, err := svc.SweepExpired(ctx, clock.Now())
		assert.NoError(t, err)
		assert.Empty(t, demoted)

		// The concurrent holder owns this pass; the grant stays in place
		// for its sweep to collect.
		u, err := store.GetUser("u1")
		assert.NoError(t, err)
		assert.NotNil(t, u.TemporaryAccess)
	})
}

func TestEffectivePermissions(t *testing.T) {
	ctx := context.Background()

	t.Run("RoleSetWithoutGrant", func(t *testing.T) {
		svc, store, _ := newAccessFixture(t)
		seedMember(t, store, "u1")

		permissions, err := svc.EffectivePermissions(ctx, "u1")
		assert.NoError(t, err)
		assert.True(t, permissions.Has(model.CapabilityView))
		assert.True(t, permissions.Has(model.CapabilityAutomation))
		assert.False(t, permissions.Has(model.CapabilityUsers))
	})

	t.Run("UnexpiredGrantWins", func(t *testing.T) {
		svc, store, _ := newAccessFixture(t)
		seedMember(t, store, "u1")
		err := store.CreateTemplate(model.AccessTemplate{
			Name:        "security-check",
			Permissions: model.Permissions(model.CapabilitySecurity),
		})
		assert.NoError(t, err)

		_, err = svc.GrantTemporaryAccess(ctx, "u1", 4, "security-check", "admin-1")
		assert.NoError(t, err)

		permissions, err := svc.EffectivePermissions(ctx, "u1")
		assert.NoError(t, err)
		assert.True(t, permissions.Has(model.CapabilitySecurity))
		// Replacement, not union: the member's own capabilities are gone
		// for the grant's lifetime.
		assert.False(t, permissions.Has(model.CapabilityControl))
	})

	t.Run("ExpiredGrantFallsBackToRole", func(t *testing.T) {
		svc, store, clock := newAccessFixture(t)
		seedMember(t, store, "u1")
		err := store.CreateTemplate(model.AccessTemplate{
			Name:        "security-check",
			Permissions: model.Permissions(model.CapabilitySecurity),
		})
		assert.NoError(t, err)

		_, err = svc.GrantTemporaryAccess(ctx, "u1", 1, "security-check", "admin-1")
		assert.NoError(t, err)

		clock.Advance(90 * time.Minute)
		permissions, err := svc.EffectivePermissions(ctx, "u1")
		assert.NoError(t, err)
		assert.False(t, permissions.Has(model.CapabilitySecurity))
		assert.True(t, permissions.Has(model.CapabilityControl))
	})

	t.Run("CachedGrantSetDoesNotOutliveGrant", func(t *testing.T) {
		store := registry.NewStore()
		clock := &fakeClock{now: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)}
		cache := newStoringCache(clock)
		svc := service.NewAccessService(
			store,
			util.NewValidationUtil(),
			cache,
			fakeNotifier{},
			util.NewEventBus(),
			newAuditMock(),
			clock,
		)
		seedMember(t, store, "u1")
		err := store.CreateTemplate(model.AccessTemplate{
			Name:        "security-check",
			Permissions: model.Permissions(model.CapabilitySecurity),
		})
		assert.NoError(t, err)

		_, err = svc.GrantTemporaryAccess(ctx, "u1", 1, "security-check", "admin-1")
		assert.NoError(t, err)

		// First resolution populates the cache while the grant is live.
		permissions, err := svc.EffectivePermissions(ctx, "u1")
		assert.NoError(t, err)
		assert.True(t, permissions.Has(model.CapabilitySecurity))

		// Past expiry, with no sweep having run, the stale cached set must
		// not be served: the entry's lifetime is capped at the grant's.
		clock.Advance(2 * time.Hour)
		permissions, err = svc.EffectivePermissions(ctx, "u1")
		assert.NoError(t, err)
		assert.False(t, permissions.Has(model.CapabilitySecurity))
		assert.True(t, permissions.Has(model.CapabilityControl))
	})

	t.Run("AdminIsUnrestricted", func(t *testing.T) {
		svc, store, _ := newAccessFixture(t)
		err := store.CreateUser(model.User{
			ID:     "admin-1",
			Name:   "Alex Chen",
			Email:  "admin@example.com",
			RoleID: model.RoleAdmin,
			Status: model.StatusActive,
		})
		assert.NoError(t, err)

		permissions, err := svc.EffectivePermissions(ctx, "admin-1")
		assert.NoError(t, err)
		for _, capability := range model.AllCapabilities {
			assert.True(t, permissions.Has(capability))
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		svc, _, _ := newAccessFixture(t)

		_, err := svc.EffectivePermissions(ctx, "nobody")
		assert.ErrorIs(t, err, sentinel_errors.ErrUserNotFound)
	})
}

func TestEffectiveDeviceGroups(t *testing.T) {
	ctx := context.Background()

	svc, store, clock := newAccessFixture(t)
	seedMember(t, store, "u1")
	err := store.CreateTemplate(model.AccessTemplate{
		Name:         "guest-pass",
		Permissions:  model.Permissions(model.CapabilityView),
		DeviceGroups: []string{"guest-room"},
	})
	assert.NoError(t, err)

	groups, err := svc.EffectiveDeviceGroups(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"living-room"}, groups)

	_, err = svc.GrantTemporaryAccess(ctx, "u1", 4, "guest-pass", "admin-1")
	assert.NoError(t, err)

	groups, err = svc.EffectiveDeviceGroups(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"guest-room"}, groups)

	clock.Advance(5 * time.Hour)
	groups, err = svc.EffectiveDeviceGroups(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"living-room"}, groups)
}

func TestAccessTemplates(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateListDelete", func(t *testing.T) {
		svc, _, _ := newAccessFixture(t)

		created, err := svc.CreateTemplate(ctx, model.AccessTemplate{
			Name:        "cleaner",
			Permissions: model.Permissions(model.CapabilityView, model.CapabilityControl),
		})
		assert.NoError(t, err)
		assert.Equal(t, "cleaner", created.Name)
		assert.False(t, created.CreatedAt.IsZero())

		templates, err := svc.ListTemplates(ctx)
		assert.NoError(t, err)
		assert.Len(t, templates, 1)

		err = svc.DeleteTemplate(ctx, "cleaner")
		assert.NoError(t, err)

		templates, err = svc.ListTemplates(ctx)
		assert.NoError(t, err)
		assert.Empty(t, templates)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		svc, _, _ := newAccessFixture(t)

		_, err := svc.CreateTemplate(ctx, model.AccessTemplate{
			Name:        "cleaner",
			Permissions: model.Permissions(model.CapabilityView),
		})
		assert.NoError(t, err)

		_, err = svc.CreateTemplate(ctx, model.AccessTemplate{
			Name:        "cleaner",
			Permissions: model.Permissions(model.CapabilityView),
		})
		assert.ErrorIs(t, err, sentinel_errors.ErrTemplateConflict)
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		svc, _, _ := newAccessFixture(t)

		err := svc.DeleteTemplate(ctx, "no-such-template")
		assert.ErrorIs(t, err, sentinel_errors.ErrTemplateNotFound)
	})
}
