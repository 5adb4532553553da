// service/access_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/smartnest/sentinel/audit"
	sentinel_errors "github.com/smartnest/sentinel/errors"
	logger "github.com/smartnest/sentinel/logging"
	"github.com/smartnest/sentinel/model"
	"github.com/smartnest/sentinel/registry"
	"github.com/smartnest/sentinel/util"
)

const (
	sweepLockResource = "access-sweep"
	sweepLockTTL      = time.Minute
)

// IAccessService defines the interface for temporary access operations
type IAccessService interface {
	GrantTemporaryAccess(ctx context.Context, userID string, durationHours int, templateName string, grantorID string) (*model.User, error)
	RevokeTemporaryAccess(ctx context.Context, userID string, revokerID string) error
	SweepExpired(ctx context.Context, now time.Time) ([]string, error)
	EffectivePermissions(ctx context.Context, userID string) (model.PermissionSet, error)
	EffectiveDeviceGroups(ctx context.Context, userID string) ([]string, error)
	ListTemplates(ctx context.Context) ([]*model.AccessTemplate, error)
	CreateTemplate(ctx context.Context, template model.AccessTemplate) (*model.AccessTemplate, error)
	DeleteTemplate(ctx context.Context, name string) error
}

// AccessService issues, revokes, and expires temporary access grants and
// resolves a user's effective permission set.
type AccessService struct {
	store           *registry.Store
	validationUtil  *util.ValidationUtil
	cacheService    Cache
	notificationSvc Notifier
	eventBus        *util.EventBus
	auditService    audit.Service
	clock           util.Clock
}

var _ IAccessService = &AccessService{}

// NewAccessService creates a new instance of AccessService
func NewAccessService(store *registry.Store, validationUtil *util.ValidationUtil, cacheService Cache, notificationSvc Notifier, eventBus *util.EventBus, auditService audit.Service, clock util.Clock) *AccessService {
	service := &AccessService{
		store:           store,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
		auditService:    auditService,
		clock:           clock,
	}

	// Set up event subscriptions
	eventBus.Subscribe("access.granted", service.handleAccessGranted)
	eventBus.Subscribe("access.revoked", service.handleAccessRevoked)
	eventBus.Subscribe("access.expired", service.handleAccessExpired)

	return service
}

func (s *AccessService) handleAccessGranted(ctx context.Context, event util.Event) error {
	user := event.Payload.(model.User)
	logger.Info("Access granted event received", zap.String("userID", user.ID))

	if err := s.notificationSvc.NotifyAccessGranted(ctx, user); err != nil {
		logger.Warn("Failed to send grant notification", zap.Error(err), zap.String("userID", user.ID))
	}
	return nil
}

func (s *AccessService) handleAccessRevoked(ctx context.Context, event util.Event) error {
	userID := event.Payload.(string)
	logger.Info("Access revoked event received", zap.String("userID", userID))

	if err := s.notificationSvc.NotifyAccessRevoked(ctx, userID); err != nil {
		logger.Warn("Failed to send revoke notification", zap.Error(err), zap.String("userID", userID))
	}
	return nil
}

func (s *AccessService) handleAccessExpired(ctx context.Context, event util.Event) error {
	userID := event.Payload.(string)
	logger.Info("Access expired event received", zap.String("userID", userID))

	if err := s.notificationSvc.NotifyAccessExpired(ctx, userID); err != nil {
		logger.Warn("Failed to send expiry notification", zap.Error(err), zap.String("userID", userID))
	}
	return nil
}

// GrantTemporaryAccess attaches a temporary access record to the target user.
// The duration must be one of the enumerated allowed values; the check runs
// before any state mutation. A prior grant is overwritten, never stacked.
// When a template is named, the user's permissions and device groups are
// replaced by the template's for the grant duration; otherwise the user keeps
// their existing set and only the expiry is stamped. Issuing a grant always
// activates the user.
func (s *AccessService) GrantTemporaryAccess(ctx context.Context, userID string, durationHours int, templateName string, grantorID string) (*model.User, error) {
	if !model.IsAllowedGrantDuration(durationHours) {
		return nil, sentinel_errors.ErrInvalidDuration
	}

	var template *model.AccessTemplate
	if templateName != "" {
		var err error
		template, err = s.store.GetTemplate(templateName)
		if err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	expiresAt := now.Add(time.Duration(durationHours) * time.Hour)

	user, err := s.store.MutateUser(userID, func(u *model.User) error {
		grant := &model.TemporaryAccess{
			ExpiresAt:           expiresAt,
			GrantedPermissions:  u.Permissions.Clone(),
			GrantedDeviceGroups: append([]string(nil), u.DeviceGroups...),
		}
		if template != nil {
			grant.GrantedPermissions = template.Permissions.Clone()
			grant.GrantedDeviceGroups = append([]string(nil), template.DeviceGroups...)
			grant.SourceTemplateName = template.Name
		}
		u.TemporaryAccess = grant
		u.Status = model.StatusActive
		u.UpdatedAt = now
		return nil
	})
	if err != nil {
		logger.Error("Error granting temporary access", zap.Error(err), zap.String("userID", userID), zap.String("grantorID", grantorID))
		return nil, err
	}

	s.invalidateUserCaches(ctx, userID)

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "access.granted", *user)

	s.logAudit(ctx, audit.ActionGrantAccess, grantorID, userID, map[string]interface{}{
		"duration_hours": durationHours,
		"template":       templateName,
		"expires_at":     expiresAt.Format(time.RFC3339),
	})

	logger.Info("Temporary access granted",
		zap.String("userID", userID),
		zap.String("grantorID", grantorID),
		zap.Int("durationHours", durationHours),
		zap.String("template", templateName),
		zap.Time("expiresAt", expiresAt))
	return user, nil
}

// RevokeTemporaryAccess clears an active grant without demoting the user.
func (s *AccessService) RevokeTemporaryAccess(ctx context.Context, userID string, revokerID string) error {
	now := s.clock.Now()
	_, err := s.store.MutateUser(userID, func(u *model.User) error {
		if u.TemporaryAccess == nil {
			return sentinel_errors.ErrNoTemporaryAccess
		}
		u.TemporaryAccess = nil
		u.UpdatedAt = now
		return nil
	})
	if err != nil {
		logger.Error("Error revoking temporary access", zap.Error(err), zap.String("userID", userID), zap.String("revokerID", revokerID))
		return err
	}

	s.invalidateUserCaches(ctx, userID)
	s.eventBus.Publish(ctx, "access.revoked", userID)
	s.logAudit(ctx, audit.ActionRevokeAccess, revokerID, userID, nil)

	logger.Info("Temporary access revoked", zap.String("userID", userID), zap.String("revokerID", revokerID))
	return nil
}

// SweepExpired clears every grant whose expiry has passed, demotes the
// affected users to the default restricted role, and marks them inactive.
// Users without a grant are skipped; running the sweep twice with the same
// now is a no-op the second time. Returns the demoted user IDs.
func (s *AccessService) SweepExpired(ctx context.Context, now time.Time) ([]string, error) {
	// Advisory lock so concurrent replicas don't race over the same pass.
	// A lock-service failure must not stop expiry enforcement, so only a
	// confirmed contention skips the sweep.
	if locked, err := s.cacheService.TryLock(ctx, sweepLockResource, sweepLockTTL); err == nil {
		if !locked {
			logger.Debug("Sweep already running elsewhere, skipping pass")
			return nil, nil
		}
		defer func() {
			if err := s.cacheService.Unlock(ctx, sweepLockResource); err != nil {
				logger.Warn("Failed to release sweep lock", zap.Error(err))
			}
		}()
	}

	var demoted []string

	for _, candidate := range s.store.ListUsers() {
		if candidate.TemporaryAccess == nil {
			continue
		}
		if !candidate.TemporaryAccess.Expired(now) {
			continue
		}

		_, err := s.store.MutateUser(candidate.ID, func(u *model.User) error {
			// Re-check under the lock; a concurrent revoke or re-grant may
			// have changed the record since the scan.
			if u.TemporaryAccess == nil || !u.TemporaryAccess.Expired(now) {
				return sentinel_errors.ErrNoTemporaryAccess
			}
			u.TemporaryAccess = nil
			u.RoleID = model.DefaultRestrictedRole
			u.Status = model.StatusInactive
			u.UpdatedAt = now
			return nil
		})
		if err != nil {
			// The user disappeared or the grant changed mid-sweep; the next
			// tick is self-correcting, so just move on.
			continue
		}

		s.invalidateUserCaches(ctx, candidate.ID)
		s.eventBus.Publish(ctx, "access.expired", candidate.ID)
		s.logAudit(ctx, audit.ActionExpireAccess, "sweeper", candidate.ID, map[string]interface{}{
			"expired_at": candidate.TemporaryAccess.ExpiresAt.Format(time.RFC3339),
		})

		demoted = append(demoted, candidate.ID)
	}

	if len(demoted) > 0 {
		logger.Info("Expired grants swept", zap.Strings("demotedUserIDs", demoted), zap.Time("now", now))
	}
	return demoted, nil
}

// EffectivePermissions resolves the permission set in force for a user right
// now: an unexpired grant's permissions win, otherwise the assigned role's.
func (s *AccessService) EffectivePermissions(ctx context.Context, userID string) (model.PermissionSet, error) {
	if cached, err := s.cacheService.GetEffectivePermissions(ctx, userID); err == nil && cached != nil {
		return *cached, nil
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		return model.PermissionSet{}, err
	}

	permissions, err := s.resolvePermissions(user)
	if err != nil {
		return model.PermissionSet{}, err
	}

	// A set resolved from a live grant must not be served past its expiry,
	// so the cache entry's lifetime is capped at the grant's remainder.
	var ttl time.Duration
	if now := s.clock.Now(); user.TemporaryAccess != nil && !user.TemporaryAccess.Expired(now) {
		ttl = user.TemporaryAccess.ExpiresAt.Sub(now)
	}
	if err := s.cacheService.SetEffectivePermissions(ctx, userID, permissions, ttl); err != nil {
		logger.Warn("Failed to cache effective permissions", zap.Error(err), zap.String("userID", userID))
	}
	return permissions, nil
}

func (s *AccessService) resolvePermissions(user *model.User) (model.PermissionSet, error) {
	now := s.clock.Now()
	if user.TemporaryAccess != nil && !user.TemporaryAccess.Expired(now) {
		return user.TemporaryAccess.GrantedPermissions.Clone(), nil
	}

	role, err := s.store.GetRole(user.RoleID)
	if err != nil {
		logger.Error("User references unknown role", zap.String("userID", user.ID), zap.String("roleID", user.RoleID))
		return model.PermissionSet{}, err
	}
	return role.Permissions.Clone(), nil
}

// EffectiveDeviceGroups resolves the device-group scope in force for a user.
func (s *AccessService) EffectiveDeviceGroups(ctx context.Context, userID string) ([]string, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user.TemporaryAccess != nil && !user.TemporaryAccess.Expired(s.clock.Now()) {
		return append([]string(nil), user.TemporaryAccess.GrantedDeviceGroups...), nil
	}
	return append([]string(nil), user.DeviceGroups...), nil
}

// Templates

func (s *AccessService) ListTemplates(ctx context.Context) ([]*model.AccessTemplate, error) {
	return s.store.ListTemplates(), nil
}

func (s *AccessService) CreateTemplate(ctx context.Context, template model.AccessTemplate) (*model.AccessTemplate, error) {
	if err := s.validationUtil.ValidateTemplate(template); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	template.CreatedAt = s.clock.Now()
	if err := s.store.CreateTemplate(template); err != nil {
		return nil, err
	}
	logger.Info("Access template created", zap.String("template", template.Name))
	return &template, nil
}

func (s *AccessService) DeleteTemplate(ctx context.Context, name string) error {
	if err := s.store.DeleteTemplate(name); err != nil {
		return err
	}
	logger.Info("Access template deleted", zap.String("template", name))
	return nil
}

// Helper methods

func (s *AccessService) invalidateUserCaches(ctx context.Context, userID string) {
	if err := s.cacheService.DeleteUser(ctx, userID); err != nil {
		logger.Warn("Failed to invalidate user cache", zap.Error(err), zap.String("userID", userID))
	}
	if err := s.cacheService.DeleteEffectivePermissions(ctx, userID); err != nil {
		logger.Warn("Failed to invalidate effective permission cache", zap.Error(err), zap.String("userID", userID))
	}
}

func (s *AccessService) logAudit(ctx context.Context, action, actorID, targetUserID string, details map[string]interface{}) {
	var raw json.RawMessage
	if details != nil {
		raw, _ = json.Marshal(details)
	}
	entry := audit.AuditLog{
		Timestamp:     s.clock.Now(),
		ActorID:       actorID,
		Action:        action,
		TargetUserID:  targetUserID,
		ChangeDetails: raw,
	}
	if err := s.auditService.LogAction(ctx, entry); err != nil {
		logger.Error("Failed to create audit log", zap.Error(err), zap.String("action", action))
	}
}
