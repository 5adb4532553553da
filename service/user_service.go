// service/user_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartnest/sentinel/audit"
	logger "github.com/smartnest/sentinel/logging"
	"github.com/smartnest/sentinel/model"
	"github.com/smartnest/sentinel/registry"
	"github.com/smartnest/sentinel/util"
)

// IUserService defines the interface for user operations
type IUserService interface {
	CreateUser(ctx context.Context, user model.User, creatorID string) (*model.User, error)
	UpdateUser(ctx context.Context, user model.User, updaterID string) (*model.User, error)
	DeleteUser(ctx context.Context, userID string, deleterID string) error
	GetUser(ctx context.Context, userID string) (*model.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]*model.User, error)
	SearchUsers(ctx context.Context, criteria model.UserSearchCriteria) ([]*model.User, error)
}

// UserService handles business logic for user operations
type UserService struct {
	store           *registry.Store
	validationUtil  *util.ValidationUtil
	cacheService    Cache
	notificationSvc Notifier
	eventBus        *util.EventBus
	auditService    audit.Service
	clock           util.Clock
}

var _ IUserService = &UserService{}

// NewUserService creates a new instance of UserService
func NewUserService(store *registry.Store, validationUtil *util.ValidationUtil, cacheService Cache, notificationSvc Notifier, eventBus *util.EventBus, auditService audit.Service, clock util.Clock) *UserService {
	service := &UserService{
		store:           store,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
		auditService:    auditService,
		clock:           clock,
	}

	// Set up event subscriptions
	eventBus.Subscribe("user.created", service.handleUserCreated)
	eventBus.Subscribe("user.updated", service.handleUserUpdated)
	eventBus.Subscribe("user.deleted", service.handleUserDeleted)

	return service
}

func (s *UserService) handleUserCreated(ctx context.Context, event util.Event) error {
	user := event.Payload.(model.User)
	logger.Info("User created event received", zap.String("userID", user.ID))

	if err := s.notificationSvc.NotifyUserChange(ctx, "created", user); err != nil {
		logger.Warn("Failed to send user creation notification", zap.Error(err), zap.String("userID", user.ID))
	}
	return nil
}

func (s *UserService) handleUserUpdated(ctx context.Context, event util.Event) error {
	payload := event.Payload.(map[string]model.User)
	oldUser, newUser := payload["old"], payload["new"]

	logger.Info("User updated event received",
		zap.String("userID", newUser.ID),
		zap.Time("oldUpdatedAt", oldUser.UpdatedAt),
		zap.Time("newUpdatedAt", newUser.UpdatedAt))

	if err := s.notificationSvc.NotifyUserChange(ctx, "updated", newUser); err != nil {
		logger.Warn("Failed to send user update notification", zap.Error(err), zap.String("userID", newUser.ID))
		// Continue execution despite the error
	}
	return nil
}

func (s *UserService) handleUserDeleted(ctx context.Context, event util.Event) error {
	userID := event.Payload.(string)
	logger.Info("User deleted event received", zap.String("userID", userID))

	if err := s.notificationSvc.NotifyUserChange(ctx, "deleted", model.User{ID: userID}); err != nil {
		logger.Warn("Failed to send user deletion notification", zap.Error(err), zap.String("userID", userID))
		// Continue execution despite the error
	}
	return nil
}

// CreateUser handles the creation of a new user. Invited users start
// pending until they accept or are issued a grant.
func (s *UserService) CreateUser(ctx context.Context, user model.User, creatorID string) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.RoleID == "" {
		user.RoleID = model.DefaultRestrictedRole
	}
	if user.Status == "" {
		user.Status = model.StatusPending
	}
	if err := s.validationUtil.ValidateUser(user); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}
	if _, err := s.store.GetRole(user.RoleID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.store.CreateUser(user); err != nil {
		logger.Error("Error creating user", zap.Error(err), zap.String("creatorID", creatorID))
		return nil, err
	}

	// Update cache
	if err := s.cacheService.SetUser(ctx, user); err != nil {
		logger.Warn("Failed to cache user", zap.Error(err), zap.String("userID", user.ID))
	}

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "user.created", user)
	s.logAudit(ctx, audit.ActionCreateUser, creatorID, user.ID, createUserChangeDetails(nil, &user))

	logger.Info("User created successfully", zap.String("userID", user.ID), zap.String("creatorID", creatorID))
	return &user, nil
}

// UpdateUser handles updates to an existing user
func (s *UserService) UpdateUser(ctx context.Context, user model.User, updaterID string) (*model.User, error) {
	if err := s.validationUtil.ValidateUser(user); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}
	if _, err := s.store.GetRole(user.RoleID); err != nil {
		return nil, err
	}

	oldUser, err := s.store.GetUser(user.ID)
	if err != nil {
		logger.Error("Error retrieving existing user", zap.Error(err), zap.String("userID", user.ID))
		return nil, err
	}

	now := s.clock.Now()
	updatedUser, err := s.store.MutateUser(user.ID, func(u *model.User) error {
		u.Name = user.Name
		u.Email = user.Email
		u.RoleID = user.RoleID
		u.Permissions = user.Permissions.Clone()
		u.DeviceGroups = append([]string(nil), user.DeviceGroups...)
		u.Status = user.Status
		u.UpdatedAt = now
		return nil
	})
	if err != nil {
		logger.Error("Error updating user", zap.Error(err), zap.String("userID", user.ID), zap.String("updaterID", updaterID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	// Update cache
	if err := s.cacheService.SetUser(ctx, *updatedUser); err != nil {
		logger.Warn("Failed to update user in cache", zap.Error(err), zap.String("userID", user.ID))
	}
	if err := s.cacheService.DeleteEffectivePermissions(ctx, user.ID); err != nil {
		logger.Warn("Failed to invalidate effective permission cache", zap.Error(err), zap.String("userID", user.ID))
	}

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "user.updated", map[string]model.User{
		"old": *oldUser,
		"new": *updatedUser,
	})
	s.logAudit(ctx, audit.ActionUpdateUser, updaterID, user.ID, createUserChangeDetails(oldUser, updatedUser))

	logger.Info("User updated successfully", zap.String("userID", user.ID), zap.String("updaterID", updaterID))
	return updatedUser, nil
}

// DeleteUser handles the deletion of a user
func (s *UserService) DeleteUser(ctx context.Context, userID string, deleterID string) error {
	err := s.store.DeleteUser(userID)
	if err != nil {
		logger.Error("Error deleting user", zap.Error(err), zap.String("userID", userID), zap.String("deleterID", deleterID))
		return err
	}

	// Remove from cache
	if err := s.cacheService.DeleteUser(ctx, userID); err != nil {
		logger.Warn("Failed to delete user from cache", zap.Error(err), zap.String("userID", userID))
	}
	if err := s.cacheService.DeleteEffectivePermissions(ctx, userID); err != nil {
		logger.Warn("Failed to invalidate effective permission cache", zap.Error(err), zap.String("userID", userID))
	}

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "user.deleted", userID)
	s.logAudit(ctx, audit.ActionDeleteUser, deleterID, userID, createUserChangeDetails(&model.User{ID: userID}, nil))

	logger.Info("User deleted successfully", zap.String("userID", userID), zap.String("deleterID", deleterID))
	return nil
}

// GetUser retrieves a user by their ID
func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	// Try to get from cache first
	cachedUser, err := s.cacheService.GetUser(ctx, userID)
	if err == nil && cachedUser != nil {
		return cachedUser, nil
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}

	// Update cache
	if err := s.cacheService.SetUser(ctx, *user); err != nil {
		logger.Warn("Failed to cache user", zap.Error(err), zap.String("userID", userID))
	}

	return user, nil
}

// ListUsers retrieves all users, possibly with pagination
func (s *UserService) ListUsers(ctx context.Context, limit int, offset int) ([]*model.User, error) {
	users := s.store.ListUsers()
	if offset > 0 {
		if offset >= len(users) {
			return []*model.User{}, nil
		}
		users = users[offset:]
	}
	if limit > 0 && limit < len(users) {
		users = users[:limit]
	}
	return users, nil
}

// SearchUsers filters users by name, email, role, or status
func (s *UserService) SearchUsers(ctx context.Context, criteria model.UserSearchCriteria) ([]*model.User, error) {
	return s.store.SearchUsers(criteria), nil
}

// Helper methods

func (s *UserService) logAudit(ctx context.Context, action, actorID, targetUserID string, details json.RawMessage) {
	entry := audit.AuditLog{
		Timestamp:     s.clock.Now(),
		ActorID:       actorID,
		Action:        action,
		TargetUserID:  targetUserID,
		ChangeDetails: details,
	}
	if err := s.auditService.LogAction(ctx, entry); err != nil {
		logger.Error("Failed to create audit log", zap.Error(err), zap.String("action", action))
	}
}

// Helper function to create change details for audit log
func createUserChangeDetails(oldUser, newUser *model.User) json.RawMessage {
	changes := make(map[string]interface{})
	if oldUser == nil {
		changes["action"] = "created"
	} else if newUser == nil {
		changes["action"] = "deleted"
	} else {
		changes["action"] = "updated"
		if oldUser.Name != newUser.Name {
			changes["name"] = map[string]string{"old": oldUser.Name, "new": newUser.Name}
		}
		if oldUser.Email != newUser.Email {
			changes["email"] = map[string]string{"old": oldUser.Email, "new": newUser.Email}
		}
		if oldUser.RoleID != newUser.RoleID {
			changes["role"] = map[string]string{"old": oldUser.RoleID, "new": newUser.RoleID}
		}
	}
	changeDetails, _ := json.Marshal(changes)
	return changeDetails
}
