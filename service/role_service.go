// service/role_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	logger "github.com/smartnest/sentinel/logging"
	"github.com/smartnest/sentinel/model"
	"github.com/smartnest/sentinel/registry"
	"github.com/smartnest/sentinel/util"
)

// IRoleService defines the interface for role operations
type IRoleService interface {
	CreateRole(ctx context.Context, role model.Role, creatorID string) (*model.Role, error)
	UpdateRole(ctx context.Context, role model.Role, updaterID string) (*model.Role, error)
	DeleteRole(ctx context.Context, roleID string, deleterID string) error
	GetRole(ctx context.Context, roleID string) (*model.Role, error)
	ListRoles(ctx context.Context) ([]*model.Role, error)
}

// RoleService handles business logic for system and custom roles. System
// roles are immutable; only custom roles can be created, edited, or deleted.
type RoleService struct {
	store           *registry.Store
	validationUtil  *util.ValidationUtil
	notificationSvc Notifier
	eventBus        *util.EventBus
	clock           util.Clock
}

var _ IRoleService = &RoleService{}

// NewRoleService creates a new instance of RoleService
func NewRoleService(store *registry.Store, validationUtil *util.ValidationUtil, notificationSvc Notifier, eventBus *util.EventBus, clock util.Clock) *RoleService {
	service := &RoleService{
		store:           store,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
		clock:           clock,
	}

	eventBus.Subscribe("role.changed", service.handleRoleChanged)

	return service
}

func (s *RoleService) handleRoleChanged(ctx context.Context, event util.Event) error {
	payload := event.Payload.(map[string]interface{})
	changeType := payload["type"].(string)
	role := payload["role"].(model.Role)

	if err := s.notificationSvc.NotifyRoleChange(ctx, changeType, role); err != nil {
		logger.Warn("Failed to send role notification", zap.Error(err), zap.String("roleID", role.ID))
	}
	return nil
}

// CreateRole creates a custom role
func (s *RoleService) CreateRole(ctx context.Context, role model.Role, creatorID string) (*model.Role, error) {
	if role.ID == "" {
		role.ID = uuid.New().String()
	}
	role.System = false
	if err := s.validationUtil.ValidateRole(role); err != nil {
		return nil, fmt.Errorf("invalid role: %w", err)
	}

	now := s.clock.Now()
	role.CreatedAt = now
	role.UpdatedAt = now

	if err := s.store.CreateRole(role); err != nil {
		logger.Error("Error creating role", zap.Error(err), zap.String("creatorID", creatorID))
		return nil, err
	}

	s.eventBus.Publish(ctx, "role.changed", map[string]interface{}{"type": "created", "role": role})

	logger.Info("Role created successfully", zap.String("roleID", role.ID), zap.String("creatorID", creatorID))
	return &role, nil
}

// UpdateRole updates a custom role
func (s *RoleService) UpdateRole(ctx context.Context, role model.Role, updaterID string) (*model.Role, error) {
	if err := s.validationUtil.ValidateRole(role); err != nil {
		return nil, fmt.Errorf("invalid role: %w", err)
	}

	role.UpdatedAt = s.clock.Now()
	if err := s.store.UpdateRole(role); err != nil {
		logger.Error("Error updating role", zap.Error(err), zap.String("roleID", role.ID), zap.String("updaterID", updaterID))
		return nil, err
	}

	s.eventBus.Publish(ctx, "role.changed", map[string]interface{}{"type": "updated", "role": role})

	logger.Info("Role updated successfully", zap.String("roleID", role.ID), zap.String("updaterID", updaterID))
	return &role, nil
}

// DeleteRole removes a custom role. Users holding the role fall back to the
// default restricted role.
func (s *RoleService) DeleteRole(ctx context.Context, roleID string, deleterID string) error {
	if err := s.store.DeleteRole(roleID); err != nil {
		logger.Error("Error deleting role", zap.Error(err), zap.String("roleID", roleID), zap.String("deleterID", deleterID))
		return err
	}

	// Reassign any holders of the deleted role.
	for _, user := range s.store.ListUsers() {
		if user.RoleID != roleID {
			continue
		}
		if _, err := s.store.MutateUser(user.ID, func(u *model.User) error {
			u.RoleID = model.DefaultRestrictedRole
			u.UpdatedAt = s.clock.Now()
			return nil
		}); err != nil {
			logger.Warn("Failed to reassign user after role deletion", zap.Error(err), zap.String("userID", user.ID))
		}
	}

	s.eventBus.Publish(ctx, "role.changed", map[string]interface{}{"type": "deleted", "role": model.Role{ID: roleID}})

	logger.Info("Role deleted successfully", zap.String("roleID", roleID), zap.String("deleterID", deleterID))
	return nil
}

// GetRole retrieves a role by ID
func (s *RoleService) GetRole(ctx context.Context, roleID string) (*model.Role, error) {
	return s.store.GetRole(roleID)
}

// ListRoles retrieves all roles, system roles first
func (s *RoleService) ListRoles(ctx context.Context) ([]*model.Role, error) {
	return s.store.ListRoles(), nil
}
