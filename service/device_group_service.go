// service/device_group_service.go
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

// IDeviceGroupService defines the interface for device group operations
type IDeviceGroupService interface {
	CreateDeviceGroup(ctx context.Context, group model.DeviceGroup, creatorID string) (*model.DeviceGroup, error)
	UpdateDeviceGroup(ctx context.Context, group model.DeviceGroup, updaterID string) (*model.DeviceGroup, error)
	DeleteDeviceGroup(ctx context.Context, groupID string, deleterID string) error
	GetDeviceGroup(ctx context.Context, groupID string) (*model.DeviceGroup, error)
	ListDeviceGroups(ctx context.Context) ([]*model.DeviceGroup, error)
}

// DeviceGroupService handles business logic for device groups
type DeviceGroupService struct {
	store           *registry.Store
	validationUtil  *util.ValidationUtil
	notificationSvc Notifier
	eventBus        *util.EventBus
	clock           util.Clock
}

var _ IDeviceGroupService = &DeviceGroupService{}

// NewDeviceGroupService creates a new instance of DeviceGroupService
func NewDeviceGroupService(store *registry.Store, validationUtil *util.ValidationUtil, notificationSvc Notifier, eventBus *util.EventBus, clock util.Clock) *DeviceGroupService {
	return &DeviceGroupService{
		store:           store,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
		clock:           clock,
	}
}

// CreateDeviceGroup creates a device group
func (s *DeviceGroupService) CreateDeviceGroup(ctx context.Context, group model.DeviceGroup, creatorID string) (*model.DeviceGroup, error) {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if err := s.validationUtil.ValidateDeviceGroup(group); err != nil {
		return nil, fmt.Errorf("invalid device group: %w", err)
	}

	now := s.clock.Now()
	group.CreatedAt = now
	group.UpdatedAt = now

	if err := s.store.CreateDeviceGroup(group); err != nil {
		logger.Error("Error creating device group", zap.Error(err), zap.String("creatorID", creatorID))
		return nil, err
	}

	if err := s.notificationSvc.NotifyDeviceGroupChange(ctx, "created", group); err != nil {
		logger.Warn("Failed to send device group notification", zap.Error(err), zap.String("groupID", group.ID))
	}

	logger.Info("Device group created successfully", zap.String("groupID", group.ID), zap.String("creatorID", creatorID))
	return &group, nil
}

// UpdateDeviceGroup updates a device group
func (s *DeviceGroupService) UpdateDeviceGroup(ctx context.Context, group model.DeviceGroup, updaterID string) (*model.DeviceGroup, error) {
	if err := s.validationUtil.ValidateDeviceGroup(group); err != nil {
		return nil, fmt.Errorf("invalid device group: %w", err)
	}

	group.UpdatedAt = s.clock.Now()
	if err := s.store.UpdateDeviceGroup(group); err != nil {
		logger.Error("Error updating device group", zap.Error(err), zap.String("groupID", group.ID), zap.String("updaterID", updaterID))
		return nil, err
	}

	if err := s.notificationSvc.NotifyDeviceGroupChange(ctx, "updated", group); err != nil {
		logger.Warn("Failed to send device group notification", zap.Error(err), zap.String("groupID", group.ID))
	}

	logger.Info("Device group updated successfully", zap.String("groupID", group.ID), zap.String("updaterID", updaterID))
	return &group, nil
}

// DeleteDeviceGroup removes a device group and detaches it from all users
func (s *DeviceGroupService) DeleteDeviceGroup(ctx context.Context, groupID string, deleterID string) error {
	if err := s.store.DeleteDeviceGroup(groupID); err != nil {
		logger.Error("Error deleting device group", zap.Error(err), zap.String("groupID", groupID), zap.String("deleterID", deleterID))
		return err
	}

	if err := s.notificationSvc.NotifyDeviceGroupChange(ctx, "deleted", model.DeviceGroup{ID: groupID}); err != nil {
		logger.Warn("Failed to send device group notification", zap.Error(err), zap.String("groupID", groupID))
	}

	logger.Info("Device group deleted successfully", zap.String("groupID", groupID), zap.String("deleterID", deleterID))
	return nil
}

// GetDeviceGroup retrieves a device group by ID
func (s *DeviceGroupService) GetDeviceGroup(ctx context.Context, groupID string) (*model.DeviceGroup, error) {
	return s.store.GetDeviceGroup(groupID)
}

// ListDeviceGroups retrieves all device groups
func (s *DeviceGroupService) ListDeviceGroups(ctx context.Context) ([]*model.DeviceGroup, error) {
	return s.store.ListDeviceGroups(), nil
}
