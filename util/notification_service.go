// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/smartnest/sentinel/logging"
	"github.com/smartnest/sentinel/model"
)

// NotificationService is the fire-and-forget message sink informing users of
// grant issuance, expiry-driven demotion, and review completion. No delivery
// guarantees are required; failures are logged and never propagated into the
// operation that triggered them.
type NotificationService struct {
	// You might want to add dependencies here, such as a message queue client
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyAccessGranted(ctx context.Context, user model.User) error {
	if user.TemporaryAccess == nil {
		return fmt.Errorf("user %s has no temporary access to notify about", user.ID)
	}
	logger.Info("NOTIFICATION: Temporary access granted",
		zap.String("userID", user.ID),
		zap.String("template", user.TemporaryAccess.SourceTemplateName),
		zap.Time("expiresAt", user.TemporaryAccess.ExpiresAt))
	return nil
}

func (n *NotificationService) NotifyAccessRevoked(ctx context.Context, userID string) error {
	logger.Info("NOTIFICATION: Temporary access revoked",
		zap.String("userID", userID))
	return nil
}

func (n *NotificationService) NotifyAccessExpired(ctx context.Context, userID string) error {
	logger.Info("NOTIFICATION: Temporary access expired, user demoted",
		zap.String("userID", userID))
	return nil
}

func (n *NotificationService) NotifyReviewCompleted(ctx context.Context, entry model.ReviewHistoryEntry) error {
	logger.Info("NOTIFICATION: Access review completed",
		zap.String("reviewerID", entry.ReviewerID),
		zap.Int("reviewedCount", entry.ReviewedCount),
		zap.Int("permissionChanges", entry.PermissionChanges))
	return nil
}

func (n *NotificationService) NotifyUserChange(ctx context.Context, changeType string, user model.User) error {
	logger.Info("Notifying user change",
		zap.String("changeType", changeType),
		zap.String("userID", user.ID),
		zap.String("userName", user.Name))
	return nil
}

func (n *NotificationService) NotifyRoleChange(ctx context.Context, changeType string, role model.Role) error {
	logger.Info("Notifying role change",
		zap.String("changeType", changeType),
		zap.String("roleID", role.ID),
		zap.String("roleName", role.Name))
	return nil
}

func (n *NotificationService) NotifyDeviceGroupChange(ctx context.Context, changeType string, group model.DeviceGroup) error {
	logger.Info("Notifying device group change",
		zap.String("changeType", changeType),
		zap.String("groupID", group.ID),
		zap.String("groupName", group.Name))
	return nil
}

func (n *NotificationService) NotifyAdmins(ctx context.Context, message string) error {
	// Logic to notify all system administrators
	logger.Info("Notifying admins", zap.String("message", message))
	return nil
}
