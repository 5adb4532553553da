// service/review_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartnest/sentinel/audit"
	sentinel_errors "github.com/smartnest/sentinel/errors"
	logger "github.com/smartnest/sentinel/logging"
	"github.com/smartnest/sentinel/model"
	"github.com/smartnest/sentinel/registry"
	"github.com/smartnest/sentinel/util"
)

// IReviewService defines the interface for access review operations
type IReviewService interface {
	ListReviewDue(ctx context.Context, cadence model.ReviewCadence) ([]*model.User, error)
	CompleteReview(ctx context.Context, userID string, reviewerID string) error
	CompleteAllReviews(ctx context.Context, reviewerID string, cadence model.ReviewCadence) (*model.ReviewHistoryEntry, error)
	ListReviewHistory(ctx context.Context) ([]model.ReviewHistoryEntry, error)
}

// ReviewService derives the pending-review set from last-review timestamps
// and records review completions.
type ReviewService struct {
	store           *registry.Store
	notificationSvc Notifier
	eventBus        *util.EventBus
	auditService    audit.Service
	clock           util.Clock
}

var _ IReviewService = &ReviewService{}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(store *registry.Store, notificationSvc Notifier, eventBus *util.EventBus, auditService audit.Service, clock util.Clock) *ReviewService {
	service := &ReviewService{
		store:           store,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
		auditService:    auditService,
		clock:           clock,
	}

	eventBus.Subscribe("review.completed", service.handleReviewCompleted)

	return service
}

func (s *ReviewService) handleReviewCompleted(ctx context.Context, event util.Event) error {
	entry := event.Payload.(model.ReviewHistoryEntry)
	logger.Info("Review completed event received", zap.String("reviewerID", entry.ReviewerID))

	if err := s.notificationSvc.NotifyReviewCompleted(ctx, entry); err != nil {
		logger.Warn("Failed to send review notification", zap.Error(err), zap.String("reviewerID", entry.ReviewerID))
	}
	return nil
}

// IsReviewDue applies the cadence rule to a single user: administrators are
// always exempt, a user never reviewed is always due, otherwise the user is
// due once the cadence has elapsed since the last review. Pure.
func IsReviewDue(user *model.User, now time.Time, cadence model.ReviewCadence) bool {
	if user.RoleID == model.RoleAdmin {
		return false
	}
	if user.LastReviewedAt == nil {
		return true
	}
	cadenceWindow := time.Duration(cadence.Days()) * 24 * time.Hour
	return now.Sub(*user.LastReviewedAt) >= cadenceWindow
}

// ListReviewDue returns the users currently requiring a permissions
// re-review under the given cadence.
func (s *ReviewService) ListReviewDue(ctx context.Context, cadence model.ReviewCadence) ([]*model.User, error) {
	if !cadence.Valid() {
		return nil, sentinel_errors.ErrInvalidCadence
	}

	now := s.clock.Now()
	due := make([]*model.User, 0)
	for _, user := range s.store.ListUsers() {
		if IsReviewDue(user, now, cadence) {
			due = append(due, user)
		}
	}
	return due, nil
}

// CompleteReview marks one user reviewed now. The review timestamp is set
// only here and in CompleteAllReviews, never implicitly.
func (s *ReviewService) CompleteReview(ctx context.Context, userID string, reviewerID string) error {
	now := s.clock.Now()
	_, err := s.store.MutateUser(userID, func(u *model.User) error {
		t := now
		u.LastReviewedAt = &t
		u.UpdatedAt = now
		return nil
	})
	if err != nil {
		logger.Error("Error completing review", zap.Error(err), zap.String("userID", userID), zap.String("reviewerID", reviewerID))
		return err
	}

	s.logAudit(ctx, audit.ActionCompleteReview, reviewerID, userID, nil)
	logger.Info("Review completed", zap.String("userID", userID), zap.String("reviewerID", reviewerID))
	return nil
}

// CompleteAllReviews marks every currently-due user reviewed in one pass and
// appends a history entry recording the pass.
func (s *ReviewService) CompleteAllReviews(ctx context.Context, reviewerID string, cadence model.ReviewCadence) (*model.ReviewHistoryEntry, error) {
	due, err := s.ListReviewDue(ctx, cadence)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	reviewed := 0
	permissionChanges := 0
	for _, user := range due {
		_, err := s.store.MutateUser(user.ID, func(u *model.User) error {
			t := now
			u.LastReviewedAt = &t
			u.UpdatedAt = now
			return nil
		})
		if err != nil {
			// Deleted between the due computation and the pass; skip.
			continue
		}
		reviewed++
		// A user whose base set has drifted from the assigned role's
		// canonical set counts as a permission change surfaced by the pass.
		if role, rerr := s.store.GetRole(user.RoleID); rerr == nil {
			if !user.Permissions.Equal(role.Permissions) {
				permissionChanges++
			}
		}
	}

	entry := model.ReviewHistoryEntry{
		ID:                uuid.New().String(),
		ReviewerID:        reviewerID,
		ReviewedCount:     reviewed,
		PermissionChanges: permissionChanges,
		Timestamp:         now,
	}
	s.store.AppendReviewHistory(entry)

	s.eventBus.Publish(ctx, "review.completed", entry)
	s.logAudit(ctx, audit.ActionCompleteAllReviews, reviewerID, "", map[string]interface{}{
		"reviewed_count":     reviewed,
		"permission_changes": permissionChanges,
	})

	logger.Info("Bulk review completed",
		zap.String("reviewerID", reviewerID),
		zap.Int("reviewedCount", reviewed),
		zap.Int("permissionChanges", permissionChanges))
	return &entry, nil
}

// ListReviewHistory returns recorded review passes, newest first.
func (s *ReviewService) ListReviewHistory(ctx context.Context) ([]model.ReviewHistoryEntry, error) {
	return s.store.ListReviewHistory(), nil
}

func (s *ReviewService) logAudit(ctx context.Context, action, actorID, targetUserID string, details map[string]interface{}) {
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
