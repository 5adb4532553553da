// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// Audit actions recorded by the access service and the review service.
const (
	ActionGrantAccess        = "GRANT_TEMPORARY_ACCESS"
	ActionRevokeAccess       = "REVOKE_TEMPORARY_ACCESS"
	ActionExpireAccess       = "EXPIRE_TEMPORARY_ACCESS"
	ActionCompleteReview     = "COMPLETE_REVIEW"
	ActionCompleteAllReviews = "COMPLETE_ALL_REVIEWS"
	ActionCreateUser         = "CREATE_USER"
	ActionUpdateUser         = "UPDATE_USER"
	ActionDeleteUser         = "DELETE_USER"
)

type AuditLog struct {
	Timestamp     time.Time       `json:"timestamp"`
	ActorID       string          `json:"actor_id"`
	Action        string          `json:"action"`
	TargetUserID  string          `json:"target_user_id"`
	ChangeDetails json.RawMessage `json:"change_details,omitempty"`
}
