package model

import "time"

type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
	StatusPending  UserStatus = "pending"
)

type User struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	RoleID          string           `json:"role_id"`
	Permissions     PermissionSet    `json:"permissions"`
	DeviceGroups    []string         `json:"device_groups,omitempty"`
	Status          UserStatus       `json:"status"`
	TemporaryAccess *TemporaryAccess `json:"temporary_access,omitempty"`
	LastReviewedAt  *time.Time       `json:"last_reviewed_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// TemporaryAccess is a time-boxed override of a user's effective permissions
// and device-group scope. A user carries at most one at a time; while present
// it replaces the base permission set, it never merges with it.
type TemporaryAccess struct {
	ExpiresAt           time.Time     `json:"expires_at"`
	GrantedPermissions  PermissionSet `json:"granted_permissions"`
	GrantedDeviceGroups []string      `json:"granted_device_groups,omitempty"`
	SourceTemplateName  string        `json:"source_template_name,omitempty"`
}

// Expired reports whether the grant has passed its boundary at the given time.
func (t *TemporaryAccess) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Clone returns a deep copy so registry reads never alias registry state.
func (u *User) Clone() *User {
	out := *u
	out.Permissions = u.Permissions.Clone()
	if u.DeviceGroups != nil {
		out.DeviceGroups = append([]string(nil), u.DeviceGroups...)
	}
	if u.TemporaryAccess != nil {
		ta := *u.TemporaryAccess
		ta.GrantedPermissions = u.TemporaryAccess.GrantedPermissions.Clone()
		if u.TemporaryAccess.GrantedDeviceGroups != nil {
			ta.GrantedDeviceGroups = append([]string(nil), u.TemporaryAccess.GrantedDeviceGroups...)
		}
		out.TemporaryAccess = &ta
	}
	if u.LastReviewedAt != nil {
		t := *u.LastReviewedAt
		out.LastReviewedAt = &t
	}
	return &out
}

type UserSearchCriteria struct {
	Name   string     `json:"name,omitempty"`
	Email  string     `json:"email,omitempty"`
	RoleID string     `json:"role_id,omitempty"`
	Status UserStatus `json:"status,omitempty"`
	Limit  int        `json:"limit,omitempty"`
	Offset int        `json:"offset,omitempty"`
}
