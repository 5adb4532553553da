// model/access.go
package model

import "time"

// System role identifiers. System roles are fixed, non-deletable, and carry
// a canonical permission set. RoleAdmin is the top-privilege role and
// RoleRestricted is the default role expired users are demoted to.
const (
	RoleAdmin      = "admin"
	RoleMember     = "member"
	RoleGuest      = "guest"
	RoleRestricted = "restricted"
)

// DefaultRestrictedRole is the lowest-privilege named role.
const DefaultRestrictedRole = RoleRestricted

type Role struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	System      bool          `json:"system"`
	Permissions PermissionSet `json:"permissions"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// SystemRoles returns the canonical fixed role set.
func SystemRoles() []Role {
	return []Role{
		{
			ID:          RoleAdmin,
			Name:        "Administrator",
			Description: "Full control of every device, user, and setting",
			System:      true,
			Permissions: UnrestrictedPermissions(),
		},
		{
			ID:          RoleMember,
			Name:        "Member",
			Description: "Day-to-day control of devices and automations",
			System:      true,
			Permissions: Permissions(CapabilityView, CapabilityControl, CapabilityAutomation, CapabilityEnergy, CapabilityNotifications),
		},
		{
			ID:          RoleGuest,
			Name:        "Guest",
			Description: "View and basic control while visiting",
			System:      true,
			Permissions: Permissions(CapabilityView, CapabilityControl),
		},
		{
			ID:          RoleRestricted,
			Name:        "Restricted",
			Description: "View only",
			System:      true,
			Permissions: Permissions(CapabilityView),
		},
	}
}

// DeviceGroup is a named, non-owning reference collection of devices used to
// scope permissions. Users reference groups by ID, never own them.
type DeviceGroup struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	DeviceIDs   []string  `json:"device_ids,omitempty"`
	RoomIDs     []string  `json:"room_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AccessTemplate is a named permission/device-group bundle applied by
// temporary access grants.
type AccessTemplate struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Permissions  PermissionSet `json:"permissions"`
	DeviceGroups []string      `json:"device_groups,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// AllowedGrantDurationsHours is the fixed enumerated set of grant durations.
var AllowedGrantDurationsHours = []int{1, 4, 6, 8, 12, 24, 48, 168}

// IsAllowedGrantDuration reports whether hours is one of the enumerated
// grant durations.
func IsAllowedGrantDuration(hours int) bool {
	for _, h := range AllowedGrantDurationsHours {
		if h == hours {
			return true
		}
	}
	return false
}
