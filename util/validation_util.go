// util/validation_util.go

package util

import (
	"fmt"
	"net/mail"

	"github.com/smartnest/sentinel/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateUser(user model.User) error {
	if user.ID == "" {
		return fmt.Errorf("user ID cannot be empty")
	}
	if user.Name == "" {
		return fmt.Errorf("user name cannot be empty")
	}
	if user.Email == "" {
		return fmt.Errorf("user email cannot be empty")
	}
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return fmt.Errorf("user email is not a valid address")
	}
	if user.RoleID == "" {
		return fmt.Errorf("user role cannot be empty")
	}
	switch user.Status {
	case model.StatusActive, model.StatusInactive, model.StatusPending:
	default:
		return fmt.Errorf("user status must be active, inactive, or pending")
	}
	if !user.Permissions.Unrestricted {
		for _, cap := range user.Permissions.Capabilities {
			if !knownCapability(cap) {
				return fmt.Errorf("unknown capability: %s", cap)
			}
		}
	}
	return nil
}

func (v *ValidationUtil) ValidateRole(role model.Role) error {
	if role.ID == "" {
		return fmt.Errorf("role ID cannot be empty")
	}
	if role.Name == "" {
		return fmt.Errorf("role name cannot be empty")
	}
	if !role.Permissions.Unrestricted {
		for _, cap := range role.Permissions.Capabilities {
			if !knownCapability(cap) {
				return fmt.Errorf("unknown capability: %s", cap)
			}
		}
	}
	return nil
}

func (v *ValidationUtil) ValidateDeviceGroup(group model.DeviceGroup) error {
	if group.ID == "" {
		return fmt.Errorf("device group ID cannot be empty")
	}
	if group.Name == "" {
		return fmt.Errorf("device group name cannot be empty")
	}
	return nil
}

func (v *ValidationUtil) ValidateTemplate(template model.AccessTemplate) error {
	if template.Name == "" {
		return fmt.Errorf("template name cannot be empty")
	}
	if !template.Permissions.Unrestricted {
		for _, cap := range template.Permissions.Capabilities {
			if !knownCapability(cap) {
				return fmt.Errorf("unknown capability: %s", cap)
			}
		}
	}
	return nil
}

func knownCapability(c model.Capability) bool {
	for _, known := range model.AllCapabilities {
		if c == known {
			return true
		}
	}
	return false
}
