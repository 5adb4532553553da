// model/permissions.go
package model

import (
	"encoding/json"
	"sort"
)

// Capability is a named right to perform an action category.
type Capability string

const (
	CapabilityView          Capability = "view"
	CapabilityControl       Capability = "control"
	CapabilityAutomation    Capability = "automation"
	CapabilitySecurity      Capability = "security"
	CapabilityUsers         Capability = "users"
	CapabilitySettings      Capability = "settings"
	CapabilityEnergy        Capability = "energy"
	CapabilityNotifications Capability = "notifications"
)

// AllCapabilities lists every capability the system knows about.
var AllCapabilities = []Capability{
	CapabilityView,
	CapabilityControl,
	CapabilityAutomation,
	CapabilitySecurity,
	CapabilityUsers,
	CapabilitySettings,
	CapabilityEnergy,
	CapabilityNotifications,
}

// PermissionSet is either an enumerated set of capabilities or unrestricted.
// Unrestricted grants every capability regardless of the enumerated list.
type PermissionSet struct {
	Unrestricted bool
	Capabilities []Capability
}

// Permissions builds an enumerated permission set.
func Permissions(caps ...Capability) PermissionSet {
	return PermissionSet{Capabilities: caps}
}

// UnrestrictedPermissions builds the set that grants every capability.
func UnrestrictedPermissions() PermissionSet {
	return PermissionSet{Unrestricted: true}
}

// Has reports whether the set grants the given capability.
func (p PermissionSet) Has(c Capability) bool {
	if p.Unrestricted {
		return true
	}
	for _, cap := range p.Capabilities {
		if cap == c {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the set.
func (p PermissionSet) Clone() PermissionSet {
	out := PermissionSet{Unrestricted: p.Unrestricted}
	if len(p.Capabilities) > 0 {
		out.Capabilities = append([]Capability(nil), p.Capabilities...)
	}
	return out
}

// Equal reports whether two sets grant exactly the same capabilities.
func (p PermissionSet) Equal(other PermissionSet) bool {
	if p.Unrestricted || other.Unrestricted {
		return p.Unrestricted == other.Unrestricted
	}
	if len(p.Capabilities) != len(other.Capabilities) {
		return false
	}
	a := append([]Capability(nil), p.Capabilities...)
	b := append([]Capability(nil), other.Capabilities...)
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// permissionSentinelAll is the wire representation of an unrestricted set.
const permissionSentinelAll = "all"

// MarshalJSON encodes an unrestricted set as ["all"] and an enumerated set
// as the plain capability list.
func (p PermissionSet) MarshalJSON() ([]byte, error) {
	if p.Unrestricted {
		return json.Marshal([]string{permissionSentinelAll})
	}
	if p.Capabilities == nil {
		return json.Marshal([]Capability{})
	}
	return json.Marshal(p.Capabilities)
}

// UnmarshalJSON accepts the wire form produced by MarshalJSON. The "all"
// sentinel anywhere in the list makes the whole set unrestricted.
func (p *PermissionSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = PermissionSet{}
	for _, s := range raw {
		if s == permissionSentinelAll {
			*p = PermissionSet{Unrestricted: true}
			return nil
		}
		p.Capabilities = append(p.Capabilities, Capability(s))
	}
	return nil
}
