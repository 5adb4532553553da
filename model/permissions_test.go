// model/permissions_test.go
package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smartnest/sentinel/model"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	assert.NoError(t, err)
	return parsed
}

func TestPermissionSetHas(t *testing.T) {
	t.Run("Enumerated", func(t *testing.T) {
		set := model.Permissions(model.CapabilityView, model.CapabilityControl)
		assert.True(t, set.Has(model.CapabilityView))
		assert.True(t, set.Has(model.CapabilityControl))
		assert.False(t, set.Has(model.CapabilitySecurity))
	})

	t.Run("Unrestricted", func(t *testing.T) {
		set := model.UnrestrictedPermissions()
		for _, capability := range model.AllCapabilities {
			assert.True(t, set.Has(capability))
		}
	})

	t.Run("Empty", func(t *testing.T) {
		var set model.PermissionSet
		assert.False(t, set.Has(model.CapabilityView))
	})
}

func TestPermissionSetEqual(t *testing.T) {
	assert.True(t, model.Permissions(model.CapabilityView, model.CapabilityControl).
		Equal(model.Permissions(model.CapabilityControl, model.CapabilityView)))

	assert.False(t, model.Permissions(model.CapabilityView).
		Equal(model.Permissions(model.CapabilityView, model.CapabilityControl)))

	assert.True(t, model.UnrestrictedPermissions().Equal(model.UnrestrictedPermissions()))

	// An unrestricted set is distinct from the full enumerated list.
	assert.False(t, model.UnrestrictedPermissions().Equal(model.Permissions(model.AllCapabilities...)))
}

func TestPermissionSetClone(t *testing.T) {
	original := model.Permissions(model.CapabilityView, model.CapabilityControl)
	clone := original.Clone()
	clone.Capabilities[0] = model.CapabilitySecurity

	assert.True(t, original.Has(model.CapabilityView))
	assert.False(t, original.Has(model.CapabilitySecurity))
}

func TestPermissionSetJSON(t *testing.T) {
	t.Run("UnrestrictedUsesSentinel", func(t *testing.T) {
		data, err := json.Marshal(model.UnrestrictedPermissions())
		assert.NoError(t, err)
		assert.JSONEq(t, `["all"]`, string(data))
	})

	t.Run("EnumeratedList", func(t *testing.T) {
		data, err := json.Marshal(model.Permissions(model.CapabilityView, model.CapabilityEnergy))
		assert.NoError(t, err)
		assert.JSONEq(t, `["view","energy"]`, string(data))
	})

	t.Run("EmptySetIsEmptyList", func(t *testing.T) {
		data, err := json.Marshal(model.PermissionSet{})
		assert.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("SentinelAnywhereMeansUnrestricted", func(t *testing.T) {
		var set model.PermissionSet
		err := json.Unmarshal([]byte(`["view","all","control"]`), &set)
		assert.NoError(t, err)
		assert.True(t, set.Unrestricted)
		assert.Empty(t, set.Capabilities)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		original := model.Permissions(model.CapabilityView, model.CapabilityAutomation)
		data, err := json.Marshal(original)
		assert.NoError(t, err)

		var decoded model.PermissionSet
		assert.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, original.Equal(decoded))
	})
}

func TestIsAllowedGrantDuration(t *testing.T) {
	for _, hours := range model.AllowedGrantDurationsHours {
		assert.True(t, model.IsAllowedGrantDuration(hours))
	}
	for _, hours := range []int{0, -1, 2, 3, 5, 7, 9, 10, 23, 167, 169} {
		assert.False(t, model.IsAllowedGrantDuration(hours))
	}
}

func TestTemporaryAccessExpired(t *testing.T) {
	grant := model.TemporaryAccess{ExpiresAt: mustParse(t, "2025-03-10T12:00:00Z")}

	assert.False(t, grant.Expired(mustParse(t, "2025-03-10T11:59:59Z")))
	// The boundary instant itself counts as expired.
	assert.True(t, grant.Expired(mustParse(t, "2025-03-10T12:00:00Z")))
	assert.True(t, grant.Expired(mustParse(t, "2025-03-10T12:00:01Z")))
}
