// directory/provider_test.go
package directory

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"

	"github.com/smartnest/sentinel/model"
)

func TestStaticProviderReturnsClones(t *testing.T) {
	provider := NewStaticProvider([]model.User{
		{
			ID:           "u1",
			Name:         "Dana Wu",
			Email:        "dana@example.com",
			RoleID:       model.RoleMember,
			Permissions:  model.Permissions(model.CapabilityView),
			DeviceGroups: []string{"living-room"},
			Status:       model.StatusActive,
		},
	})

	users, err := provider.FetchUsers(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 1)

	users[0].DeviceGroups[0] = "tampered"

	again, err := provider.FetchUsers(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"living-room"}, again[0].DeviceGroups)
}

func TestMapNodeToUser(t *testing.T) {
	t.Run("FullRecord", func(t *testing.T) {
		node := neo4j.Node{Props: map[string]interface{}{
			"id":             "u1",
			"name":           "Dana Wu",
			"email":          "dana@example.com",
			"roleID":         "member",
			"status":         "active",
			"permissions":    `["view","control"]`,
			"deviceGroups":   `["living-room","kitchen"]`,
			"createdAt":      "2025-01-15T09:30:00Z",
			"updatedAt":      "2025-02-01T18:00:00Z",
			"lastReviewedAt": "2025-02-20T10:00:00Z",
		}}

		user, err := mapNodeToUser(node)
		assert.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, model.RoleMember, user.RoleID)
		assert.Equal(t, model.StatusActive, user.Status)
		assert.True(t, user.Permissions.Has(model.CapabilityControl))
		assert.Equal(t, []string{"living-room", "kitchen"}, user.DeviceGroups)
		assert.Equal(t, 2025, user.CreatedAt.Year())
		assert.NotNil(t, user.LastReviewedAt)
	})

	t.Run("DefaultsForSparseRecord", func(t *testing.T) {
		node := neo4j.Node{Props: map[string]interface{}{
			"id":    "u2",
			"name":  "Lee Novak",
			"email": "lee@example.com",
		}}

		user, err := mapNodeToUser(node)
		assert.NoError(t, err)
		assert.Equal(t, model.DefaultRestrictedRole, user.RoleID)
		assert.Equal(t, model.StatusPending, user.Status)
		assert.Nil(t, user.LastReviewedAt)
		assert.True(t, user.CreatedAt.IsZero())
	})

	t.Run("UnrestrictedSentinel", func(t *testing.T) {
		node := neo4j.Node{Props: map[string]interface{}{
			"id":          "u3",
			"name":        "Admin",
			"email":       "admin@example.com",
			"roleID":      "admin",
			"permissions": `["all"]`,
		}}

		user, err := mapNodeToUser(node)
		assert.NoError(t, err)
		assert.True(t, user.Permissions.Unrestricted)
	})

	t.Run("MalformedPermissions", func(t *testing.T) {
		node := neo4j.Node{Props: map[string]interface{}{
			"id":          "u4",
			"name":        "Broken",
			"email":       "broken@example.com",
			"permissions": `{"not":"a list"}`,
		}}

		_, err := mapNodeToUser(node)
		assert.Error(t, err)
	})

	t.Run("MalformedTimestamp", func(t *testing.T) {
		node := neo4j.Node{Props: map[string]interface{}{
			"id":        "u5",
			"name":      "Broken",
			"email":     "broken@example.com",
			"createdAt": "not-a-time",
		}}

		_, err := mapNodeToUser(node)
		assert.Error(t, err)
	})
}
