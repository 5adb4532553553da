// directory/neo4j_provider.go
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	sentinel_errors "github.com/smartnest/sentinel/errors"
	logger "github.com/smartnest/sentinel/logging"
	"github.com/smartnest/sentinel/model"
	helper_util "github.com/smartnest/sentinel/util/helper"
)

// Neo4jProvider reads the deployment's user directory out of a Neo4j graph.
type Neo4jProvider struct {
	Driver neo4j.Driver
}

func NewNeo4jProvider(driver neo4j.Driver) *Neo4jProvider {
	return &Neo4jProvider{Driver: driver}
}

func (p *Neo4jProvider) FetchUsers(ctx context.Context) ([]model.User, error) {
	start := time.Now()
	logger.Info("Fetching users from directory")

	session := p.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (u:User)
    RETURN u
    ORDER BY u.createdAt ASC
    `
	result, err := session.Run(query, nil)
	if err != nil {
		logger.Error("Failed to execute directory query",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return nil, sentinel_errors.ErrDirectoryOperation
	}

	var users []model.User
	for result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		user, err := mapNodeToUser(node)
		if err != nil {
			logger.Error("Failed to map directory node to user",
				zap.Error(err),
				zap.Duration("duration", time.Since(start)))
			return nil, sentinel_errors.ErrInternalServer
		}
		users = append(users, *user)
	}

	logger.Info("Directory users fetched successfully",
		zap.Int("count", len(users)),
		zap.Duration("duration", time.Since(start)))

	return users, nil
}

// Helper function to map a Neo4j node to a User struct
func mapNodeToUser(node neo4j.Node) (*model.User, error) {
	props := node.Props
	user := &model.User{}

	user.ID = stringProp(props, "id")
	user.Name = stringProp(props, "name")
	user.Email = stringProp(props, "email")
	user.RoleID = stringProp(props, "roleID")
	if user.RoleID == "" {
		user.RoleID = model.DefaultRestrictedRole
	}
	user.Status = model.UserStatus(stringProp(props, "status"))
	if user.Status == "" {
		user.Status = model.StatusPending
	}

	if permissionsJSON := stringProp(props, "permissions"); permissionsJSON != "" {
		if err := json.Unmarshal([]byte(permissionsJSON), &user.Permissions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal user permissions: %w", err)
		}
	}
	if groupsJSON := stringProp(props, "deviceGroups"); groupsJSON != "" {
		if err := json.Unmarshal([]byte(groupsJSON), &user.DeviceGroups); err != nil {
			return nil, fmt.Errorf("failed to unmarshal user device groups: %w", err)
		}
	}

	var err error
	if user.CreatedAt, err = timeProp(props, "createdAt"); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = timeProp(props, "updatedAt"); err != nil {
		return nil, err
	}
	if user.LastReviewedAt, err = helper_util.ParseNullableTime(props["lastReviewedAt"]); err != nil {
		return nil, fmt.Errorf("failed to parse lastReviewedAt: %w", err)
	}

	return user, nil
}

func stringProp(props map[string]interface{}, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

func timeProp(props map[string]interface{}, key string) (time.Time, error) {
	raw := stringProp(props, key)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := helper_util.ParseTime(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return t, nil
}
