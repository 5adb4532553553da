// controller/role_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	sentinel_errors "github.com/smartnest/sentinel/errors"
	"github.com/smartnest/sentinel/model"
	"github.com/smartnest/sentinel/service"
	"github.com/smartnest/sentinel/util"
)

type RoleController struct {
	roleService service.IRoleService
}

func NewRoleController(roleService service.IRoleService) *RoleController {
	return &RoleController{
		roleService: roleService,
	}
}

// RegisterRoutes registers the API routes
func (rc *RoleController) RegisterRoutes(r *gin.RouterGroup) {
	roles := r.Group("/roles")
	{
		roles.POST("", rc.CreateRole)
		roles.PUT("/:id", rc.UpdateRole)
		roles.DELETE("/:id", rc.DeleteRole)
		roles.GET("/:id", rc.GetRole)
		roles.GET("", rc.ListRoles)
	}
}

// CreateRole endpoint
func (rc *RoleController) CreateRole(c *gin.Context) {
	var role model.Role
	if err := c.ShouldBindJSON(&role); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid role data", sentinel_errors.ErrInvalidRoleData)
		return
	}
	creatorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sentinel_errors.ErrUnauthorized)
		return
	}

	createdRole, err := rc.roleService.CreateRole(c, role, creatorID)
	if err != nil {
		if errors.Is(err, sentinel_errors.ErrRoleConflict) {
			util.RespondWithError(c, http.StatusConflict, "Role already exists", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create role", err)
		}
		return
	}

	c.JSON(http.StatusCreated, createdRole)
}

// UpdateRole endpoint
func (rc *RoleController) UpdateRole(c *gin.Context) {
	roleID := c.Param("id")
	var role model.Role
	if err := c.ShouldBindJSON(&role); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid role data", err)
		return
	}
	role.ID = roleID
	updaterID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedRole, err := rc.roleService.UpdateRole(c, role, updaterID)
	if err != nil {
		switch {
		case errors.Is(err, sentinel_errors.ErrRoleNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Role not found", err)
		case errors.Is(err, sentinel_errors.ErrSystemRoleImmutable):
			util.RespondWithError(c, http.StatusForbidden, "System roles cannot be modified", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update role", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedRole)
}

// DeleteRole endpoint
func (rc *RoleController) DeleteRole(c *gin.Context) {
	roleID := c.Param("id")
	deleterID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := rc.roleService.DeleteRole(c, roleID, deleterID); err != nil {
		switch {
		case errors.Is(err, sentinel_errors.ErrRoleNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Role not found", err)
		case errors.Is(err, sentinel_errors.ErrSystemRoleImmutable):
			util.RespondWithError(c, http.StatusForbidden, "System roles cannot be deleted", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete role", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetRole endpoint
func (rc *RoleController) GetRole(c *gin.Context) {
	roleID := c.Param("id")

	role, err := rc.roleService.GetRole(c, roleID)
	if err != nil {
		if errors.Is(err, sentinel_errors.ErrRoleNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Role not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve role", err)
		}
		return
	}

	c.JSON(http.StatusOK, role)
}

// ListRoles endpoint
func (rc *RoleController) ListRoles(c *gin.Context) {
	roles, err := rc.roleService.ListRoles(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list roles", err)
		return
	}

	c.JSON(http.StatusOK, roles)
}
