// controller/access_controller.go
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

type AccessController struct {
	accessService service.IAccessService
	clock         util.Clock
}

func NewAccessController(accessService service.IAccessService, clock util.Clock) *AccessController {
	return &AccessController{
		accessService: accessService,
		clock:         clock,
	}
}

// GrantRequest carries the grant parameters.
type GrantRequest struct {
	DurationHours int    `json:"duration_hours" binding:"required"`
	Template      string `json:"template,omitempty"`
}

// RegisterRoutes registers the API routes
func (ac *AccessController) RegisterRoutes(r *gin.RouterGroup) {
	access := r.Group("/access")
	{
		access.POST("/grants/:id", ac.GrantTemporaryAccess)
		access.DELETE("/grants/:id", ac.RevokeTemporaryAccess)
		access.POST("/sweep", ac.SweepExpired)
		access.GET("/effective/:id", ac.EffectivePermissions)
		access.GET("/templates", ac.ListTemplates)
		access.POST("/templates", ac.CreateTemplate)
		access.DELETE("/templates/:name", ac.DeleteTemplate)
	}
}

// GrantTemporaryAccess endpoint
func (ac *AccessController) GrantTemporaryAccess(c *gin.Context) {
	userID := c.Param("id")
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid grant request", err)
		return
	}
	grantorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sentinel_errors.ErrUnauthorized)
		return
	}

	user, err := ac.accessService.GrantTemporaryAccess(c, userID, req.DurationHours, req.Template, grantorID)
	if err != nil {
		switch {
		case errors.Is(err, sentinel_errors.ErrUserNotFound):
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		case errors.Is(err, sentinel_errors.ErrInvalidDuration):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid grant duration", err)
		case errors.Is(err, sentinel_errors.ErrTemplateNotFound):
			util.RespondWithError(c, http.StatusBadRequest, "Unknown access template", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to grant access", err)
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// RevokeTemporaryAccess endpoint
func (ac *AccessController) RevokeTemporaryAccess(c *gin.Context) {
	userID := c.Param("id")
	revokerID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sentinel_errors.ErrUnauthorized)
		return
	}

	if err := ac.accessService.RevokeTemporaryAccess(c, userID, revokerID); err != nil {
		switch {
		case errors.Is(err, sentinel_errors.ErrUserNotFound):
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		case errors.Is(err, sentinel_errors.ErrNoTemporaryAccess):
			util.RespondWithError(c, http.StatusConflict, "User has no temporary access", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to revoke access", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// SweepExpired endpoint triggers an immediate sweep pass, outside of the
// recurring timer.
func (ac *AccessController) SweepExpired(c *gin.Context) {
	demoted, err := ac.accessService.SweepExpired(c, ac.clock.Now())
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to sweep expired grants", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"demoted_user_ids": demoted})
}

// EffectivePermissions endpoint
func (ac *AccessController) EffectivePermissions(c *gin.Context) {
	userID := c.Param("id")

	permissions, err := ac.accessService.EffectivePermissions(c, userID)
	if err != nil {
		if errors.Is(err, sentinel_errors.ErrUserNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve permissions", err)
		}
		return
	}

	deviceGroups, err := ac.accessService.EffectiveDeviceGroups(c, userID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve device groups", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"permissions":   permissions,
		"device_groups": deviceGroups,
	})
}

// ListTemplates endpoint
func (ac *AccessController) ListTemplates(c *gin.Context) {
	templates, err := ac.accessService.ListTemplates(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list templates", err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

// CreateTemplate endpoint
func (ac *AccessController) CreateTemplate(c *gin.Context) {
	var template model.AccessTemplate
	if err := c.ShouldBindJSON(&template); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid template data", err)
		return
	}

	created, err := ac.accessService.CreateTemplate(c, template)
	if err != nil {
		if errors.Is(err, sentinel_errors.ErrTemplateConflict) {
			util.RespondWithError(c, http.StatusConflict, "Template already exists", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create template", err)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// DeleteTemplate endpoint
func (ac *AccessController) DeleteTemplate(c *gin.Context) {
	name := c.Param("name")

	if err := ac.accessService.DeleteTemplate(c, name); err != nil {
		if errors.Is(err, sentinel_errors.ErrTemplateNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Template not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete template", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
