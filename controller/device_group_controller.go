// controller/device_group_controller.go
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

type DeviceGroupController struct {
	deviceGroupService service.IDeviceGroupService
}

func NewDeviceGroupController(deviceGroupService service.IDeviceGroupService) *DeviceGroupController {
	return &DeviceGroupController{
		deviceGroupService: deviceGroupService,
	}
}

// RegisterRoutes registers the API routes
func (dc *DeviceGroupController) RegisterRoutes(r *gin.RouterGroup) {
	groups := r.Group("/device-groups")
	{
		groups.POST("", dc.CreateDeviceGroup)
		groups.PUT("/:id", dc.UpdateDeviceGroup)
		groups.DELETE("/:id", dc.DeleteDeviceGroup)
		groups.GET("/:id", dc.GetDeviceGroup)
		groups.GET("", dc.ListDeviceGroups)
	}
}

// CreateDeviceGroup endpoint
func (dc *DeviceGroupController) CreateDeviceGroup(c *gin.Context) {
	var group model.DeviceGroup
	if err := c.ShouldBindJSON(&group); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid device group data", sentinel_errors.ErrInvalidDeviceGroupData)
		return
	}
	creatorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sentinel_errors.ErrUnauthorized)
		return
	}

	createdGroup, err := dc.deviceGroupService.CreateDeviceGroup(c, group, creatorID)
	if err != nil {
		if errors.Is(err, sentinel_errors.ErrDeviceGroupConflict) {
			util.RespondWithError(c, http.StatusConflict, "Device group already exists", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create device group", err)
		}
		return
	}

	c.JSON(http.StatusCreated, createdGroup)
}

// UpdateDeviceGroup endpoint
func (dc *DeviceGroupController) UpdateDeviceGroup(c *gin.Context) {
	groupID := c.Param("id")
	var group model.DeviceGroup
	if err := c.ShouldBindJSON(&group); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid device group data", err)
		return
	}
	group.ID = groupID
	updaterID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedGroup, err := dc.deviceGroupService.UpdateDeviceGroup(c, group, updaterID)
	if err != nil {
		if errors.Is(err, sentinel_errors.ErrDeviceGroupNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Device group not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update device group", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedGroup)
}

// DeleteDeviceGroup endpoint
func (dc *DeviceGroupController) DeleteDeviceGroup(c *gin.Context) {
	groupID := c.Param("id")
	deleterID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := dc.deviceGroupService.DeleteDeviceGroup(c, groupID, deleterID); err != nil {
		if errors.Is(err, sentinel_errors.ErrDeviceGroupNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Device group not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete device group", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetDeviceGroup endpoint
func (dc *DeviceGroupController) GetDeviceGroup(c *gin.Context) {
	groupID := c.Param("id")

	group, err := dc.deviceGroupService.GetDeviceGroup(c, groupID)
	if err != nil {
		if errors.Is(err, sentinel_errors.ErrDeviceGroupNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Device group not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve device group", err)
		}
		return
	}

	c.JSON(http.StatusOK, group)
}

// ListDeviceGroups endpoint
func (dc *DeviceGroupController) ListDeviceGroups(c *gin.Context) {
	groups, err := dc.deviceGroupService.ListDeviceGroups(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list device groups", err)
		return
	}

	c.JSON(http.StatusOK, groups)
}
