// controller/user_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	sentinel_errors "github.com/smartnest/sentinel/errors"
	"github.com/smartnest/sentinel/model"
	"github.com/smartnest/sentinel/service"
	"github.com/smartnest/sentinel/util"
	helper_util "github.com/smartnest/sentinel/util/helper"
)

type UserController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// RegisterRoutes registers the API routes
func (uc *UserController) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.POST("", uc.CreateUser)
		users.PUT("/:id", uc.UpdateUser)
		users.DELETE("/:id", uc.DeleteUser)
		users.GET("/:id", uc.GetUser)
		users.GET("", uc.ListUsers)
		users.POST("/search", uc.SearchUsers)
	}
}

// CreateUser endpoint
func (uc *UserController) CreateUser(c *gin.Context) {
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid user data", sentinel_errors.ErrInvalidUserData)
		return
	}
	creatorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sentinel_errors.ErrUnauthorized)
		return
	}

	createdUser, err := uc.userService.CreateUser(c, user, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, sentinel_errors.ErrUserConflict):
			util.RespondWithError(c, http.StatusConflict, "User already exists", err)
		case errors.Is(err, sentinel_errors.ErrRoleNotFound):
			util.RespondWithError(c, http.StatusBadRequest, "Unknown role", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create user", err)
		}
		return
	}

	c.JSON(http.StatusCreated, createdUser)
}

// UpdateUser endpoint
func (uc *UserController) UpdateUser(c *gin.Context) {
	userID := c.Param("id")
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid user data", err)
		return
	}
	user.ID = userID
	updaterID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedUser, err := uc.userService.UpdateUser(c, user, updaterID)
	if err != nil {
		switch {
		case errors.Is(err, sentinel_errors.ErrUserNotFound):
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		case errors.Is(err, sentinel_errors.ErrRoleNotFound):
			util.RespondWithError(c, http.StatusBadRequest, "Unknown role", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update user", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedUser)
}

// DeleteUser endpoint
func (uc *UserController) DeleteUser(c *gin.Context) {
	userID := c.Param("id")
	deleterID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := uc.userService.DeleteUser(c, userID, deleterID); err != nil {
		if errors.Is(err, sentinel_errors.ErrUserNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetUser endpoint
func (uc *UserController) GetUser(c *gin.Context) {
	userID := c.Param("id")

	user, err := uc.userService.GetUser(c, userID)
	if err != nil {
		if errors.Is(err, sentinel_errors.ErrUserNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve user", err)
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers endpoint
func (uc *UserController) ListUsers(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	users, err := uc.userService.ListUsers(c, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list users", err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// SearchUsers endpoint
func (uc *UserController) SearchUsers(c *gin.Context) {
	var criteria model.UserSearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid search criteria", err)
		return
	}

	users, err := uc.userService.SearchUsers(c, criteria)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to search users", err)
		return
	}

	c.JSON(http.StatusOK, users)
}
