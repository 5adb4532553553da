// controller/review_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartnest/sentinel/config"
	sentinel_errors "github.com/smartnest/sentinel/errors"
	"github.com/smartnest/sentinel/model"
	"github.com/smartnest/sentinel/service"
	"github.com/smartnest/sentinel/util"
)

type ReviewController struct {
	reviewService service.IReviewService
}

func NewReviewController(reviewService service.IReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// RegisterRoutes registers the API routes
func (rc *ReviewController) RegisterRoutes(r *gin.RouterGroup) {
	reviews := r.Group("/reviews")
	{
		reviews.GET("/due", rc.ListReviewDue)
		reviews.POST("/:id/complete", rc.CompleteReview)
		reviews.POST("/complete-all", rc.CompleteAllReviews)
		reviews.GET("/history", rc.ListReviewHistory)
	}
}

func (rc *ReviewController) cadenceFromQuery(c *gin.Context) model.ReviewCadence {
	cadence := model.ReviewCadence(c.Query("cadence"))
	if cadence == "" {
		cadence = model.ReviewCadence(config.GetString("review.defaultCadence"))
	}
	return cadence
}

// ListReviewDue endpoint
func (rc *ReviewController) ListReviewDue(c *gin.Context) {
	due, err := rc.reviewService.ListReviewDue(c, rc.cadenceFromQuery(c))
	if err != nil {
		if errors.Is(err, sentinel_errors.ErrInvalidCadence) {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid review cadence", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to compute review-due set", err)
		}
		return
	}

	c.JSON(http.StatusOK, due)
}

// CompleteReview endpoint
func (rc *ReviewController) CompleteReview(c *gin.Context) {
	userID := c.Param("id")
	reviewerID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sentinel_errors.ErrUnauthorized)
		return
	}

	if err := rc.reviewService.CompleteReview(c, userID, reviewerID); err != nil {
		if errors.Is(err, sentinel_errors.ErrUserNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to complete review", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// CompleteAllReviews endpoint
func (rc *ReviewController) CompleteAllReviews(c *gin.Context) {
	reviewerID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sentinel_errors.ErrUnauthorized)
		return
	}

	entry, err := rc.reviewService.CompleteAllReviews(c, reviewerID, rc.cadenceFromQuery(c))
	if err != nil {
		if errors.Is(err, sentinel_errors.ErrInvalidCadence) {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid review cadence", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to complete reviews", err)
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// ListReviewHistory endpoint
func (rc *ReviewController) ListReviewHistory(c *gin.Context) {
	history, err := rc.reviewService.ListReviewHistory(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list review history", err)
		return
	}

	c.JSON(http.StatusOK, history)
}
