// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartnest/sentinel/controller"
	"github.com/smartnest/sentinel/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
	authGroups []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))
	if len(authGroups) > 0 {
		router.Use(middleware.GroupAuthMiddleware(authGroups))
	} else {
		router.Use(middleware.LocalIdentity("local"))
	}

	api := router.Group("/api/v1")

	controllers.User.RegisterRoutes(api)
	controllers.Access.RegisterRoutes(api)
	controllers.Review.RegisterRoutes(api)
	controllers.Role.RegisterRoutes(api)
	controllers.DeviceGroup.RegisterRoutes(api)

	return router
}
