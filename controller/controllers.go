// controller/controllers.go
package controller

import (
	"github.com/smartnest/sentinel/service"
	"github.com/smartnest/sentinel/util"
)

type Controllers struct {
	User        *UserController
	Access      *AccessController
	Review      *ReviewController
	Role        *RoleController
	DeviceGroup *DeviceGroupController
}

func InitializeControllers(services *service.Services, clock util.Clock) *Controllers {
	return &Controllers{
		User:        NewUserController(services.User),
		Access:      NewAccessController(services.Access, clock),
		Review:      NewReviewController(services.Review),
		Role:        NewRoleController(services.Role),
		DeviceGroup: NewDeviceGroupController(services.DeviceGroup),
	}
}
