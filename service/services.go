// service/services.go
package service

import (
	"github.com/smartnest/sentinel/audit"
	"github.com/smartnest/sentinel/registry"
	"github.com/smartnest/sentinel/util"
)

type Services struct {
	Access      IAccessService
	Review      IReviewService
	User        IUserService
	Role        IRoleService
	DeviceGroup IDeviceGroupService
}

func InitializeServices(
	store *registry.Store,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	cacheService Cache,
	notificationSvc Notifier,
	eventBus *util.EventBus,
	clock util.Clock,
) (*Services, error) {
	services := &Services{
		Access:      NewAccessService(store, validationUtil, cacheService, notificationSvc, eventBus, auditService, clock),
		Review:      NewReviewService(store, notificationSvc, eventBus, auditService, clock),
		User:        NewUserService(store, validationUtil, cacheService, notificationSvc, eventBus, auditService, clock),
		Role:        NewRoleService(store, validationUtil, notificationSvc, eventBus, clock),
		DeviceGroup: NewDeviceGroupService(store, validationUtil, notificationSvc, eventBus, clock),
	}

	return services, nil
}
