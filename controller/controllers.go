// controller/controllers.go
package controller

import "github.com/dev-mohitbeniwal/workbench/service"

type Controllers struct {
	Panel        *PanelController
	Resource     *ResourceController
	Notification *NotificationController
	Audit        *AuditController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Panel:        NewPanelController(services.Panel),
		Resource:     NewResourceController(services.Tree),
		Notification: NewNotificationController(services.Notifications),
		Audit:        NewAuditController(services.Audit),
	}
}
