// controller/notification_controller.go
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/workbench/model"
	"github.com/dev-mohitbeniwal/workbench/util"
)

// NotificationReader is the read side of the notification sink.
type NotificationReader interface {
	Recent(limit int) []model.Notification
	Navigations() []model.Navigation
}

type NotificationController struct {
	notifications NotificationReader
}

func NewNotificationController(notifications NotificationReader) *NotificationController {
	return &NotificationController{notifications: notifications}
}

func (nc *NotificationController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/notifications", nc.ListNotifications)
	r.GET("/navigations", nc.ListNavigations)
}

// ListNotifications returns the newest notifications first.
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid limit", err)
		return
	}
	c.JSON(http.StatusOK, nc.notifications.Recent(limit))
}

func (nc *NotificationController) ListNavigations(c *gin.Context) {
	c.JSON(http.StatusOK, nc.notifications.Navigations())
}
