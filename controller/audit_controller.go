// controller/audit_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/workbench/audit"
	"github.com/dev-mohitbeniwal/workbench/util"
	helper_util "github.com/dev-mohitbeniwal/workbench/util/helper"
)

type AuditController struct {
	auditService audit.Service
}

// NewAuditController accepts a nil service; the endpoint then reports the
// audit log as disabled.
func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{auditService: auditService}
}

func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit", ac.QueryLoads)
}

func (ac *AuditController) QueryLoads(c *gin.Context) {
	if ac.auditService == nil {
		util.RespondWithError(c, http.StatusServiceUnavailable, "Audit log is disabled", errors.New("elasticsearch disabled"))
		return
	}
	from, to, err := helper_util.GetTimeRangeParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid time range", err)
		return
	}
	limit, _, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	loads, err := ac.auditService.QueryLoads(c, from, to, c.Query("panel"), limit)
	if err != nil {
		util.RespondWithError(c, http.StatusBadGateway, "Failed to query audit log", err)
		return
	}
	c.JSON(http.StatusOK, loads)
}
