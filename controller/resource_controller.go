// controller/resource_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/workbench/service"
	"github.com/dev-mohitbeniwal/workbench/util"
	helper_util "github.com/dev-mohitbeniwal/workbench/util/helper"
)

type ResourceController struct {
	treeService service.ITreeService
}

func NewResourceController(treeService service.ITreeService) *ResourceController {
	return &ResourceController{treeService: treeService}
}

func (rc *ResourceController) RegisterRoutes(r *gin.RouterGroup) {
	resources := r.Group("/resources")
	{
		resources.GET("/:uuid", rc.GetResource)
		resources.GET("/:uuid/children", rc.ListChildren)
	}
}

func (rc *ResourceController) GetResource(c *gin.Context) {
	res, err := rc.treeService.GetResource(c, c.Param("uuid"))
	if err != nil {
		util.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (rc *ResourceController) ListChildren(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	children, err := rc.treeService.Children(c, c.Param("uuid"), limit, offset)
	if err != nil {
		util.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": children, "limit": limit, "offset": offset})
}
