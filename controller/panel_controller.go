// controller/panel_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	"github.com/dev-mohitbeniwal/workbench/explorer"
	"github.com/dev-mohitbeniwal/workbench/model"
	"github.com/dev-mohitbeniwal/workbench/service"
	"github.com/dev-mohitbeniwal/workbench/util"
)

type PanelController struct {
	panelService service.IPanelService
}

func NewPanelController(panelService service.IPanelService) *PanelController {
	return &PanelController{
		panelService: panelService,
	}
}

// RegisterRoutes registers the API routes
func (pc *PanelController) RegisterRoutes(r *gin.RouterGroup) {
	panels := r.Group("/panels")
	{
		panels.GET("", pc.ListPanels)
		panels.PUT("/project-panel/project", pc.SetProject)
		panels.GET("/:id", pc.GetPanel)
		panels.POST("/:id/actions", pc.Dispatch)
		panels.POST("/:id/request", pc.RequestItems)
		panels.PUT("/:id/search", pc.SetSearchValue)
	}
}

type requestItemsBody struct {
	CriteriaChanged *bool `json:"criteriaChanged"`
	Background      bool  `json:"background"`
}

type setProjectBody struct {
	UUID    string `json:"uuid"`
	Trashed bool   `json:"trashed"`
}

type searchBody struct {
	Value string `json:"value"`
}

type loadResponse struct {
	explorer.Outcome
	Error string `json:"error,omitempty"`
}

func (pc *PanelController) ListPanels(c *gin.Context) {
	c.JSON(http.StatusOK, pc.panelService.ListPanels(c))
}

func (pc *PanelController) GetPanel(c *gin.Context) {
	view, err := pc.panelService.GetPanel(c, c.Param("id"))
	if err != nil {
		util.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Dispatch applies one action and returns the resulting panel.
func (pc *PanelController) Dispatch(c *gin.Context) {
	var action model.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid panel action", wb_errors.ErrInvalidAction)
		return
	}

	view, err := pc.panelService.Dispatch(c, c.Param("id"), action)
	if err != nil {
		util.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RequestItems reloads the current page. A failed load is still a 200: the
// outcome and the panel state carry the failure.
func (pc *PanelController) RequestItems(c *gin.Context) {
	var body requestItemsBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid request options", err)
			return
		}
	}
	opts := explorer.RequestOptions{CriteriaChanged: true, Background: body.Background}
	if body.CriteriaChanged != nil {
		opts.CriteriaChanged = *body.CriteriaChanged
	}

	out, err := pc.panelService.RequestItems(c, c.Param("id"), opts)
	if err != nil {
		util.RespondWithServiceError(c, err)
		return
	}
	resp := loadResponse{Outcome: out}
	if out.Err != nil {
		resp.Error = out.Err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (pc *PanelController) SetProject(c *gin.Context) {
	var body setProjectBody
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid project", err)
		return
	}

	view, err := pc.panelService.SetProject(c, body.UUID, body.Trashed)
	if err != nil {
		util.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (pc *PanelController) SetSearchValue(c *gin.Context) {
	var body searchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid search value", err)
		return
	}

	view, err := pc.panelService.SetSearchValue(c, c.Param("id"), body.Value)
	if err != nil {
		util.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
