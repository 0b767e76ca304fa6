package http

import (
	"net/http"
	"strings"

	"rating-dashboard/domain/dto"
	"rating-dashboard/usecase"

	"github.com/gin-gonic/gin"
)

// DashboardTemplate is the page every dashboard route renders.
const DashboardTemplate = "dashboard.tmpl"

type IDashboardHandler interface {
	Page(c *gin.Context)
	Refresh(c *gin.Context)
	OpenDetail(c *gin.Context)
	CloseDetail(c *gin.Context)

	State(c *gin.Context)
	RefreshJSON(c *gin.Context)
	DetailJSON(c *gin.Context)
	CloseDetailJSON(c *gin.Context)
}

type DashboardHandler struct {
	dashboardUseCase usecase.IDashboardUseCase
}

func NewDashboardHandler(dashboardUseCase usecase.IDashboardUseCase) IDashboardHandler {
	return &DashboardHandler{dashboardUseCase: dashboardUseCase}
}

// Page renders the dashboard. The first visit loads the table.
func (h *DashboardHandler) Page(c *gin.Context) {
	if h.dashboardUseCase.Snapshot().Table.Status == dto.ListIdle {
		h.dashboardUseCase.Refresh(c.Request.Context())
	}
	c.HTML(http.StatusOK, DashboardTemplate, h.dashboardUseCase.Snapshot())
}

func (h *DashboardHandler) Refresh(c *gin.Context) {
	h.dashboardUseCase.Refresh(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/")
}

// ItemIDParam names the query parameter carrying an item id.
const ItemIDParam = "itemId"

func itemID(c *gin.Context) string {
	return strings.TrimSpace(c.Query(ItemIDParam))
}

func detailStatus(itemID string, modal dto.ModalState) int {
	switch {
	case itemID == "":
		return http.StatusBadRequest
	case modal.Status == dto.ModalError:
		return http.StatusBadGateway
	}
	return http.StatusOK
}

// OpenDetail renders the page with the detail modal for ?itemId=.
func (h *DashboardHandler) OpenDetail(c *gin.Context) {
	ctx := c.Request.Context()
	if h.dashboardUseCase.Snapshot().Table.Status == dto.ListIdle {
		h.dashboardUseCase.Refresh(ctx)
	}
	id := itemID(c)
	modal := h.dashboardUseCase.OpenDetail(ctx, id)
	status := detailStatus(id, modal)
	c.HTML(status, DashboardTemplate, h.dashboardUseCase.Snapshot())
}

func (h *DashboardHandler) CloseDetail(c *gin.Context) {
	h.dashboardUseCase.CloseDetail(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *DashboardHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboardUseCase.Snapshot())
}

func (h *DashboardHandler) RefreshJSON(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboardUseCase.Refresh(c.Request.Context()))
}

func (h *DashboardHandler) DetailJSON(c *gin.Context) {
	id := itemID(c)
	modal := h.dashboardUseCase.OpenDetail(c.Request.Context(), id)
	c.JSON(detailStatus(id, modal), modal)
}

func (h *DashboardHandler) CloseDetailJSON(c *gin.Context) {
	h.dashboardUseCase.CloseDetail(c.Request.Context())
	c.Status(http.StatusNoContent)
}
