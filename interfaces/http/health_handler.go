package http

import (
	"net/http"

	"rating-dashboard/domain/dto"
	"rating-dashboard/usecase"

	"github.com/gin-gonic/gin"
)

type IHealthHandler interface {
	Healthz(c *gin.Context)
}

type HealthHandler struct {
	dashboardUseCase usecase.IDashboardUseCase
}

func NewHealthHandler(dashboardUseCase usecase.IDashboardUseCase) IHealthHandler {
	return &HealthHandler{dashboardUseCase: dashboardUseCase}
}

// Healthz returns OK for health checks along with the table's status.
func (h *HealthHandler) Healthz(ctx *gin.Context) {
	table := dto.ListIdle
	if h.dashboardUseCase != nil {
		table = h.dashboardUseCase.Snapshot().Table.Status
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "table": table})
}
