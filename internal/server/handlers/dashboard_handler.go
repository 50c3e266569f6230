package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/karanvs/stockbook/internal/service/reporting"
)

// DashboardHandler serves the dashboard screen's aggregate metrics.
type DashboardHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewDashboardHandler constructs the dashboard HTTP adapter.
func NewDashboardHandler(svc *reporting.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, logger: logger}
}

// Metrics recomputes the dashboard aggregates from fresh sheet data.
func (h *DashboardHandler) Metrics(c *gin.Context) {
	metrics, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading dashboard", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load dashboard data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "metrics": metrics})
}
