package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/karanvs/stockbook/internal/domain/models"
	"github.com/karanvs/stockbook/internal/service/inventory"
)

// HistoryHandler serves the transaction history screen.
type HistoryHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

// NewHistoryHandler constructs the history HTTP adapter.
func NewHistoryHandler(svc *inventory.Service, logger *zap.Logger) *HistoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryHandler{svc: svc, logger: logger}
}

// List returns movements newest first, optionally filtered by direction
// (status=IN|OUT), counterparty (vendor=...) and a free-text search over
// counterparty and serial number (q=...).
func (h *HistoryHandler) List(c *gin.Context) {
	movements, err := h.svc.Movements(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading history", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load transaction history"})
		return
	}

	status := strings.ToUpper(c.Query("status"))
	vendor := c.Query("vendor")
	search := strings.ToLower(c.Query("q"))

	filtered := make([]models.StockMovement, 0, len(movements))
	for _, m := range movements {
		if status != "" && status != "ALL" && string(m.Direction) != status {
			continue
		}
		if vendor != "" && m.Counterparty != vendor {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Counterparty), search) &&
			!strings.Contains(strings.ToLower(m.SerialNumber), search) {
			continue
		}
		filtered = append(filtered, m)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "transactions": filtered})
}
