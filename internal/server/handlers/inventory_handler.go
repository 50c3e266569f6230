package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/karanvs/stockbook/internal/domain/models"
	"github.com/karanvs/stockbook/internal/service/inventory"
)

// InventoryHandler serves the inventory screen's endpoints.
type InventoryHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

// NewInventoryHandler constructs the inventory HTTP adapter.
func NewInventoryHandler(svc *inventory.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

// List returns all inventory items annotated with their live movement tally.
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.svc.ListWithTotals(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading inventory", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load inventory data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
}

type addItemRequest struct {
	Name          string  `json:"name" binding:"required"`
	ProductCode   string  `json:"productCode"`
	Brand         string  `json:"brand"`
	Model         string  `json:"model"`
	Size          string  `json:"size"`
	Color         string  `json:"color"`
	Price         float64 `json:"price"`
	Specification string  `json:"specification"`
	OpeningQty    int     `json:"qty"`
	Category      string  `json:"category"`
	Customisation string  `json:"customisationAvailable"`
	Image         string  `json:"image"`
}

// Add creates a new inventory item.
func (h *InventoryHandler) Add(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	serial, err := h.svc.AddItem(c.Request.Context(), inventory.AddItemRequest{
		Name:          req.Name,
		ProductCode:   req.ProductCode,
		Brand:         req.Brand,
		Model:         req.Model,
		Size:          req.Size,
		Color:         req.Color,
		Price:         req.Price,
		Specification: req.Specification,
		OpeningQty:    req.OpeningQty,
		Category:      req.Category,
		Customisation: req.Customisation,
		Image:         req.Image,
	})
	if err != nil {
		h.renderInventoryError(c, err, "failed to add inventory")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "inventoryNo": serial})
}

type movementRequest struct {
	SerialNumber string `json:"serialNumber" binding:"required"`
	Status       string `json:"status" binding:"required"`
	VendorName   string `json:"vendorName"`
	Qty          int    `json:"qty" binding:"required"`
}

// RecordMovement appends one IN/OUT movement.
func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	var req movementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.svc.RecordMovement(c.Request.Context(), inventory.MovementRequest{
		SerialNumber: req.SerialNumber,
		Direction:    models.MovementDirection(strings.ToUpper(req.Status)),
		Counterparty: req.VendorName,
		Qty:          req.Qty,
	})
	if err != nil {
		h.renderInventoryError(c, err, "failed to record movement")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// Categories returns the dropdown sheet's category options.
func (h *InventoryHandler) Categories(c *gin.Context) {
	categories, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading categories", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

func (h *InventoryHandler) renderInventoryError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, inventory.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity cannot exceed available stock"})
	case errors.Is(err, inventory.ErrUnknownSerial):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown serial number"})
	case errors.Is(err, inventory.ErrInvalidQty), errors.Is(err, inventory.ErrMissingName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
	}
}
