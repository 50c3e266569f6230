package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/karanvs/stockbook/internal/domain/models"
	"github.com/karanvs/stockbook/internal/service/accounts"
)

// AccountsHandler serves the settings screen's user administration.
type AccountsHandler struct {
	svc    *accounts.Service
	logger *zap.Logger
}

// NewAccountsHandler constructs the accounts HTTP adapter.
func NewAccountsHandler(svc *accounts.Service, logger *zap.Logger) *AccountsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountsHandler{svc: svc, logger: logger}
}

// List returns every login account.
func (h *AccountsHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading accounts", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load accounts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": list})
}

type accountRequest struct {
	SerialNo    string   `json:"serialNo"`
	DisplayName string   `json:"userName"`
	LoginID     string   `json:"userId" binding:"required"`
	Password    string   `json:"password" binding:"required"`
	Role        string   `json:"role"`
	PageAccess  []string `json:"pageAccess"`
}

func (r accountRequest) toModel() models.Account {
	return models.Account{
		SerialNo:    r.SerialNo,
		DisplayName: r.DisplayName,
		LoginID:     r.LoginID,
		Password:    r.Password,
		Role:        r.Role,
		PageAccess:  r.PageAccess,
	}
}

// Create adds a login account.
func (h *AccountsHandler) Create(c *gin.Context) {
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), req.toModel())
	if err != nil {
		h.renderAccountError(c, err, "failed to create account")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": created})
}

// Update overwrites the account at the given spreadsheet row.
func (h *AccountsHandler) Update(c *gin.Context) {
	rowIndex, err := strconv.Atoi(c.Param("rowIndex"))
	if err != nil || rowIndex < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid row index"})
		return
	}

	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.Update(c.Request.Context(), rowIndex, req.toModel()); err != nil {
		h.renderAccountError(c, err, "failed to update account")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete removes the account at the given spreadsheet row.
func (h *AccountsHandler) Delete(c *gin.Context) {
	rowIndex, err := strconv.Atoi(c.Param("rowIndex"))
	if err != nil || rowIndex < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid row index"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), rowIndex); err != nil {
		h.renderAccountError(c, err, "failed to delete account")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AccountsHandler) renderAccountError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, accounts.ErrMasterAdmin):
		c.JSON(http.StatusForbidden, gin.H{"error": "the master administrator cannot be removed"})
	case errors.Is(err, accounts.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
	}
}
