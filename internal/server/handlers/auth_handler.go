package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/karanvs/stockbook/internal/domain/models"
	"github.com/karanvs/stockbook/internal/service/auth"
)

// SessionContextKey is where the session middleware stores the restored
// session on the request context.
const SessionContextKey = "session"

// SessionFrom pulls the authenticated session out of the gin context.
func SessionFrom(c *gin.Context) *models.Session {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return nil
	}
	session, _ := value.(*models.Session)
	return session
}

// AuthHandler serves login, logout and screen-selection endpoints.
type AuthHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewAuthHandler constructs the auth HTTP adapter.
func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates against the login sheet. Every failure, bad
// credentials and unreachable backend alike, renders the same generic
// message; the distinction lives only in the service logs.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	session, ok := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"token":        session.Token,
		"user":         session.Account,
		"activeScreen": session.ActiveScreen,
		"pageAccess":   auth.PermittedScreens(session.Account),
	})
}

// Logout clears the caller's session unconditionally.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := SessionFrom(c)
	if session != nil {
		h.svc.Logout(c.Request.Context(), session.Token)
	}
	c.Status(http.StatusNoContent)
}

// ActiveScreen returns the screen the session last navigated to, already
// resolved against the account's page access.
func (h *AuthHandler) ActiveScreen(c *gin.Context) {
	session := SessionFrom(c)
	c.JSON(http.StatusOK, gin.H{"activeScreen": session.ActiveScreen})
}

type screenRequest struct {
	Screen string `json:"screen" binding:"required"`
}

// SetActiveScreen persists a navigation change. A screen outside the
// account's page access resolves to its first permitted screen rather than
// erroring.
func (h *AuthHandler) SetActiveScreen(c *gin.Context) {
	var req screenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "screen is required"})
		return
	}

	session := SessionFrom(c)
	resolved := h.svc.SetActiveScreen(c.Request.Context(), session, req.Screen)
	c.JSON(http.StatusOK, gin.H{"activeScreen": resolved})
}
