package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/karanvs/stockbook/internal/domain/models"
	"github.com/karanvs/stockbook/internal/server/handlers"
	"github.com/karanvs/stockbook/internal/service/auth"
)

// Handlers bundles the per-screen HTTP adapters the router wires up.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Dashboard *handlers.DashboardHandler
	Inventory *handlers.InventoryHandler
	History   *handlers.HistoryHandler
	Accounts  *handlers.AccountsHandler
}

// New wires the Gin engine with required routes and middlewares. Every screen
// group is gated twice: a valid session, then that account's page access for
// the screen.
func New(h Handlers, authSvc *auth.Service, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/login", h.Auth.Login)

	authed := api.Group("", requireSession(authSvc))
	authed.POST("/logout", h.Auth.Logout)
	authed.GET("/session/screen", h.Auth.ActiveScreen)
	authed.PUT("/session/screen", h.Auth.SetActiveScreen)

	dashboard := authed.Group("/dashboard", requireScreen(models.ScreenDashboard))
	dashboard.GET("", h.Dashboard.Metrics)

	inventory := authed.Group("/inventory", requireScreen(models.ScreenInventory))
	inventory.GET("", h.Inventory.List)
	inventory.POST("", h.Inventory.Add)
	inventory.POST("/movements", h.Inventory.RecordMovement)
	inventory.GET("/categories", h.Inventory.Categories)

	history := authed.Group("/history", requireScreen(models.ScreenHistory))
	history.GET("", h.History.List)

	settings := authed.Group("/accounts", requireScreen(models.ScreenSettings))
	settings.GET("", h.Accounts.List)
	settings.POST("", h.Accounts.Create)
	settings.PUT("/:rowIndex", h.Accounts.Update)
	settings.DELETE("/:rowIndex", h.Accounts.Delete)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// requireSession restores the session from the Authorization bearer token and
// aborts with 401 when none is found.
func requireSession(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		session, ok := authSvc.Session(c.Request.Context(), token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(handlers.SessionContextKey, session)
		c.Next()
	}
}

// requireScreen gates a route group on the account's page access.
func requireScreen(screen string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := handlers.SessionFrom(c)
		if session == nil || !auth.Allowed(session.Account, screen) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "screen not permitted"})
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return strings.TrimSpace(header)
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
