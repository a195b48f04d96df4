package routes

import (
	"github.com/bacdepzai/orderdesk/internal/config"
	domainRepo "github.com/bacdepzai/orderdesk/internal/domain/repository"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/handler"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Settings  *handler.SettingsHandler
	Draft     *handler.DraftHandler
	Order     *handler.OrderHandler
	Stats     *handler.StatsHandler
	Admin     *handler.AdminHandler
	Assistant *handler.AssistantHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Roles           middleware.RoleResolver
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Router is the gin engine plus the limiters whose cleanup loops must be
// stopped on shutdown.
type Router struct {
	*gin.Engine
	limiters []*middleware.ClientRateLimiter
}

// Close stops the rate limiter cleanup loops.
func (r *Router) Close() {
	for _, l := range r.limiters {
		l.Stop()
	}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *Router {
	router := gin.New()

	apiLimiter := middleware.NewClientRateLimiter(middleware.PerWindow(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration))
	assistantLimiter := middleware.NewClientRateLimiter(middleware.PerWindow(deps.Cfg.RateLimit.AssistantRequests, deps.Cfg.RateLimit.AssistantDuration))

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RoleMiddleware(deps.Roles))
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(apiLimiter.Middleware())
	{
		registerAuthRoutes(v1, h)
		registerDraftRoutes(v1, h, deps)
		registerOrderRoutes(v1, h)
		registerOwnerRoutes(v1, h)
		registerAssistantRoutes(v1, h, assistantLimiter)

		v1.GET("/printer/status", h.Printer.GetStatus)
	}

	return &Router{Engine: router, limiters: []*middleware.ClientRateLimiter{apiLimiter, assistantLimiter}}
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/unlock", h.Auth.Unlock)
		auth.GET("/status", h.Auth.Status)
		auth.PUT("/pin", middleware.RequireOwner(), h.Auth.ChangePin)
	}
}

func registerDraftRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	draft := v1.Group("/draft")
	{
		draft.GET("", h.Draft.Get)
		draft.PUT("", h.Draft.Update)
		draft.DELETE("", h.Draft.Reset)
		draft.POST("/items", h.Draft.AddItem)
		draft.PATCH("/items/:index", h.Draft.UpdateItem)
		draft.DELETE("/items/:index", h.Draft.RemoveItem)
		draft.POST("/save", idempotent, h.Draft.Save)
		draft.GET("/share", h.Draft.Share)
		draft.GET("/invoice.pdf", h.Draft.Invoice)
		draft.POST("/print", h.Printer.PrintDraft)
	}
}

func registerOrderRoutes(v1 *gin.RouterGroup, h *Handlers) {
	orders := v1.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.DELETE("", middleware.RequireOwner(), h.Order.Clear)
		orders.GET("/export.csv", middleware.RequireOwner(), h.Order.ExportCSV)
		orders.GET("/export.xlsx", middleware.RequireOwner(), h.Order.ExportXLSX)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/load", h.Order.Load)
		orders.POST("/:id/duplicate", h.Order.Duplicate)
		orders.GET("/:id/share", h.Order.Share)
		orders.GET("/:id/invoice.pdf", h.Order.Invoice)
		orders.POST("/:id/print", h.Printer.PrintOrder)
		orders.DELETE("/:id", middleware.RequireOwner(), h.Order.Delete)
	}
}

func registerOwnerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	owner := v1.Group("")
	owner.Use(middleware.RequireOwner())
	{
		owner.GET("/settings", h.Settings.GetSettings)
		owner.PUT("/settings", h.Settings.UpdateSettings)
		owner.GET("/stats/monthly", h.Stats.Monthly)
		owner.POST("/admin/reset", h.Admin.Reset)
	}
}

func registerAssistantRoutes(v1 *gin.RouterGroup, h *Handlers, limiter *middleware.ClientRateLimiter) {
	assistant := v1.Group("/assistant")
	{
		assistant.POST("", limiter.Middleware(), h.Assistant.Ask)
		assistant.GET("", h.Assistant.History)
		assistant.DELETE("", h.Assistant.Clear)
	}
}
