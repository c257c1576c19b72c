package router

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailops/backoffice/internal/infrastructure/config"
	"github.com/retailops/backoffice/internal/infrastructure/logger"
	"github.com/retailops/backoffice/internal/interfaces/http/handler"
	"github.com/retailops/backoffice/internal/interfaces/http/middleware"
)

// Handlers groups every handler the router wires up
type Handlers struct {
	System      *handler.SystemHandler
	Session     *handler.ReturnSessionHandler
	Transaction *handler.ReturnTransactionHandler
	Reference   *handler.ReferenceHandler
}

// Options controls cross-cutting router behavior
type Options struct {
	CORS          middleware.CORSConfig
	DefaultTenant uuid.UUID
	MaxBodySize   int64
}

// developmentTenantID is the fallback tenant used when requests carry no
// X-Tenant-ID header outside production
var developmentTenantID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// OptionsFromConfig derives router options from the application config
func OptionsFromConfig(cfg *config.Config) Options {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	defaultTenant := uuid.Nil
	if cfg.App.Env != "production" {
		defaultTenant = developmentTenantID
	}

	return Options{
		CORS:          cors,
		DefaultTenant: defaultTenant,
		MaxBodySize:   middleware.DefaultMaxBodySize,
	}
}

// New builds the gin engine with all middleware and routes wired
func New(log *zap.Logger, handlers Handlers, opts Options) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(opts.CORS))

	maxBody := opts.MaxBodySize
	if maxBody <= 0 {
		maxBody = middleware.DefaultMaxBodySize
	}
	engine.Use(middleware.BodyLimit(maxBody))

	engine.GET("/health", handlers.System.Health)
	engine.GET("/ready", handlers.System.Ready)

	api := engine.Group("/api/v1")
	api.Use(middleware.Tenant(opts.DefaultTenant))

	sessions := api.Group("/return-sessions")
	{
		sessions.POST("", handlers.Session.Start)
		sessions.GET("/:id", handlers.Session.Get)
		sessions.PUT("/:id", handlers.Session.Update)
		sessions.DELETE("/:id", handlers.Session.Cancel)

		sessions.GET("/:id/sources", handlers.Session.SearchSources)
		sessions.POST("/:id/source", handlers.Session.ConfirmSource)
		sessions.DELETE("/:id/source", handlers.Session.ClearSource)

		sessions.PUT("/:id/return-lines/:variationId", handlers.Session.SetReturnLine)

		sessions.POST("/:id/exchange-lines", handlers.Session.AddExchangeLine)
		sessions.PATCH("/:id/exchange-lines/:lineId", handlers.Session.UpdateExchangeLine)
		sessions.DELETE("/:id/exchange-lines/:lineId", handlers.Session.RemoveExchangeLine)

		sessions.POST("/:id/payments", handlers.Session.AddPayment)
		sessions.DELETE("/:id/payments/:entryId", handlers.Session.RemovePayment)
		sessions.POST("/:id/payments/:entryId/voucher", handlers.Session.AttachPaymentVoucher)

		sessions.POST("/:id/submit", handlers.Session.Submit)
	}

	transactions := api.Group("/return-transactions")
	{
		transactions.GET("", handlers.Transaction.List)
		transactions.GET("/:id", handlers.Transaction.Get)
		transactions.GET("/number/:number", handlers.Transaction.GetByNumber)
		transactions.DELETE("/:id", handlers.Transaction.Delete)
		transactions.POST("/:id/edit-session", handlers.Transaction.StartEdit)
	}

	reference := api.Group("/reference")
	{
		reference.GET("", handlers.Reference.All)
		reference.GET("/return-kinds", handlers.Reference.ReturnKinds)
		reference.GET("/situations", handlers.Reference.Situations)
		reference.GET("/document-types", handlers.Reference.DocumentTypes)
		reference.GET("/payment-methods", handlers.Reference.PaymentMethods)
		reference.GET("/stock-types", handlers.Reference.StockTypes)
	}

	return engine
}
