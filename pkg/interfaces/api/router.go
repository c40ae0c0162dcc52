package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/prodplan/pkg/infrastructure/logger"
)

// RouterConfig carries the handlers mounted on the engine
type RouterConfig struct {
	Handler *Handler
	Metrics http.Handler // nil disables /metrics
	Log     *logger.Logger
}

// NewRouter builds the gin engine serving the planning API
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.GET("/health", cfg.Handler.Health)
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	api := router.Group("/api")
	{
		api.GET("/orders", cfg.Handler.ListOrders)
		api.GET("/customers", cfg.Handler.ListCustomers)
		api.GET("/stock", cfg.Handler.Stock)
		api.POST("/balance", cfg.Handler.Balance)

		api.GET("/reservations", cfg.Handler.Reservations)
		api.GET("/reservations/events", cfg.Handler.ReservationEvents)
		api.POST("/reservations/commit", cfg.Handler.Commit)
		api.POST("/reservations/release", cfg.Handler.Release)

		api.POST("/schedule", cfg.Handler.Schedule)
		api.POST("/utilization", cfg.Handler.Utilization)
		api.POST("/plan", cfg.Handler.Plan)
		api.POST("/purchase-order", cfg.Handler.PurchaseOrder)
	}

	return router
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}
