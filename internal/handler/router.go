package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"coach-booking-engine/internal/handler/api"
	"coach-booking-engine/internal/handler/middleware"
	"coach-booking-engine/internal/pkg/config"
)

const maxOrderBody = 256 << 10

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Plans  *api.PlanHandler
	Orders *api.OrderHandler
	Events *api.EventHandler
}

func NewHandlers(plans *api.PlanHandler, orders *api.OrderHandler, evs *api.EventHandler) Handlers {
	return Handlers{Plans: plans, Orders: orders, Events: evs}
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger.GetSlogLogger()))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger.GetSlogLogger()))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		plans := apiGroup.Group("/plans")
		addRoutes(plans, []route{
			{Method: http.MethodPost, Path: "/prefetch", Handler: h.Plans.Prefetch},
			{Method: http.MethodGet, Path: "/:busTypeId", Handler: h.Plans.Get},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/cache/stats", Handler: h.Plans.CacheStats},
			{Method: http.MethodGet, Path: "/events", Handler: h.Events.List},
		})

		orders := apiGroup.Group("/orders")
		{
			limit := []gin.HandlerFunc{middleware.LimitBody(maxOrderBody)}
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "/validate", Handler: h.Orders.Validate, Mw: limit},
				{Method: http.MethodPost, Path: "", Handler: h.Orders.Create, Mw: limit},
			})

			byID := orders.Group("/:orderId")
			addRoutes(byID, []route{
				{Method: http.MethodGet, Path: "/timer", Handler: h.Orders.Timer},
				{Method: http.MethodPost, Path: "/timer/extend", Handler: h.Orders.ExtendTimer},
				{Method: http.MethodDelete, Path: "/timer", Handler: h.Orders.StopTimer},
				{Method: http.MethodPost, Path: "/sms/request", Handler: h.Orders.RequestSMS},
				{Method: http.MethodPost, Path: "/sms/validate", Handler: h.Orders.ValidateSMS},
				{Method: http.MethodPost, Path: "/pay", Handler: h.Orders.Pay},
				{Method: http.MethodPost, Path: "/cancel", Handler: h.Orders.Cancel},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
