package middleware

import (
	"log/slog"

	"coach-booking-engine/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware also exposes the request id header so the storefront
// can quote it in support tickets.
func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) gin.HandlerFunc {
	expose := append([]string{}, cfg.ExposeHeaders...)
	expose = append(expose, RequestIDHeader)

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     append(append([]string{}, cfg.AllowHeaders...), RequestIDHeader),
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if logger != nil {
		logger.Info("CORS middleware initialized", "AllowOrigins", cfg.AllowOrigins)
	}
	return cors.New(corsCfg)
}
