package bootstrap

import (
	"log/slog"

	"coach-booking-engine/internal/handler/middleware"
	"coach-booking-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		func(l *middleware.Logger) *slog.Logger { return l.GetSlogLogger() },
	),
)

// NewLogger configures the process-wide slog logger from LOG_* settings.
func NewLogger(cfg config.Config) *middleware.Logger {
	return middleware.NewLogger(cfg.Log)
}
