package components

import (
	"context"
	"log/slog"

	"coach-booking-engine/internal/infra/publisher"
	"coach-booking-engine/internal/pkg/clock"
	"coach-booking-engine/internal/pkg/config"
	"coach-booking-engine/internal/usecase/booking"

	"go.uber.org/fx"
)

var EngineModule = fx.Module("engine",
	fx.Provide(
		fx.Annotate(
			NewSession,
			fx.As(fx.Self()),
			fx.As(new(booking.Service)),
		),
	),
	fx.Invoke(forwardEvents),
)

func NewSession(lc fx.Lifecycle, cfg config.Config, api booking.CarrierAPI, clk clock.Clock, logger *slog.Logger) *booking.Session {
	session := booking.NewSession(cfg, api, clk, logger)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return session.Start()
		},
		OnStop: func(_ context.Context) error {
			return session.Close()
		},
	})
	return session
}

// forwardEvents mirrors reservation lifecycle events to kafka when a sink
// is configured.
func forwardEvents(lc fx.Lifecycle, session *booking.Session, sink *publisher.KafkaSink) {
	if sink == nil {
		return
	}
	unsubscribe := session.Subscribe(sink.Handle)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			unsubscribe()
			return nil
		},
	})
}
