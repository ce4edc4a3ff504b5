package components

import (
	"context"
	"log/slog"

	"coach-booking-engine/internal/infra/carrier"
	"coach-booking-engine/internal/infra/publisher"
	"coach-booking-engine/internal/infra/wire"
	"coach-booking-engine/internal/pkg/clock"
	"coach-booking-engine/internal/pkg/config"
	"coach-booking-engine/internal/usecase/booking"

	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		clock.NewRealClock,
		fx.Annotate(
			NewCarrierClient,
			fx.As(new(booking.CarrierAPI)),
		),
		NewEventSink,
	),
)

func NewCarrierClient(cfg config.CarrierConfig, clk clock.Clock, logger *slog.Logger) *carrier.Client {
	return carrier.NewClient(cfg, clk, logger, carrier.WithInspector(inspectReply))
}

// inspectReply surfaces business errors embedded in 2xx carrier replies.
func inspectReply(body []byte) carrier.RetryableError {
	if we := wire.Inspect(body); we != nil {
		return we
	}
	return nil
}

// NewEventSink returns nil when no brokers are configured; events then
// stay in the in-process log only.
func NewEventSink(lc fx.Lifecycle, cfg config.EventsConfig, logger *slog.Logger) (*publisher.KafkaSink, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("kafka brokers not configured, reservation events stay in process")
		return nil, nil
	}
	writer, err := publisher.NewKafkaWriter(cfg)
	if err != nil {
		return nil, err
	}
	sink := publisher.NewKafkaSink(writer, cfg.KafkaQueue, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return sink.Close()
		},
	})
	return sink, nil
}
