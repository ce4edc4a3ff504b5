package bootstrap

import (
	"coach-booking-engine/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	components.InfraModule,
	components.EngineModule,
	components.HandlerModule,
)
