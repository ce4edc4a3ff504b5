package bootstrap

import (
	"coach-booking-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	ConfigSections,
)

// ConfigSections exposes the parts of Config that components take directly.
var ConfigSections = fx.Provide(
	func(cfg config.Config) config.CarrierConfig { return cfg.Carrier },
	func(cfg config.Config) config.EventsConfig { return cfg.Events },
)
