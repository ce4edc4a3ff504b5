package components

import (
	"coach-booking-engine/internal/handler"
	"coach-booking-engine/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewPlanHandler,
		api.NewOrderHandler,
		api.NewEventHandler,
		handler.NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)
