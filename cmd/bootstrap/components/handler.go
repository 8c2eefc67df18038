package components

import (
	"reservebook/internal/handler"
	"reservebook/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewSystemHandler,
	),
	fx.Invoke(handler.NewRouter),
)
