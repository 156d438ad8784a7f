package tax

import (
	"go.uber.org/fx"
)

var Module = fx.Module("tax",
	fx.Provide(
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
