package inventory

import "go.uber.org/fx"

var Module = fx.Module("inventory",
	fx.Provide(NewService, NewHandler),
	fx.Invoke(RegisterRoutes),
)
