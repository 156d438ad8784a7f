package company

import "go.uber.org/fx"

var Module = fx.Module("company",
	fx.Provide(NewService, NewHandler),
	fx.Invoke(RegisterRoutes),
)
