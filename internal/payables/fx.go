package payables

import (
	"go.uber.org/fx"
)

var Module = fx.Module("payables",
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
