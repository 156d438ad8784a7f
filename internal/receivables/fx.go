package receivables

import (
	"go.uber.org/fx"
)

var Module = fx.Module("receivables",
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
