// Command gatewaysvc runs the API gateway: request routing, bearer-token
// verification, per-caller rate limiting, and downstream health monitoring.
package main

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/massehanto/saku/internal/gateway"
	"github.com/massehanto/saku/pkg/config"
	"github.com/massehanto/saku/pkg/logger"
	"github.com/massehanto/saku/pkg/svcserver"
)

func loadConfig() config.ServiceConfig {
	return config.Load("gatewaysvc", "API_GATEWAY", "0.0.0.0:8080")
}

func newLogger(cfg config.ServiceConfig) (*zap.Logger, error) {
	return logger.New(cfg.ServiceName)
}

func main() {
	fx.New(
		fx.Provide(loadConfig, newLogger, svcserver.NewEngine),
		gateway.Module,
		fx.Invoke(svcserver.RegisterHooks),
	).Run()
}
