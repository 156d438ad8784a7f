// Command reportingsvc runs the reporting composer: trial balance,
// balance sheet, income statement, and cash flow, fanned out over the
// accounts/ledger/payables/receivables services.
package main

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/massehanto/saku/internal/authmw"
	"github.com/massehanto/saku/internal/reporting"
	"github.com/massehanto/saku/pkg/config"
	"github.com/massehanto/saku/pkg/logger"
	"github.com/massehanto/saku/pkg/svcserver"
)

func loadConfig() config.ServiceConfig {
	return config.Load("reportingsvc", "REPORTING", "0.0.0.0:3009")
}

func newLogger(cfg config.ServiceConfig) (*zap.Logger, error) {
	return logger.New(cfg.ServiceName)
}

func main() {
	fx.New(
		fx.Provide(loadConfig, newLogger, svcserver.NewEngine),
		fx.Invoke(authmw.Install),
		reporting.Module,
		fx.Invoke(svcserver.RegisterHooks),
	).Run()
}
