// Command ledgersvc runs the general-ledger service: journal entries,
// posting workflow, and account balance roll-ups.
package main

import (
	"gorm.io/gorm"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/massehanto/saku/internal/authmw"
	"github.com/massehanto/saku/internal/ledger"
	"github.com/massehanto/saku/pkg/config"
	"github.com/massehanto/saku/pkg/dbconn"
	"github.com/massehanto/saku/pkg/logger"
	"github.com/massehanto/saku/pkg/svcserver"
)

func loadConfig() config.ServiceConfig {
	return config.Load("ledgersvc", "GENERAL_LEDGER", "0.0.0.0:3004")
}

func newLogger(cfg config.ServiceConfig) (*zap.Logger, error) {
	return logger.New(cfg.ServiceName)
}

func openDB(cfg config.ServiceConfig, log *zap.Logger) (*gorm.DB, error) {
	return dbconn.Open(cfg, logger.NewGormLogger(log, logger.DefaultGormLoggerConfig()))
}

func autoMigrate(db *gorm.DB) error {
	return ledger.AutoMigrate(db)
}

func main() {
	fx.New(
		fx.Provide(loadConfig, newLogger, openDB, svcserver.NewEngine),
		fx.Invoke(authmw.Install),
		ledger.Module,
		fx.Invoke(autoMigrate),
		fx.Invoke(svcserver.RegisterHooks),
	).Run()
}
