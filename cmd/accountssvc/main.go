// Command accountssvc runs the chart-of-accounts service.
package main

import (
	"gorm.io/gorm"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/massehanto/saku/internal/accounts"
	"github.com/massehanto/saku/internal/authmw"
	"github.com/massehanto/saku/pkg/config"
	"github.com/massehanto/saku/pkg/dbconn"
	"github.com/massehanto/saku/pkg/logger"
	"github.com/massehanto/saku/pkg/svcserver"
)

func loadConfig() config.ServiceConfig {
	return config.Load("accountssvc", "CHART_OF_ACCOUNTS", "0.0.0.0:3003")
}

func newLogger(cfg config.ServiceConfig) (*zap.Logger, error) {
	return logger.New(cfg.ServiceName)
}

func openDB(cfg config.ServiceConfig, log *zap.Logger) (*gorm.DB, error) {
	return dbconn.Open(cfg, logger.NewGormLogger(log, logger.DefaultGormLoggerConfig()))
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&accounts.Account{})
}

func main() {
	fx.New(
		fx.Provide(loadConfig, newLogger, openDB, svcserver.NewEngine),
		fx.Invoke(authmw.Install),
		accounts.Module,
		fx.Invoke(autoMigrate),
		fx.Invoke(svcserver.RegisterHooks),
	).Run()
}
