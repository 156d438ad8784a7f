// Command taxsvc runs the Indonesian tax calculation and reporting service.
package main

import (
	"gorm.io/gorm"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/massehanto/saku/internal/authmw"
	"github.com/massehanto/saku/internal/tax"
	"github.com/massehanto/saku/pkg/config"
	"github.com/massehanto/saku/pkg/dbconn"
	"github.com/massehanto/saku/pkg/logger"
	"github.com/massehanto/saku/pkg/svcserver"
)

func loadConfig() config.ServiceConfig {
	return config.Load("taxsvc", "INDONESIAN_TAX", "0.0.0.0:3005")
}

func newLogger(cfg config.ServiceConfig) (*zap.Logger, error) {
	return logger.New(cfg.ServiceName)
}

func openDB(cfg config.ServiceConfig, log *zap.Logger) (*gorm.DB, error) {
	return dbconn.Open(cfg, logger.NewGormLogger(log, logger.DefaultGormLoggerConfig()))
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&tax.Configuration{}, &tax.Transaction{})
}

func main() {
	fx.New(
		fx.Provide(loadConfig, newLogger, openDB, svcserver.NewEngine),
		fx.Invoke(authmw.Install),
		tax.Module,
		fx.Invoke(autoMigrate),
		fx.Invoke(svcserver.RegisterHooks),
	).Run()
}
