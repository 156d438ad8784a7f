// Command authsvc runs the identity service: signup, login, refresh,
// logout, and access-token issuance for every other SAKU service.
package main

import (
	"gorm.io/gorm"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/massehanto/saku/internal/identity"
	"github.com/massehanto/saku/pkg/config"
	"github.com/massehanto/saku/pkg/dbconn"
	"github.com/massehanto/saku/pkg/logger"
	"github.com/massehanto/saku/pkg/svcserver"
)

func loadConfig() config.ServiceConfig {
	return config.Load("authsvc", "AUTH", "0.0.0.0:3001")
}

func newLogger(cfg config.ServiceConfig) (*zap.Logger, error) {
	return logger.New(cfg.ServiceName)
}

func openDB(cfg config.ServiceConfig, log *zap.Logger) (*gorm.DB, error) {
	return dbconn.Open(cfg, logger.NewGormLogger(log, logger.DefaultGormLoggerConfig()))
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&identity.User{}, &identity.CompanyMembership{}, &identity.RefreshToken{})
}

func main() {
	fx.New(
		fx.Provide(loadConfig, newLogger, openDB, svcserver.NewEngine),
		identity.Module,
		fx.Invoke(autoMigrate),
		fx.Invoke(svcserver.RegisterHooks),
	).Run()
}
