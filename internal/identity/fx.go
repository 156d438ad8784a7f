package identity

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/massehanto/saku/pkg/config"
)

// Module wires the identity service and HTTP handler into a service's fx
// graph, following the teacher's auth/local.Module shape.
var Module = fx.Module("identity",
	fx.Provide(
		func(db *gorm.DB) Repository { return NewGormRepository(db) },
		func(repo Repository, cfg config.ServiceConfig) *Service {
			return NewService(repo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
		},
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
