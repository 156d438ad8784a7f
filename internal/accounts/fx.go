package accounts

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/massehanto/saku/pkg/repository"
)

var Module = fx.Module("accounts",
	fx.Provide(
		func(db *gorm.DB) repository.Repository[Account] { return repository.ProvideStore[Account](db) },
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
