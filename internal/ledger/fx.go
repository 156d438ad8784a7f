package ledger

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("ledger",
	fx.Provide(
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)

// AutoMigrate creates the ledger tables, including the unexported
// ledgerCounter and AccountBalance models a caller outside this package
// cannot name directly.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&JournalEntry{}, &JournalEntryLine{}, &ledgerCounter{}, &AccountBalance{})
}
