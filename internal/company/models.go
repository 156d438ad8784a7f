// Package company is a thin CRUD service for company profile and
// settings, grounded on original_source's
// services/company-management/src/main.rs route list.
package company

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	NPWP      string
	Address   string
	Industry  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Settings holds per-company configuration toggles, stored as a
// one-to-one row keyed by CompanyID.
type Settings struct {
	CompanyID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FiscalYearStartMonth int   `gorm:"not null;default:1"`
	DefaultCurrency  string    `gorm:"not null;default:IDR"`
	UpdatedAt        time.Time
}

func (Settings) TableName() string { return "company_settings" }
