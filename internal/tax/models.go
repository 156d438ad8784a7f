package tax

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type enumerates the Indonesian tax types this service calculates.
type Type string

const (
	TypePPN   Type = "PPN"
	TypePPh21 Type = "PPH21"
	TypePPh22 Type = "PPH22"
	TypePPh23 Type = "PPH23"
	TypePPh25 Type = "PPH25"
	TypePPh29 Type = "PPH29"
	TypePBB   Type = "PBB"
)

// Configuration is a company's active rate for one tax type, editable
// as regulations change without a code deploy.
type Configuration struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;uniqueIndex:ux_tax_config_company_type,priority:1"`
	TaxType     Type            `gorm:"uniqueIndex:ux_tax_config_company_type,priority:2;not null"`
	RatePercent decimal.Decimal `gorm:"type:numeric(6,3);not null"`
	EffectiveAt time.Time       `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Transaction records one computed tax event for audit and reporting.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	TaxType     Type            `gorm:"not null"`
	BaseAmount  decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	TaxAmount   decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Reference   string
	PeriodMonth string `gorm:"index"` // YYYY-MM
	CreatedAt   time.Time
}
