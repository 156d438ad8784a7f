// Package inventory is a thin stock-tracking service, stubbed per
// spec.md's non-goals (no full costing/valuation feature set). It is
// grounded on original_source's services/inventory-management route
// list (items/transactions/stock-adjustment/stock-report/valuation-report)
// and its services::costing::CostingMethod / services::valuation::ValuationMethod
// module declarations, which carried no further implementation to port —
// the weighted-average costing below is this package's own minimal reading
// of those two module names.
package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CostingMethod mirrors original_source's services::costing::CostingMethod.
// Only weighted-average is implemented; FIFO is left as a documented gap
// since no FIFO layer data survived the distillation.
type CostingMethod string

const (
	CostingWeightedAverage CostingMethod = "WEIGHTED_AVERAGE"
)

type TransactionType string

const (
	TransactionReceipt    TransactionType = "RECEIPT"
	TransactionIssue      TransactionType = "ISSUE"
	TransactionAdjustment TransactionType = "ADJUSTMENT"
)

type Item struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_inventory_item_company_sku,priority:1"`
	SKU           string          `gorm:"not null;uniqueIndex:ux_inventory_item_company_sku,priority:2"`
	Name          string          `gorm:"not null"`
	UnitOfMeasure string          `gorm:"not null"`
	CostingMethod CostingMethod   `gorm:"not null;default:WEIGHTED_AVERAGE"`
	QuantityOnHand decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	AverageCost   decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Transaction struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type       TransactionType `gorm:"not null"`
	Quantity   decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	UnitCost   decimal.Decimal `gorm:"type:numeric(18,4)"`
	Reference  string
	OccurredAt time.Time
	CreatedAt  time.Time
}

// StockReportLine is one item's current on-hand position.
type StockReportLine struct {
	ItemID         uuid.UUID       `json:"item_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
}

// ValuationReportLine is one item's on-hand position carried at its
// current weighted-average cost.
type ValuationReportLine struct {
	ItemID         uuid.UUID       `json:"item_id"`
	SKU            string          `json:"sku"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	AverageCost    decimal.Decimal `json:"average_cost"`
	TotalValue     decimal.Decimal `json:"total_value"`
}
