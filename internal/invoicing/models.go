// Package invoicing holds the invoice/payment state machine shared by
// accounts payable (internal/payables) and accounts receivable
// (internal/receivables), grounded on original_source's vendor_invoices/
// customer_invoices tables and InvoiceStatus enum.
package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the invoice lifecycle. Payment moves an invoice through
// PARTIAL to PAID as paid_amount accumulates toward total_amount.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusApproved  Status = "APPROVED"
	StatusPartial   Status = "PARTIAL"
	StatusPaid      Status = "PAID"
	StatusOverdue   Status = "OVERDUE"
	StatusCancelled Status = "CANCELLED"
)

// Party distinguishes which side of the ledger an invoice belongs to.
type Party string

const (
	PartyVendor   Party = "VENDOR"
	PartyCustomer Party = "CUSTOMER"
)

// Invoice is the shared row shape for both vendor (payable) and customer
// (receivable) invoices, disambiguated by Party and PartyID.
type Invoice struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID       `gorm:"type:uuid;uniqueIndex:ux_invoice_company_number,priority:1"`
	Party          Party           `gorm:"uniqueIndex:ux_invoice_company_number,priority:2;not null"`
	PartyID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	InvoiceNumber  string          `gorm:"uniqueIndex:ux_invoice_company_number,priority:3;not null"`
	InvoiceDate    time.Time       `gorm:"not null"`
	DueDate        time.Time       `gorm:"not null"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	TaxAmount      decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	PaidAmount     decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Status         Status          `gorm:"not null"`
	Description    string
	JournalEntryID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Outstanding returns the unpaid portion of the invoice.
func (i Invoice) Outstanding() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

// Payment records one disbursement or receipt against an invoice. For
// any invoice, sum(non-reversed payments) == paid_amount; Reversed marks
// a payment ReversePayment has undone.
type Payment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;index;not null"`
	CompanyID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	PaidAt    time.Time       `gorm:"not null"`
	Method    string
	Reference string
	Reversed  bool `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// Party record: a vendor (payee) or customer (payer).
type PartyRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;uniqueIndex:ux_party_company_name,priority:1"`
	Kind      Party     `gorm:"uniqueIndex:ux_party_company_name,priority:2;not null"`
	Name      string    `gorm:"uniqueIndex:ux_party_company_name,priority:3;not null"`
	TaxID     string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PartyRecord) TableName() string { return "invoicing_parties" }
