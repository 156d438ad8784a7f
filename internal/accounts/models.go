package accounts

import (
	"time"

	"github.com/google/uuid"
)

// AccountType is the top-level classification spec.md's chart of accounts
// requires every account to carry.
type AccountType string

const (
	TypeAsset     AccountType = "ASSET"
	TypeLiability AccountType = "LIABILITY"
	TypeEquity    AccountType = "EQUITY"
	TypeRevenue   AccountType = "REVENUE"
	TypeExpense   AccountType = "EXPENSE"
)

// NormalBalance is the side (debit or credit) that increases an account
// of a given type.
type NormalBalance string

const (
	BalanceDebit  NormalBalance = "DEBIT"
	BalanceCredit NormalBalance = "CREDIT"
)

func NormalBalanceFor(t AccountType) NormalBalance {
	switch t {
	case TypeAsset, TypeExpense:
		return BalanceDebit
	default:
		return BalanceCredit
	}
}

// Account is a node in a company's chart of accounts tree. JSON tags are
// snake_case because the reporting composer and the ledger service both
// decode this shape over HTTP (see internal/reporting's accountDTO and
// internal/ledger's accountRef).
type Account struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID     uuid.UUID     `gorm:"type:uuid;uniqueIndex:ux_account_company_code,priority:1" json:"company_id"`
	Code          string        `gorm:"uniqueIndex:ux_account_company_code,priority:2;not null" json:"code"`
	Name          string        `gorm:"not null" json:"name"`
	Type          AccountType   `gorm:"not null" json:"type"`
	NormalBalance NormalBalance `gorm:"not null" json:"normal_balance"`
	ParentID      *uuid.UUID    `gorm:"type:uuid" json:"parent_id,omitempty"`
	IsActive      bool          `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
