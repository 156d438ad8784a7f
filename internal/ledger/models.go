package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction is the debit/credit side of a journal entry line.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// Status is the journal entry lifecycle state. Transitions are enforced
// by Service.Transition per spec.md's §4.4 state machine: only the
// transitions listed in allowedTransitions are accepted, nothing leaves
// POSTED or CANCELLED, and entering POSTED requires the entry to balance.
type Status string

const (
	StatusDraft            Status = "DRAFT"
	StatusPendingApproval  Status = "PENDING_APPROVAL"
	StatusApproved         Status = "APPROVED"
	StatusPosted           Status = "POSTED"
	StatusCancelled        Status = "CANCELLED"
)

func isTerminal(s Status) bool {
	return s == StatusPosted || s == StatusCancelled
}

// JournalEntry is the immutable header of a double-entry posting.
type JournalEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;uniqueIndex:ux_journal_company_number,priority:1"`
	EntryNumber int64     `gorm:"uniqueIndex:ux_journal_company_number,priority:2;not null"`
	Status      Status    `gorm:"not null"`
	Memo        string
	EntryDate   time.Time `gorm:"not null"`
	Lines       []JournalEntryLine `gorm:"foreignKey:JournalEntryID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JournalEntryLine is a single debit or credit posting line.
type JournalEntryLine struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	JournalEntryID uuid.UUID       `gorm:"type:uuid;index;not null"`
	AccountID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Direction      Direction       `gorm:"not null"`
	Amount         decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Description    string
}

// ledgerCounter backs the per-company monotonic EntryNumber sequence,
// incremented under SELECT ... FOR UPDATE inside the entry-creation transaction —
// the Go equivalent of the teacher's ON CONFLICT idempotent-insert pattern,
// adapted for a per-company sequence rather than a global snowflake ID.
type ledgerCounter struct {
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey"`
	NextValue int64     `gorm:"not null"`
}

func (ledgerCounter) TableName() string { return "ledger_counters" }

// AccountBalance accumulates posted activity per account per calendar
// date, so a trial balance as_of any date can sum every row up to and
// including it without conflating same-month activity that falls after
// the requested cutoff.
type AccountBalance struct {
	CompanyID   uuid.UUID       `gorm:"type:uuid;uniqueIndex:ux_account_balance,priority:1"`
	AccountID   uuid.UUID       `gorm:"type:uuid;uniqueIndex:ux_account_balance,priority:2"`
	EntryDate   string          `gorm:"uniqueIndex:ux_account_balance,priority:3"` // YYYY-MM-DD
	DebitTotal  decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	CreditTotal decimal.Decimal `gorm:"type:numeric(18,2);not null"`
}

func (AccountBalance) TableName() string { return "account_balances" }
