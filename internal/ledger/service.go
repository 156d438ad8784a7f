package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/massehanto/saku/pkg/apperror"
	"github.com/massehanto/saku/pkg/config"
)

// Service implements journal-entry CRUD, the status state machine, trial
// balance, and account-balance roll-up — generalized from the teacher's
// fixed billing/payment source types to the spec's
// DRAFT/PENDING_APPROVAL/APPROVED/POSTED/CANCELLED lifecycle.
type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	accounts *accountsClient
}

func NewService(db *gorm.DB, log *zap.Logger, cfg config.ServiceConfig) *Service {
	return &Service{
		db:       db,
		log:      log.Named("ledger.service"),
		accounts: newAccountsClient(cfg.PeerURLs["accounts"]),
	}
}

type CreateEntryLine struct {
	AccountID   uuid.UUID
	Direction   Direction
	Amount      decimal.Decimal
	Description string
}

type CreateEntryRequest struct {
	CompanyID uuid.UUID
	Memo      string
	EntryDate time.Time
	Lines     []CreateEntryLine
}

// ValidateBalanced checks that total debits equal total credits, the
// ledger's core double-entry invariant.
func ValidateBalanced(lines []CreateEntryLine) error {
	if len(lines) < 2 {
		return apperror.Validation("a journal entry requires at least two lines")
	}
	debit := decimal.Zero
	credit := decimal.Zero
	for _, line := range lines {
		if line.Amount.Sign() <= 0 {
			return apperror.Validation("line amounts must be positive")
		}
		switch line.Direction {
		case Debit:
			debit = debit.Add(line.Amount)
		case Credit:
			credit = credit.Add(line.Amount)
		default:
			return apperror.Validation("line direction must be DEBIT or CREDIT")
		}
	}
	if !debit.Equal(credit) {
		return apperror.Validation(fmt.Sprintf("entry is not balanced: debits=%s credits=%s", debit, credit))
	}
	return nil
}

// CreateEntry persists a new journal entry in DRAFT status with a
// company-scoped monotonic entry number, allocated under row lock inside
// the same transaction that inserts the entry and its lines — mirroring
// the teacher's transactional posting pattern in service_impl.go.
func (s *Service) CreateEntry(ctx context.Context, req CreateEntryRequest) (*JournalEntry, error) {
	if err := ValidateBalanced(req.Lines); err != nil {
		return nil, err
	}

	var entry JournalEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entryNumber, err := nextEntryNumber(ctx, tx, req.CompanyID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		entry = JournalEntry{
			ID:          uuid.New(),
			CompanyID:   req.CompanyID,
			EntryNumber: entryNumber,
			Status:      StatusDraft,
			Memo:        req.Memo,
			EntryDate:   req.EntryDate,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		lines := make([]JournalEntryLine, 0, len(req.Lines))
		for _, l := range req.Lines {
			lines = append(lines, JournalEntryLine{
				ID:             uuid.New(),
				JournalEntryID: entry.ID,
				AccountID:      l.AccountID,
				Direction:      l.Direction,
				Amount:         l.Amount,
				Description:    l.Description,
			})
		}
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}
		entry.Lines = lines
		return nil
	})
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("create journal entry: %w", err))
	}

	return &entry, nil
}

// nextEntryNumber allocates the next per-company sequence value under
// SELECT ... FOR UPDATE, creating the counter row on first use.
func nextEntryNumber(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) (int64, error) {
	var counter ledgerCounter
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ?", companyID).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = ledgerCounter{CompanyID: companyID, NextValue: 1}
		if err := tx.Create(&counter).Error; err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}

	counter.NextValue++
	if err := tx.Save(&counter).Error; err != nil {
		return 0, err
	}
	return counter.NextValue, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*JournalEntry, error) {
	var entry JournalEntry
	err := s.db.WithContext(ctx).Preload("Lines").
		Where("company_id = ? AND id = ?", companyID, id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("journal entry")
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("find journal entry: %w", err))
	}
	return &entry, nil
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID) ([]*JournalEntry, error) {
	var entries []*JournalEntry
	err := s.db.WithContext(ctx).Where("company_id = ?", companyID).
		Order("entry_number").Find(&entries).Error
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list journal entries: %w", err))
	}
	return entries, nil
}

// allowedTransitions enumerates the state machine per spec.md §4.4 and
// the Open Question decision in DESIGN.md: DRAFT may go to
// PENDING_APPROVAL or CANCELLED, PENDING_APPROVAL to DRAFT, APPROVED or
// CANCELLED, and APPROVED to POSTED or CANCELLED; every other transition,
// including any out of a terminal state, is rejected. Entering POSTED
// also requires balance (already guaranteed at creation, re-checked here
// defensively).
var allowedTransitions = map[Status]map[Status]bool{
	StatusDraft:           {StatusPendingApproval: true, StatusCancelled: true},
	StatusPendingApproval: {StatusDraft: true, StatusApproved: true, StatusCancelled: true},
	StatusApproved:        {StatusPosted: true, StatusCancelled: true},
}

// Transition moves a journal entry to a new status, posting its effect
// into account_balances when it reaches POSTED.
func (s *Service) Transition(ctx context.Context, companyID, id uuid.UUID, to Status) (*JournalEntry, error) {
	entry, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if isTerminal(entry.Status) {
		return nil, apperror.Conflict(fmt.Sprintf("cannot transition out of terminal status %s", entry.Status))
	}
	if !allowedTransitions[entry.Status][to] {
		return nil, apperror.Conflict(fmt.Sprintf("cannot transition from %s to %s", entry.Status, to))
	}

	if to == StatusPosted {
		lines := make([]CreateEntryLine, 0, len(entry.Lines))
		for _, l := range entry.Lines {
			lines = append(lines, CreateEntryLine{AccountID: l.AccountID, Direction: l.Direction, Amount: l.Amount})
		}
		if err := ValidateBalanced(lines); err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&JournalEntry{}).
			Where("id = ?", entry.ID).
			Update("status", to).Error; err != nil {
			return err
		}
		if to == StatusPosted {
			if err := postAccountBalances(ctx, tx, companyID, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("transition journal entry: %w", err))
	}

	entry.Status = to
	return entry, nil
}

func postAccountBalances(ctx context.Context, tx *gorm.DB, companyID uuid.UUID, entry *JournalEntry) error {
	entryDate := entry.EntryDate.Format("2006-01-02")
	for _, line := range entry.Lines {
		debitDelta := decimal.Zero
		creditDelta := decimal.Zero
		if line.Direction == Debit {
			debitDelta = line.Amount
		} else {
			creditDelta = line.Amount
		}

		err := tx.WithContext(ctx).Exec(`
			INSERT INTO account_balances (company_id, account_id, entry_date, debit_total, credit_total)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (company_id, account_id, entry_date)
			DO UPDATE SET debit_total = account_balances.debit_total + EXCLUDED.debit_total,
			              credit_total = account_balances.credit_total + EXCLUDED.credit_total
		`, companyID, line.AccountID, entryDate, debitDelta, creditDelta).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// TrialBalanceLine is one account's netted balance as of a date: exactly
// one of DebitBalance/CreditBalance is non-zero, chosen by the sign of
// debits minus credits (spec.md §4.4), so an account whose balance runs
// against its normal side shows on the opposite side. Zero-balance
// accounts are omitted.
type TrialBalanceLine struct {
	AccountID     uuid.UUID       `json:"account_id"`
	DebitBalance  decimal.Decimal `json:"debit_balance"`
	CreditBalance decimal.Decimal `json:"credit_balance"`
}

// TrialBalanceReport is the netted trial balance plus its balanced flag.
type TrialBalanceReport struct {
	Lines      []TrialBalanceLine `json:"lines"`
	IsBalanced bool               `json:"is_balanced"`
}

// TrialBalance sums posted account_balances rows with entry_date <= asOf,
// then nets each account's total to its normal-balance side by calling
// out to the accounts service for account type metadata — the same
// peer-fan-out pattern internal/reporting uses, scoped here to the one
// lookup the ledger itself needs to classify its own trial balance.
func (s *Service) TrialBalance(ctx context.Context, companyID, userID uuid.UUID, asOf time.Time) (*TrialBalanceReport, error) {
	var rows []AccountBalance
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND entry_date <= ?", companyID, asOf.Format("2006-01-02")).
		Find(&rows).Error
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("load account balances: %w", err))
	}

	type rawTotal struct{ debit, credit decimal.Decimal }
	totals := map[uuid.UUID]*rawTotal{}
	for _, row := range rows {
		t, ok := totals[row.AccountID]
		if !ok {
			t = &rawTotal{debit: decimal.Zero, credit: decimal.Zero}
			totals[row.AccountID] = t
		}
		t.debit = t.debit.Add(row.DebitTotal)
		t.credit = t.credit.Add(row.CreditTotal)
	}

	accounts, err := s.accounts.listAccounts(ctx, companyID, userID)
	if err != nil {
		return nil, apperror.Dependency("accounts", err)
	}
	normalBalance := make(map[uuid.UUID]string, len(accounts))
	for _, a := range accounts {
		normalBalance[a.ID] = a.NormalBalance
	}

	lines := make([]TrialBalanceLine, 0, len(totals))
	sumDebit, sumCredit := decimal.Zero, decimal.Zero
	for accountID, t := range totals {
		net := t.debit.Sub(t.credit)
		if net.IsZero() {
			continue
		}
		line := TrialBalanceLine{AccountID: accountID}
		if normalBalance[accountID] == "CREDIT" {
			if net.Sign() <= 0 {
				line.CreditBalance = net.Neg()
			} else {
				line.DebitBalance = net
			}
		} else {
			if net.Sign() >= 0 {
				line.DebitBalance = net
			} else {
				line.CreditBalance = net.Neg()
			}
		}
		sumDebit = sumDebit.Add(line.DebitBalance)
		sumCredit = sumCredit.Add(line.CreditBalance)
		lines = append(lines, line)
	}

	return &TrialBalanceReport{Lines: lines, IsBalanced: sumDebit.Equal(sumCredit)}, nil
}
