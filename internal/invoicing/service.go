package invoicing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/massehanto/saku/pkg/apperror"
	"github.com/massehanto/saku/pkg/money"
)

// Service implements invoice and payment handling shared by the vendor
// (payables) and customer (receivables) specializations, grounded on
// original_source's invoice_service.rs + payment_service.rs pairing.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log.Named("invoicing.service")}
}

type CreateInvoiceRequest struct {
	CompanyID     uuid.UUID
	Party         Party
	PartyID       uuid.UUID
	InvoiceNumber string
	InvoiceDate   time.Time
	DueDate       time.Time
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Description   string
}

func (s *Service) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	if req.InvoiceNumber == "" {
		return nil, apperror.Validation("invoice_number is required")
	}
	if req.DueDate.Before(req.InvoiceDate) {
		return nil, apperror.Validation("due_date cannot precede invoice_date")
	}

	now := time.Now().UTC()
	invoice := Invoice{
		ID:            uuid.New(),
		CompanyID:     req.CompanyID,
		Party:         req.Party,
		PartyID:       req.PartyID,
		InvoiceNumber: req.InvoiceNumber,
		InvoiceDate:   req.InvoiceDate,
		DueDate:       req.DueDate,
		Subtotal:      money.Round(req.Subtotal),
		TaxAmount:     money.Round(req.TaxAmount),
		TotalAmount:   money.Round(req.Subtotal.Add(req.TaxAmount)),
		PaidAmount:    decimal.Zero,
		Status:        StatusDraft,
		Description:   req.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.db.WithContext(ctx).Create(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("invoice_number already exists for this company")
		}
		return nil, apperror.Internal(fmt.Errorf("create invoice: %w", err))
	}
	return &invoice, nil
}

func (s *Service) Get(ctx context.Context, companyID uuid.UUID, party Party, id uuid.UUID) (*Invoice, error) {
	var invoice Invoice
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND party = ? AND id = ?", companyID, party, id).
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("invoice")
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("find invoice: %w", err))
	}
	return &invoice, nil
}

type InvoiceFilters struct {
	Status  Status
	PartyID uuid.UUID
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, party Party, filters InvoiceFilters) ([]*Invoice, error) {
	q := s.db.WithContext(ctx).Where("company_id = ? AND party = ?", companyID, party)
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.PartyID != uuid.Nil {
		q = q.Where("party_id = ?", filters.PartyID)
	}
	var invoices []*Invoice
	if err := q.Order("due_date").Find(&invoices).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("list invoices: %w", err))
	}
	return invoices, nil
}

var allowedStatusTransitions = map[Status]map[Status]bool{
	StatusDraft:    {StatusApproved: true, StatusCancelled: true},
	StatusApproved: {StatusPartial: true, StatusPaid: true, StatusOverdue: true, StatusCancelled: true},
	StatusPartial:  {StatusPaid: true, StatusOverdue: true, StatusCancelled: true},
	StatusOverdue:  {StatusPartial: true, StatusPaid: true, StatusCancelled: true},
}

func (s *Service) UpdateStatus(ctx context.Context, companyID uuid.UUID, party Party, id uuid.UUID, to Status) (*Invoice, error) {
	invoice, err := s.Get(ctx, companyID, party, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == StatusPaid || invoice.Status == StatusCancelled {
		return nil, apperror.Conflict(fmt.Sprintf("cannot change status of a %s invoice", invoice.Status))
	}
	if !allowedStatusTransitions[invoice.Status][to] {
		return nil, apperror.Conflict(fmt.Sprintf("cannot transition invoice from %s to %s", invoice.Status, to))
	}

	if err := s.db.WithContext(ctx).Model(&Invoice{}).
		Where("id = ?", invoice.ID).Update("status", to).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("update invoice status: %w", err))
	}
	invoice.Status = to
	return invoice, nil
}

type RecordPaymentRequest struct {
	Amount    decimal.Decimal
	PaidAt    time.Time
	Method    string
	Reference string
}

// RecordPayment applies a payment against an invoice's outstanding
// balance and advances its status to PARTIAL or PAID accordingly.
func (s *Service) RecordPayment(ctx context.Context, companyID uuid.UUID, party Party, invoiceID uuid.UUID, req RecordPaymentRequest) (*Invoice, error) {
	if req.Amount.Sign() <= 0 {
		return nil, apperror.Validation("payment amount must be positive")
	}

	var invoice Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ? AND party = ? AND id = ?", companyID, party, invoiceID).
			First(&invoice).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("invoice")
			}
			return err
		}
		if invoice.Status == StatusPaid || invoice.Status == StatusCancelled {
			return apperror.Conflict(fmt.Sprintf("cannot record a payment against a %s invoice", invoice.Status))
		}
		if req.Amount.GreaterThan(invoice.Outstanding()) {
			return apperror.Conflict("payment amount exceeds outstanding balance")
		}

		payment := Payment{
			ID:        uuid.New(),
			InvoiceID: invoice.ID,
			CompanyID: companyID,
			Amount:    req.Amount,
			PaidAt:    req.PaidAt,
			Method:    req.Method,
			Reference: req.Reference,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		invoice.PaidAmount = invoice.PaidAmount.Add(req.Amount)
		if invoice.PaidAmount.Equal(invoice.TotalAmount) {
			invoice.Status = StatusPaid
		} else {
			invoice.Status = StatusPartial
		}
		return tx.Model(&Invoice{}).Where("id = ?", invoice.ID).
			Updates(map[string]any{"paid_amount": invoice.PaidAmount, "status": invoice.Status}).Error
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.Internal(fmt.Errorf("record payment: %w", err))
	}
	return &invoice, nil
}

// ReversePayment reverses the most recent non-reversed payment on an
// invoice: the payment is marked Reversed, paid_amount is decremented,
// and status reverts PARTIAL -> APPROVED (when paid_amount returns to
// zero) or PAID -> PARTIAL, mirroring RecordPayment's status derivation
// in the opposite direction.
func (s *Service) ReversePayment(ctx context.Context, companyID uuid.UUID, party Party, invoiceID uuid.UUID) (*Invoice, error) {
	var invoice Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ? AND party = ? AND id = ?", companyID, party, invoiceID).
			First(&invoice).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("invoice")
			}
			return err
		}

		var payment Payment
		err := tx.Where("invoice_id = ? AND reversed = ?", invoice.ID, false).
			Order("paid_at DESC, created_at DESC").
			First(&payment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Conflict("invoice has no reversible payment")
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&Payment{}).Where("id = ?", payment.ID).Update("reversed", true).Error; err != nil {
			return err
		}

		invoice.PaidAmount = invoice.PaidAmount.Sub(payment.Amount)
		if invoice.PaidAmount.Sign() <= 0 {
			invoice.PaidAmount = decimal.Zero
			invoice.Status = StatusApproved
		} else {
			invoice.Status = StatusPartial
		}
		return tx.Model(&Invoice{}).Where("id = ?", invoice.ID).
			Updates(map[string]any{"paid_amount": invoice.PaidAmount, "status": invoice.Status}).Error
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.Internal(fmt.Errorf("reverse payment: %w", err))
	}
	return &invoice, nil
}

// AgingBucket mirrors aging_service.rs's current/31-60/61-90/over-90 split.
type AgingBucket struct {
	Current    decimal.Decimal `json:"current"`
	Days31To60 decimal.Decimal `json:"days_31_60"`
	Days61To90 decimal.Decimal `json:"days_61_90"`
	Over90Days decimal.Decimal `json:"over_90_days"`
	Total      decimal.Decimal `json:"total_outstanding"`
}

func (b *AgingBucket) add(daysOverdue int, amount decimal.Decimal) {
	switch {
	case daysOverdue <= 30:
		b.Current = b.Current.Add(amount)
	case daysOverdue <= 60:
		b.Days31To60 = b.Days31To60.Add(amount)
	case daysOverdue <= 90:
		b.Days61To90 = b.Days61To90.Add(amount)
	default:
		b.Over90Days = b.Over90Days.Add(amount)
	}
	b.Total = b.Total.Add(amount)
}

// PartyAgingDetail is one vendor's or customer's contribution to the
// aging report.
type PartyAgingDetail struct {
	PartyID   uuid.UUID `json:"party_id"`
	PartyName string    `json:"party_name"`
	Bucket    AgingBucket
}

// InvoiceAgingDetail is a single outstanding invoice's contribution to
// the aging report, carrying the party name so detail rows can be
// sorted without a second join.
type InvoiceAgingDetail struct {
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	PartyID       uuid.UUID       `json:"party_id"`
	PartyName     string          `json:"party_name"`
	InvoiceNumber string          `json:"invoice_number"`
	DueDate       time.Time       `json:"due_date"`
	DaysOverdue   int             `json:"days_overdue"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}

// AgingReport is the full report for a company as of a report date.
type AgingReport struct {
	CompanyID      uuid.UUID            `json:"company_id"`
	ReportDate     time.Time            `json:"report_date"`
	Summary        AgingBucket          `json:"summary"`
	PartyDetails   []PartyAgingDetail   `json:"party_details"`
	InvoiceDetails []InvoiceAgingDetail `json:"invoice_details"`
	InvoiceCount   int                  `json:"invoice_count"`
}

// GenerateAgingReport buckets all outstanding invoices for one side of
// the ledger (payables or receivables) by days overdue relative to
// asOf, exactly per original_source's aging_service.rs algorithm, plus
// per-invoice detail rows sorted by (party_name, due_date ASC).
func (s *Service) GenerateAgingReport(ctx context.Context, companyID uuid.UUID, party Party, asOf time.Time) (*AgingReport, error) {
	var invoices []Invoice
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND party = ? AND status NOT IN ? AND total_amount > paid_amount",
			companyID, party, []Status{StatusPaid, StatusCancelled}).
		Find(&invoices).Error
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("load outstanding invoices: %w", err))
	}

	var parties []PartyRecord
	if err := s.db.WithContext(ctx).Where("company_id = ? AND kind = ?", companyID, party).Find(&parties).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("load parties: %w", err))
	}
	partyNames := make(map[uuid.UUID]string, len(parties))
	for _, p := range parties {
		partyNames[p.ID] = p.Name
	}

	report := &AgingReport{CompanyID: companyID, ReportDate: asOf}
	byParty := map[uuid.UUID]*PartyAgingDetail{}

	for _, inv := range invoices {
		outstanding := inv.Outstanding()
		daysOverdue := int(asOf.Sub(inv.DueDate).Hours() / 24)
		if daysOverdue < 0 {
			daysOverdue = 0
		}

		report.Summary.add(daysOverdue, outstanding)
		report.InvoiceCount++

		detail, ok := byParty[inv.PartyID]
		if !ok {
			detail = &PartyAgingDetail{PartyID: inv.PartyID, PartyName: partyNames[inv.PartyID]}
			byParty[inv.PartyID] = detail
		}
		detail.Bucket.add(daysOverdue, outstanding)

		report.InvoiceDetails = append(report.InvoiceDetails, InvoiceAgingDetail{
			InvoiceID: inv.ID, PartyID: inv.PartyID, PartyName: partyNames[inv.PartyID],
			InvoiceNumber: inv.InvoiceNumber, DueDate: inv.DueDate,
			DaysOverdue: daysOverdue, Outstanding: outstanding,
		})
	}

	for _, detail := range byParty {
		report.PartyDetails = append(report.PartyDetails, *detail)
	}

	sort.Slice(report.InvoiceDetails, func(i, j int) bool {
		a, b := report.InvoiceDetails[i], report.InvoiceDetails[j]
		if a.PartyName != b.PartyName {
			return a.PartyName < b.PartyName
		}
		return a.DueDate.Before(b.DueDate)
	})

	return report, nil
}
