package tax

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/massehanto/saku/pkg/apperror"
	"github.com/massehanto/saku/pkg/idvalidate"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log.Named("tax.service")}
}

type CreateConfigurationRequest struct {
	CompanyID   uuid.UUID
	TaxType     Type
	RatePercent decimal.Decimal
	EffectiveAt time.Time
}

func (s *Service) CreateConfiguration(ctx context.Context, req CreateConfigurationRequest) (*Configuration, error) {
	if req.RatePercent.Sign() < 0 {
		return nil, apperror.Validation("rate_percent cannot be negative")
	}
	now := time.Now().UTC()
	config := Configuration{
		ID:          uuid.New(),
		CompanyID:   req.CompanyID,
		TaxType:     req.TaxType,
		RatePercent: req.RatePercent,
		EffectiveAt: req.EffectiveAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.db.WithContext(ctx).
		Where("company_id = ? AND tax_type = ?", req.CompanyID, req.TaxType).
		Assign(Configuration{RatePercent: req.RatePercent, EffectiveAt: req.EffectiveAt, UpdatedAt: now}).
		FirstOrCreate(&config).Error
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("upsert tax configuration: %w", err))
	}
	return &config, nil
}

func (s *Service) ListConfigurations(ctx context.Context, companyID uuid.UUID) ([]*Configuration, error) {
	var configs []*Configuration
	if err := s.db.WithContext(ctx).Where("company_id = ?", companyID).Find(&configs).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("list tax configurations: %w", err))
	}
	return configs, nil
}

func (s *Service) rateFor(ctx context.Context, companyID uuid.UUID, taxType Type, fallback decimal.Decimal) decimal.Decimal {
	var config Configuration
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND tax_type = ?", companyID, taxType).
		First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fallback
	}
	if err != nil {
		return fallback
	}
	return config.RatePercent
}

type CalculateRequest struct {
	CompanyID   uuid.UUID
	TaxType     Type
	BaseAmount  decimal.Decimal
	Reference   string
	PeriodMonth string
}

// Calculate computes the named tax against BaseAmount using the
// company's configured rate (falling back to the statutory default
// when unconfigured) and persists the resulting transaction.
func (s *Service) Calculate(ctx context.Context, req CalculateRequest) (*Transaction, error) {
	var amount decimal.Decimal
	switch req.TaxType {
	case TypePPN:
		amount = CalculatePPN(req.BaseAmount, s.rateFor(ctx, req.CompanyID, TypePPN, decimal.NewFromInt(11)))
	case TypePPh22:
		amount = CalculatePPh22(req.BaseAmount, s.rateFor(ctx, req.CompanyID, TypePPh22, decimal.NewFromInt(2)))
	case TypePPh23:
		amount = CalculatePPh23(req.BaseAmount, s.rateFor(ctx, req.CompanyID, TypePPh23, decimal.NewFromInt(2)))
	case TypePPh25:
		amount = CalculatePPh25(req.BaseAmount, s.rateFor(ctx, req.CompanyID, TypePPh25, decimal.NewFromInt(1)))
	case TypePBB:
		amount = CalculatePBB(req.BaseAmount, s.rateFor(ctx, req.CompanyID, TypePBB, decimal.NewFromFloat(0.5)))
	default:
		return nil, apperror.Validation(fmt.Sprintf("unsupported tax_type for base-amount calculation: %s", req.TaxType))
	}

	txn := Transaction{
		ID:          uuid.New(),
		CompanyID:   req.CompanyID,
		TaxType:     req.TaxType,
		BaseAmount:  req.BaseAmount,
		TaxAmount:   amount,
		Reference:   req.Reference,
		PeriodMonth: req.PeriodMonth,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&txn).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("persist tax transaction: %w", err))
	}
	return &txn, nil
}

type CalculatePPh21Request struct {
	CompanyID      uuid.UUID
	AnnualGross    decimal.Decimal
	MaritalStatus  string
	Dependents     int
	Reference      string
	PeriodMonth    string
}

func (s *Service) CalculatePPh21(ctx context.Context, req CalculatePPh21Request) (*Transaction, error) {
	ptkp := PTKPAmount(req.MaritalStatus, req.Dependents)
	amount := CalculatePPh21(req.AnnualGross, ptkp)

	txn := Transaction{
		ID:          uuid.New(),
		CompanyID:   req.CompanyID,
		TaxType:     TypePPh21,
		BaseAmount:  req.AnnualGross,
		TaxAmount:   amount,
		Reference:   req.Reference,
		PeriodMonth: req.PeriodMonth,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&txn).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("persist tax transaction: %w", err))
	}
	return &txn, nil
}

func (s *Service) TaxReport(ctx context.Context, companyID uuid.UUID, periodMonth string) (map[Type]decimal.Decimal, error) {
	var txns []Transaction
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND period_month = ?", companyID, periodMonth).
		Find(&txns).Error
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("load tax transactions: %w", err))
	}

	totals := map[Type]decimal.Decimal{}
	for _, txn := range txns {
		totals[txn.TaxType] = totals[txn.TaxType].Add(txn.TaxAmount)
	}
	return totals, nil
}

// ValidateNPWP checks an Indonesian taxpayer identification number.
func ValidateNPWP(npwp string) bool {
	return idvalidate.ValidNPWP(npwp)
}
