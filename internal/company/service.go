package company

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/massehanto/saku/pkg/apperror"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log.Named("company.service")}
}

type CreateCompanyRequest struct {
	Name     string
	NPWP     string
	Address  string
	Industry string
}

func (s *Service) Create(ctx context.Context, req CreateCompanyRequest) (*Company, error) {
	if req.Name == "" {
		return nil, apperror.Validation("name is required")
	}
	now := time.Now().UTC()
	c := Company{
		ID:        uuid.New(),
		Name:      req.Name,
		NPWP:      req.NPWP,
		Address:   req.Address,
		Industry:  req.Industry,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("create company: %w", err))
	}
	if err := s.db.WithContext(ctx).Create(&Settings{CompanyID: c.ID, FiscalYearStartMonth: 1, DefaultCurrency: "IDR", UpdatedAt: now}).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("create default company settings: %w", err))
	}
	return &c, nil
}

func (s *Service) List(ctx context.Context) ([]*Company, error) {
	var companies []*Company
	if err := s.db.WithContext(ctx).Order("name").Find(&companies).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("list companies: %w", err))
	}
	return companies, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Company, error) {
	var c Company
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("company")
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("find company: %w", err))
	}
	return &c, nil
}

type UpdateCompanyRequest struct {
	Name     string
	Address  string
	Industry string
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest) (*Company, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Address != "" {
		c.Address = req.Address
	}
	if req.Industry != "" {
		c.Industry = req.Industry
	}
	c.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("update company: %w", err))
	}
	return c, nil
}

func (s *Service) GetSettings(ctx context.Context, companyID uuid.UUID) (*Settings, error) {
	var settings Settings
	err := s.db.WithContext(ctx).Where("company_id = ?", companyID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("company settings")
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("find company settings: %w", err))
	}
	return &settings, nil
}

type UpdateSettingsRequest struct {
	FiscalYearStartMonth int
	DefaultCurrency      string
}

func (s *Service) UpdateSettings(ctx context.Context, companyID uuid.UUID, req UpdateSettingsRequest) (*Settings, error) {
	settings, err := s.GetSettings(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if req.FiscalYearStartMonth >= 1 && req.FiscalYearStartMonth <= 12 {
		settings.FiscalYearStartMonth = req.FiscalYearStartMonth
	}
	if req.DefaultCurrency != "" {
		settings.DefaultCurrency = req.DefaultCurrency
	}
	settings.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("update company settings: %w", err))
	}
	return settings, nil
}
