package invoicing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/massehanto/saku/pkg/apperror"
)

type CreatePartyRequest struct {
	CompanyID uuid.UUID
	Kind      Party
	Name      string
	TaxID     string
	Email     string
	Phone     string
}

func (s *Service) CreateParty(ctx context.Context, req CreatePartyRequest) (*PartyRecord, error) {
	if req.Name == "" {
		return nil, apperror.Validation("name is required")
	}
	now := time.Now().UTC()
	record := PartyRecord{
		ID:        uuid.New(),
		CompanyID: req.CompanyID,
		Kind:      req.Kind,
		Name:      req.Name,
		TaxID:     req.TaxID,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("a party with this name already exists")
		}
		return nil, apperror.Internal(fmt.Errorf("create party: %w", err))
	}
	return &record, nil
}

func (s *Service) ListParties(ctx context.Context, companyID uuid.UUID, kind Party) ([]*PartyRecord, error) {
	var records []*PartyRecord
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND kind = ?", companyID, kind).
		Order("name").Find(&records).Error
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list parties: %w", err))
	}
	return records, nil
}

func (s *Service) GetParty(ctx context.Context, companyID uuid.UUID, kind Party, id uuid.UUID) (*PartyRecord, error) {
	var record PartyRecord
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND kind = ? AND id = ?", companyID, kind, id).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("party")
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("find party: %w", err))
	}
	return &record, nil
}
