package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/massehanto/saku/pkg/apperror"
	"github.com/massehanto/saku/pkg/dbconn"
	"github.com/massehanto/saku/pkg/repository"
)

// Service implements chart-of-accounts CRUD and standard-template seeding.
type Service struct {
	repo repository.Repository[Account]
}

func NewService(repo repository.Repository[Account]) *Service {
	return &Service{repo: repo}
}

type CreateAccountRequest struct {
	CompanyID uuid.UUID
	Code      string
	Name      string
	Type      AccountType
	ParentID  *uuid.UUID
}

func (s *Service) Create(ctx context.Context, req CreateAccountRequest) (*Account, error) {
	if req.Code == "" || req.Name == "" {
		return nil, apperror.Validation("code and name are required")
	}

	if req.ParentID != nil {
		parent, err := s.repo.FindOne(ctx, &Account{ID: *req.ParentID, CompanyID: req.CompanyID})
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("find parent account: %w", err))
		}
		if parent == nil {
			return nil, apperror.Validation("parent_id does not reference an account in this company")
		}
		if parent.Type != req.Type {
			return nil, apperror.Validation("child account type must match parent account type")
		}
	}

	now := time.Now().UTC()
	account := &Account{
		ID:            uuid.New(),
		CompanyID:     req.CompanyID,
		Code:          req.Code,
		Name:          req.Name,
		Type:          req.Type,
		NormalBalance: NormalBalanceFor(req.Type),
		ParentID:      req.ParentID,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if dbconn.IsDuplicateKeyErr(err) {
			return nil, apperror.Conflict("an account with this code already exists")
		}
		return nil, apperror.Internal(fmt.Errorf("create account: %w", err))
	}
	return account, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Account, error) {
	account, err := s.repo.FindOne(ctx, &Account{ID: id, CompanyID: companyID})
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("find account: %w", err))
	}
	if account == nil {
		return nil, apperror.NotFound("account")
	}
	return account, nil
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID) ([]*Account, error) {
	accounts, err := s.repo.Find(ctx, &Account{CompanyID: companyID})
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list accounts: %w", err))
	}
	return accounts, nil
}

// CreateFromTemplate seeds the standard Indonesian chart of accounts for a
// newly onboarded company.
func (s *Service) CreateFromTemplate(ctx context.Context, companyID uuid.UUID) ([]*Account, error) {
	created := make([]*Account, 0, len(standardTemplate))
	for _, entry := range standardTemplate {
		account, err := s.Create(ctx, CreateAccountRequest{
			CompanyID: companyID,
			Code:      entry.Code,
			Name:      entry.Name,
			Type:      entry.Type,
		})
		if err != nil {
			if appErr, ok := err.(*apperror.AppError); ok && appErr.Code == apperror.CodeConflict {
				continue
			}
			return nil, err
		}
		created = append(created, account)
	}
	return created, nil
}

func (s *Service) Deactivate(ctx context.Context, companyID, id uuid.UUID) error {
	account, err := s.Get(ctx, companyID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, account.ID.String(), map[string]any{"is_active": false}); err != nil {
		return apperror.Internal(fmt.Errorf("deactivate account: %w", err))
	}
	return nil
}
