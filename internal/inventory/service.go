package inventory

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
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log.Named("inventory.service")}
}

type CreateItemRequest struct {
	CompanyID     uuid.UUID
	SKU           string
	Name          string
	UnitOfMeasure string
}

func (s *Service) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	if req.SKU == "" || req.Name == "" {
		return nil, apperror.Validation("sku and name are required")
	}
	now := time.Now().UTC()
	item := Item{
		ID:             uuid.New(),
		CompanyID:      req.CompanyID,
		SKU:            req.SKU,
		Name:           req.Name,
		UnitOfMeasure:  req.UnitOfMeasure,
		CostingMethod:  CostingWeightedAverage,
		QuantityOnHand: decimal.Zero,
		AverageCost:    decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("an item with this sku already exists")
		}
		return nil, apperror.Internal(fmt.Errorf("create inventory item: %w", err))
	}
	return &item, nil
}

func (s *Service) ListItems(ctx context.Context, companyID uuid.UUID) ([]*Item, error) {
	var items []*Item
	if err := s.db.WithContext(ctx).Where("company_id = ?", companyID).Order("sku").Find(&items).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("list inventory items: %w", err))
	}
	return items, nil
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	var item Item
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("inventory item")
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("find inventory item: %w", err))
	}
	return &item, nil
}

type UpdateItemRequest struct {
	Name          string
	UnitOfMeasure string
}

func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.UnitOfMeasure != "" {
		item.UnitOfMeasure = req.UnitOfMeasure
	}
	item.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("update inventory item: %w", err))
	}
	return item, nil
}

// applyReceipt folds a new receipt into an item's weighted-average cost,
// per original_source's CostingMethod::WeightedAverage naming.
func applyReceipt(item *Item, quantity, unitCost decimal.Decimal) {
	existingValue := item.QuantityOnHand.Mul(item.AverageCost)
	incomingValue := quantity.Mul(unitCost)
	newQuantity := item.QuantityOnHand.Add(quantity)
	if newQuantity.IsZero() {
		item.QuantityOnHand = decimal.Zero
		return
	}
	item.AverageCost = existingValue.Add(incomingValue).Div(newQuantity)
	item.QuantityOnHand = newQuantity
}

type RecordTransactionRequest struct {
	CompanyID  uuid.UUID
	ItemID     uuid.UUID
	Type       TransactionType
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	Reference  string
	OccurredAt time.Time
}

// RecordTransaction posts a receipt, issue or signed adjustment against an
// item, updating its on-hand quantity and (for receipts) its
// weighted-average cost.
func (s *Service) RecordTransaction(ctx context.Context, req RecordTransactionRequest) (*Transaction, error) {
	if req.Type == TransactionAdjustment {
		if req.Quantity.IsZero() {
			return nil, apperror.Validation("adjustment quantity must be non-zero")
		}
	} else if !req.Quantity.IsPositive() {
		return nil, apperror.Validation("quantity must be positive")
	}

	var txn *Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item Item
		if err := tx.Where("id = ? AND company_id = ?", req.ItemID, req.CompanyID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("inventory item")
			}
			return apperror.Internal(fmt.Errorf("find inventory item: %w", err))
		}

		switch req.Type {
		case TransactionReceipt:
			applyReceipt(&item, req.Quantity, req.UnitCost)
		case TransactionIssue:
			if req.Quantity.GreaterThan(item.QuantityOnHand) {
				return apperror.Validation("issue quantity exceeds quantity on hand")
			}
			item.QuantityOnHand = item.QuantityOnHand.Sub(req.Quantity)
		case TransactionAdjustment:
			item.QuantityOnHand = item.QuantityOnHand.Add(req.Quantity)
		default:
			return apperror.Validation("unsupported transaction type")
		}
		item.UpdatedAt = time.Now().UTC()
		if err := tx.Save(&item).Error; err != nil {
			return apperror.Internal(fmt.Errorf("update item balance: %w", err))
		}

		occurredAt := req.OccurredAt
		if occurredAt.IsZero() {
			occurredAt = time.Now().UTC()
		}
		record := Transaction{
			ID:         uuid.New(),
			CompanyID:  req.CompanyID,
			ItemID:     req.ItemID,
			Type:       req.Type,
			Quantity:   req.Quantity,
			UnitCost:   req.UnitCost,
			Reference:  req.Reference,
			OccurredAt: occurredAt,
			CreatedAt:  time.Now().UTC(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return apperror.Internal(fmt.Errorf("create inventory transaction: %w", err))
		}
		txn = &record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *Service) ListTransactions(ctx context.Context, companyID uuid.UUID, itemID *uuid.UUID) ([]*Transaction, error) {
	query := s.db.WithContext(ctx).Where("company_id = ?", companyID)
	if itemID != nil {
		query = query.Where("item_id = ?", *itemID)
	}
	var txns []*Transaction
	if err := query.Order("occurred_at desc").Find(&txns).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("list inventory transactions: %w", err))
	}
	return txns, nil
}

// AdjustStock posts a signed correction to an item's quantity on hand,
// routing through RecordTransaction as an ADJUSTMENT entry.
func (s *Service) AdjustStock(ctx context.Context, companyID, itemID uuid.UUID, delta decimal.Decimal, reference string) (*Transaction, error) {
	if delta.IsZero() {
		return nil, apperror.Validation("adjustment delta must be non-zero")
	}
	return s.RecordTransaction(ctx, RecordTransactionRequest{
		CompanyID: companyID,
		ItemID:    itemID,
		Type:      TransactionAdjustment,
		Quantity:  delta,
		Reference: reference,
	})
}

func (s *Service) StockReport(ctx context.Context, companyID uuid.UUID) ([]StockReportLine, error) {
	items, err := s.ListItems(ctx, companyID)
	if err != nil {
		return nil, err
	}
	lines := make([]StockReportLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, StockReportLine{
			ItemID:         item.ID,
			SKU:            item.SKU,
			Name:           item.Name,
			QuantityOnHand: item.QuantityOnHand,
		})
	}
	return lines, nil
}

func (s *Service) ValuationReport(ctx context.Context, companyID uuid.UUID) ([]ValuationReportLine, error) {
	items, err := s.ListItems(ctx, companyID)
	if err != nil {
		return nil, err
	}
	lines := make([]ValuationReportLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, ValuationReportLine{
			ItemID:         item.ID,
			SKU:            item.SKU,
			QuantityOnHand: item.QuantityOnHand,
			AverageCost:    item.AverageCost,
			TotalValue:     item.QuantityOnHand.Mul(item.AverageCost),
		})
	}
	return lines, nil
}
