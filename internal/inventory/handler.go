package inventory

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/massehanto/saku/internal/authmw"
	"github.com/massehanto/saku/pkg/apperror"
	"github.com/massehanto/saku/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.POST("/items", h.CreateItem)
	r.GET("/items", h.ListItems)
	r.GET("/items/:id", h.GetItem)
	r.PUT("/items/:id", h.UpdateItem)
	r.POST("/transactions", h.CreateTransaction)
	r.GET("/transactions", h.ListTransactions)
	r.POST("/stock-adjustment", h.AdjustStock)
	r.GET("/stock-report", h.StockReport)
	r.GET("/valuation-report", h.ValuationReport)
}

func callerOrUnauthenticated(c *gin.Context) (authmw.Caller, bool) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
	}
	return caller, ok
}

type createItemRequest struct {
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	UnitOfMeasure string `json:"unit_of_measure"`
}

func (h *Handler) CreateItem(c *gin.Context) {
	caller, ok := callerOrUnauthenticated(c)
	if !ok {
		return
	}
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	item, err := h.svc.CreateItem(c.Request.Context(), CreateItemRequest{
		CompanyID:     caller.CompanyID,
		SKU:           req.SKU,
		Name:          req.Name,
		UnitOfMeasure: req.UnitOfMeasure,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

func (h *Handler) ListItems(c *gin.Context) {
	caller, ok := callerOrUnauthenticated(c)
	if !ok {
		return
	}
	items, err := h.svc.ListItems(c.Request.Context(), caller.CompanyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

func parseItemID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a valid uuid"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) GetItem(c *gin.Context) {
	id, ok := parseItemID(c)
	if !ok {
		return
	}
	item, err := h.svc.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

type updateItemRequest struct {
	Name          string `json:"name"`
	UnitOfMeasure string `json:"unit_of_measure"`
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := parseItemID(c)
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	item, err := h.svc.UpdateItem(c.Request.Context(), id, UpdateItemRequest{
		Name:          req.Name,
		UnitOfMeasure: req.UnitOfMeasure,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

type createTransactionRequest struct {
	ItemID     string `json:"item_id"`
	Type       string `json:"type"`
	Quantity   string `json:"quantity"`
	UnitCost   string `json:"unit_cost"`
	Reference  string `json:"reference"`
	OccurredAt string `json:"occurred_at"`
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	caller, ok := callerOrUnauthenticated(c)
	if !ok {
		return
	}
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		response.Error(c, apperror.Validation("item_id must be a valid uuid"))
		return
	}
	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		response.Error(c, apperror.Validation("quantity must be a decimal number"))
		return
	}
	unitCost := decimal.Zero
	if req.UnitCost != "" {
		unitCost, err = decimal.NewFromString(req.UnitCost)
		if err != nil {
			response.Error(c, apperror.Validation("unit_cost must be a decimal number"))
			return
		}
	}
	occurredAt := time.Time{}
	if req.OccurredAt != "" {
		occurredAt, err = time.Parse("2006-01-02", req.OccurredAt)
		if err != nil {
			response.Error(c, apperror.Validation("occurred_at must be YYYY-MM-DD"))
			return
		}
	}
	txn, err := h.svc.RecordTransaction(c.Request.Context(), RecordTransactionRequest{
		CompanyID:  caller.CompanyID,
		ItemID:     itemID,
		Type:       TransactionType(req.Type),
		Quantity:   quantity,
		UnitCost:   unitCost,
		Reference:  req.Reference,
		OccurredAt: occurredAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, txn)
}

func (h *Handler) ListTransactions(c *gin.Context) {
	caller, ok := callerOrUnauthenticated(c)
	if !ok {
		return
	}
	var itemID *uuid.UUID
	if raw := c.Query("item_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, apperror.Validation("item_id must be a valid uuid"))
			return
		}
		itemID = &parsed
	}
	txns, err := h.svc.ListTransactions(c.Request.Context(), caller.CompanyID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, txns)
}

type adjustStockRequest struct {
	ItemID    string `json:"item_id"`
	Delta     string `json:"delta"`
	Reference string `json:"reference"`
}

func (h *Handler) AdjustStock(c *gin.Context) {
	caller, ok := callerOrUnauthenticated(c)
	if !ok {
		return
	}
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		response.Error(c, apperror.Validation("item_id must be a valid uuid"))
		return
	}
	delta, err := decimal.NewFromString(req.Delta)
	if err != nil {
		response.Error(c, apperror.Validation("delta must be a decimal number"))
		return
	}
	txn, err := h.svc.AdjustStock(c.Request.Context(), caller.CompanyID, itemID, delta, req.Reference)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, txn)
}

func (h *Handler) StockReport(c *gin.Context) {
	caller, ok := callerOrUnauthenticated(c)
	if !ok {
		return
	}
	lines, err := h.svc.StockReport(c.Request.Context(), caller.CompanyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, lines)
}

func (h *Handler) ValuationReport(c *gin.Context) {
	caller, ok := callerOrUnauthenticated(c)
	if !ok {
		return
	}
	lines, err := h.svc.ValuationReport(c.Request.Context(), caller.CompanyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, lines)
}
