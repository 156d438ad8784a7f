package ledger

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
	group := r.Group("/journal-entries")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("/:id/transition", h.Transition)
	r.GET("/trial-balance", h.TrialBalance) // ?as_of_date=YYYY-MM-DD, defaults to today
}

type createLineRequest struct {
	AccountID   string `json:"account_id"`
	Direction   string `json:"direction"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

type createEntryRequest struct {
	Memo      string              `json:"memo"`
	EntryDate string              `json:"entry_date"`
	Lines     []createLineRequest `json:"lines"`
}

func (h *Handler) Create(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}

	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}

	entryDate, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		response.Error(c, apperror.Validation("entry_date must be YYYY-MM-DD"))
		return
	}

	lines := make([]CreateEntryLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		accountID, err := uuid.Parse(l.AccountID)
		if err != nil {
			response.Error(c, apperror.Validation("line account_id must be a valid uuid"))
			return
		}
		amount, err := decimal.NewFromString(l.Amount)
		if err != nil {
			response.Error(c, apperror.Validation("line amount must be a decimal number"))
			return
		}
		lines = append(lines, CreateEntryLine{
			AccountID:   accountID,
			Direction:   Direction(l.Direction),
			Amount:      amount,
			Description: l.Description,
		})
	}

	entry, err := h.svc.CreateEntry(c.Request.Context(), CreateEntryRequest{
		CompanyID: caller.CompanyID,
		Memo:      req.Memo,
		EntryDate: entryDate,
		Lines:     lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

func (h *Handler) List(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}
	entries, err := h.svc.List(c.Request.Context(), caller.CompanyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

func (h *Handler) Get(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a valid uuid"))
		return
	}
	entry, err := h.svc.Get(c.Request.Context(), caller.CompanyID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entry)
}

type transitionRequest struct {
	Status string `json:"status"`
}

func (h *Handler) Transition(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a valid uuid"))
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	entry, err := h.svc.Transition(c.Request.Context(), caller.CompanyID, id, Status(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entry)
}

func (h *Handler) TrialBalance(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}
	asOf := time.Now().UTC()
	if raw := c.Query("as_of_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, apperror.Validation("as_of_date must be YYYY-MM-DD"))
			return
		}
		asOf = parsed
	}
	report, err := h.svc.TrialBalance(c.Request.Context(), caller.CompanyID, caller.UserID, asOf)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}
