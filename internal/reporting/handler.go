package reporting

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/massehanto/saku/internal/authmw"
	"github.com/massehanto/saku/pkg/apperror"
	"github.com/massehanto/saku/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/reports/trial-balance", h.TrialBalance)
	r.GET("/reports/balance-sheet", h.BalanceSheet)
	r.GET("/reports/income-statement", h.IncomeStatement)
	r.GET("/reports/cash-flow", h.CashFlow)
	r.GET("/reports/comparative", h.Comparative)
}

func callerOrError(c *gin.Context) (authmw.Caller, bool) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
	}
	return caller, ok
}

func (h *Handler) TrialBalance(c *gin.Context) {
	caller, ok := callerOrError(c)
	if !ok {
		return
	}
	asOfDate := time.Now().UTC()
	if raw := c.Query("as_of_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, apperror.Validation("as_of_date must be YYYY-MM-DD"))
			return
		}
		asOfDate = parsed
	}
	report, err := h.svc.TrialBalance(c.Request.Context(), caller.CompanyID, caller.UserID, asOfDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

func (h *Handler) BalanceSheet(c *gin.Context) {
	caller, ok := callerOrError(c)
	if !ok {
		return
	}
	asOfDate := time.Now().UTC()
	if raw := c.Query("as_of_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, apperror.Validation("as_of_date must be YYYY-MM-DD"))
			return
		}
		asOfDate = parsed
	}
	report, err := h.svc.GenerateBalanceSheet(c.Request.Context(), caller.CompanyID, caller.UserID, asOfDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

func (h *Handler) IncomeStatement(c *gin.Context) {
	caller, ok := callerOrError(c)
	if !ok {
		return
	}
	endDate := time.Now().UTC()
	startDate := time.Date(endDate.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, apperror.Validation("start_date must be YYYY-MM-DD"))
			return
		}
		startDate = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, apperror.Validation("end_date must be YYYY-MM-DD"))
			return
		}
		endDate = parsed
	}
	report, err := h.svc.GenerateIncomeStatement(c.Request.Context(), caller.CompanyID, caller.UserID, startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

func (h *Handler) CashFlow(c *gin.Context) {
	caller, ok := callerOrError(c)
	if !ok {
		return
	}
	period := c.Query("period")
	if period == "" {
		period = time.Now().UTC().Format("2006-01")
	}
	report, err := h.svc.GenerateCashFlow(c.Request.Context(), caller.CompanyID, caller.UserID, period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// Comparative runs two income statements — current year-to-date vs the
// same window one year prior, by default — and returns the per-account
// delta and percent-change between them.
func (h *Handler) Comparative(c *gin.Context) {
	caller, ok := callerOrError(c)
	if !ok {
		return
	}
	currentEnd := time.Now().UTC()
	if raw := c.Query("current_end"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, apperror.Validation("current_end must be YYYY-MM-DD"))
			return
		}
		currentEnd = parsed
	}
	priorEnd := currentEnd.AddDate(-1, 0, 0)
	if raw := c.Query("prior_end"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, apperror.Validation("prior_end must be YYYY-MM-DD"))
			return
		}
		priorEnd = parsed
	}
	report, err := h.svc.GenerateComparative(c.Request.Context(), caller.CompanyID, caller.UserID, currentEnd, priorEnd)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}
