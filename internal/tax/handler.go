package tax

import (
	"time"

	"github.com/gin-gonic/gin"
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
	r.POST("/tax-configurations", h.CreateConfiguration)
	r.GET("/tax-configurations", h.ListConfigurations)
	r.POST("/tax-transactions", h.CreateTransaction)
	r.GET("/tax-report", h.TaxReport)
}

type createConfigurationRequest struct {
	TaxType     string `json:"tax_type"`
	RatePercent string `json:"rate_percent"`
	EffectiveAt string `json:"effective_at"`
}

func (h *Handler) CreateConfiguration(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}
	var req createConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	rate, err := decimal.NewFromString(req.RatePercent)
	if err != nil {
		response.Error(c, apperror.Validation("rate_percent must be a decimal number"))
		return
	}
	effectiveAt := time.Now().UTC()
	if req.EffectiveAt != "" {
		effectiveAt, err = time.Parse("2006-01-02", req.EffectiveAt)
		if err != nil {
			response.Error(c, apperror.Validation("effective_at must be YYYY-MM-DD"))
			return
		}
	}
	config, err := h.svc.CreateConfiguration(c.Request.Context(), CreateConfigurationRequest{
		CompanyID:   caller.CompanyID,
		TaxType:     Type(req.TaxType),
		RatePercent: rate,
		EffectiveAt: effectiveAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, config)
}

func (h *Handler) ListConfigurations(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}
	configs, err := h.svc.ListConfigurations(c.Request.Context(), caller.CompanyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, configs)
}

type createTransactionRequest struct {
	TaxType       string `json:"tax_type"`
	BaseAmount    string `json:"base_amount"`
	Reference     string `json:"reference"`
	PeriodMonth   string `json:"period_month"`
	MaritalStatus string `json:"marital_status"`
	Dependents    int    `json:"dependents"`
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	amount, err := decimal.NewFromString(req.BaseAmount)
	if err != nil {
		response.Error(c, apperror.Validation("base_amount must be a decimal number"))
		return
	}

	taxType := Type(req.TaxType)
	var txn *Transaction
	if taxType == TypePPh21 {
		txn, err = h.svc.CalculatePPh21(c.Request.Context(), CalculatePPh21Request{
			CompanyID:     caller.CompanyID,
			AnnualGross:   amount,
			MaritalStatus: req.MaritalStatus,
			Dependents:    req.Dependents,
			Reference:     req.Reference,
			PeriodMonth:   req.PeriodMonth,
		})
	} else {
		txn, err = h.svc.Calculate(c.Request.Context(), CalculateRequest{
			CompanyID:   caller.CompanyID,
			TaxType:     taxType,
			BaseAmount:  amount,
			Reference:   req.Reference,
			PeriodMonth: req.PeriodMonth,
		})
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, txn)
}

func (h *Handler) TaxReport(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}
	period := c.Query("period")
	if period == "" {
		period = time.Now().UTC().Format("2006-01")
	}
	totals, err := h.svc.TaxReport(c.Request.Context(), caller.CompanyID, period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, totals)
}
