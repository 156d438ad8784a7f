package company

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/massehanto/saku/pkg/apperror"
	"github.com/massehanto/saku/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.POST("/companies", h.Create)
	r.GET("/companies", h.List)
	r.GET("/companies/:id", h.Get)
	r.PUT("/companies/:id", h.Update)
	r.GET("/companies/:id/settings", h.GetSettings)
	r.PUT("/companies/:id/settings", h.UpdateSettings)
}

type createCompanyRequest struct {
	Name     string `json:"name"`
	NPWP     string `json:"npwp"`
	Address  string `json:"address"`
	Industry string `json:"industry"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	company, err := h.svc.Create(c.Request.Context(), CreateCompanyRequest{
		Name:     req.Name,
		NPWP:     req.NPWP,
		Address:  req.Address,
		Industry: req.Industry,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, company)
}

func (h *Handler) List(c *gin.Context) {
	companies, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, companies)
}

func parseCompanyID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a valid uuid"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}
	company, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, company)
}

type updateCompanyRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Industry string `json:"industry"`
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}
	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	company, err := h.svc.Update(c.Request.Context(), id, UpdateCompanyRequest{
		Name:     req.Name,
		Address:  req.Address,
		Industry: req.Industry,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, company)
}

func (h *Handler) GetSettings(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}
	settings, err := h.svc.GetSettings(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, settings)
}

type updateSettingsRequest struct {
	FiscalYearStartMonth int    `json:"fiscal_year_start_month"`
	DefaultCurrency      string `json:"default_currency"`
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	settings, err := h.svc.UpdateSettings(c.Request.Context(), id, UpdateSettingsRequest{
		FiscalYearStartMonth: req.FiscalYearStartMonth,
		DefaultCurrency:      req.DefaultCurrency,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, settings)
}
