// Package payables is the vendor (accounts payable) specialization over
// internal/invoicing, mirroring original_source's accounts-payable
// service routes in handlers/{vendors,invoices}.rs.
package payables

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/massehanto/saku/internal/authmw"
	"github.com/massehanto/saku/internal/invoicing"
	"github.com/massehanto/saku/pkg/apperror"
	"github.com/massehanto/saku/pkg/response"
)

type Handler struct {
	svc *invoicing.Service
}

func NewHandler(svc *invoicing.Service) *Handler { return &Handler{svc: svc} }

func RegisterRoutes(r *gin.Engine, h *Handler) {
	vendors := r.Group("/vendors")
	vendors.POST("", h.CreateVendor)
	vendors.GET("", h.ListVendors)

	invoices := r.Group("/vendor-invoices")
	invoices.POST("", h.CreateInvoice)
	invoices.GET("", h.ListInvoices)
	invoices.GET("/:id", h.GetInvoice)
	invoices.POST("/:id/status", h.UpdateStatus)
	invoices.POST("/:id/payments", h.RecordPayment)
	invoices.POST("/:id/payments/reverse", h.ReversePayment)

	r.GET("/vendor-invoices/aging-report", h.AgingReport)
}

type createVendorRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (h *Handler) CreateVendor(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}
	var req createVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	vendor, err := h.svc.CreateParty(c.Request.Context(), invoicing.CreatePartyRequest{
		CompanyID: caller.CompanyID,
		Kind:      invoicing.PartyVendor,
		Name:      req.Name,
		TaxID:     req.TaxID,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, vendor)
}

func (h *Handler) ListVendors(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}
	vendors, err := h.svc.ListParties(c.Request.Context(), caller.CompanyID, invoicing.PartyVendor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, vendors)
}

type createInvoiceRequest struct {
	VendorID      string `json:"vendor_id"`
	InvoiceNumber string `json:"invoice_number"`
	InvoiceDate   string `json:"invoice_date"`
	DueDate       string `json:"due_date"`
	Subtotal      string `json:"subtotal"`
	TaxAmount     string `json:"tax_amount"`
	Description   string `json:"description"`
}

func (h *Handler) CreateInvoice(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		response.Error(c, apperror.Validation("vendor_id must be a valid uuid"))
		return
	}
	invoiceDate, err := time.Parse("2006-01-02", req.InvoiceDate)
	if err != nil {
		response.Error(c, apperror.Validation("invoice_date must be YYYY-MM-DD"))
		return
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		response.Error(c, apperror.Validation("due_date must be YYYY-MM-DD"))
		return
	}
	subtotal, err := decimal.NewFromString(req.Subtotal)
	if err != nil {
		response.Error(c, apperror.Validation("subtotal must be a decimal number"))
		return
	}
	taxAmount := decimal.Zero
	if req.TaxAmount != "" {
		taxAmount, err = decimal.NewFromString(req.TaxAmount)
		if err != nil {
			response.Error(c, apperror.Validation("tax_amount must be a decimal number"))
			return
		}
	}

	invoice, err := h.svc.CreateInvoice(c.Request.Context(), invoicing.CreateInvoiceRequest{
		CompanyID:     caller.CompanyID,
		Party:         invoicing.PartyVendor,
		PartyID:       vendorID,
		InvoiceNumber: req.InvoiceNumber,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Subtotal:      subtotal,
		TaxAmount:     taxAmount,
		Description:   req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, invoice)
}

func (h *Handler) ListInvoices(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}
	filters := invoicing.InvoiceFilters{Status: invoicing.Status(c.Query("status"))}
	if vendorID := c.Query("vendor_id"); vendorID != "" {
		id, err := uuid.Parse(vendorID)
		if err != nil {
			response.Error(c, apperror.Validation("vendor_id must be a valid uuid"))
			return
		}
		filters.PartyID = id
	}
	invoices, err := h.svc.List(c.Request.Context(), caller.CompanyID, invoicing.PartyVendor, filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, invoices)
}

func (h *Handler) GetInvoice(c *gin.Context) {
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
	invoice, err := h.svc.Get(c.Request.Context(), caller.CompanyID, invoicing.PartyVendor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, invoice)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
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
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	invoice, err := h.svc.UpdateStatus(c.Request.Context(), caller.CompanyID, invoicing.PartyVendor, id, invoicing.Status(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, invoice)
}

type recordPaymentRequest struct {
	Amount    string `json:"amount"`
	PaidAt    string `json:"paid_at"`
	Method    string `json:"method"`
	Reference string `json:"reference"`
}

func (h *Handler) RecordPayment(c *gin.Context) {
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
	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, apperror.Validation("amount must be a decimal number"))
		return
	}
	paidAt := time.Now().UTC()
	if req.PaidAt != "" {
		paidAt, err = time.Parse("2006-01-02", req.PaidAt)
		if err != nil {
			response.Error(c, apperror.Validation("paid_at must be YYYY-MM-DD"))
			return
		}
	}
	invoice, err := h.svc.RecordPayment(c.Request.Context(), caller.CompanyID, invoicing.PartyVendor, id, invoicing.RecordPaymentRequest{
		Amount:    amount,
		PaidAt:    paidAt,
		Method:    req.Method,
		Reference: req.Reference,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, invoice)
}

func (h *Handler) ReversePayment(c *gin.Context) {
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
	invoice, err := h.svc.ReversePayment(c.Request.Context(), caller.CompanyID, invoicing.PartyVendor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, invoice)
}

func (h *Handler) AgingReport(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}
	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, apperror.Validation("as_of must be YYYY-MM-DD"))
			return
		}
		asOf = parsed
	}
	report, err := h.svc.GenerateAgingReport(c.Request.Context(), caller.CompanyID, invoicing.PartyVendor, asOf)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}
