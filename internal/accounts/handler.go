package accounts

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/massehanto/saku/internal/authmw"
	"github.com/massehanto/saku/pkg/apperror"
	"github.com/massehanto/saku/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func RegisterRoutes(r *gin.Engine, h *Handler) {
	group := r.Group("/accounts")
	group.POST("", h.Create)
	group.POST("/templates/standard", h.CreateFromTemplate)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.DELETE("/:id", h.Deactivate)
}

type createAccountRequest struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	ParentID *string `json:"parent_id"`
}

func (h *Handler) Create(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}

	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != nil {
		id, err := uuid.Parse(*req.ParentID)
		if err != nil {
			response.Error(c, apperror.Validation("parent_id must be a valid uuid"))
			return
		}
		parentID = &id
	}

	account, err := h.svc.Create(c.Request.Context(), CreateAccountRequest{
		CompanyID: caller.CompanyID,
		Code:      req.Code,
		Name:      req.Name,
		Type:      AccountType(req.Type),
		ParentID:  parentID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, account)
}

func (h *Handler) CreateFromTemplate(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}
	accounts, err := h.svc.CreateFromTemplate(c.Request.Context(), caller.CompanyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, accounts)
}

func (h *Handler) List(c *gin.Context) {
	caller, ok := authmw.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, apperror.Unauthenticated("missing caller"))
		return
	}
	accounts, err := h.svc.List(c.Request.Context(), caller.CompanyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, accounts)
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
	account, err := h.svc.Get(c.Request.Context(), caller.CompanyID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, account)
}

func (h *Handler) Deactivate(c *gin.Context) {
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
	if err := h.svc.Deactivate(c.Request.Context(), caller.CompanyID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deactivated": true})
}
