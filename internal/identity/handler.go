package identity

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/massehanto/saku/pkg/apperror"
	"github.com/massehanto/saku/pkg/response"
)

// Handler serves the identity HTTP surface: signup, login, refresh, logout.
type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log.Named("identity.handler")}
}

// RegisterRoutes mounts the identity endpoints on r.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	group := r.Group("/auth")
	group.POST("/signup", h.Signup)
	group.POST("/login", h.Login)
	group.POST("/refresh", h.Refresh)
	group.POST("/logout", h.Logout)
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	CompanyID string `json:"company_id"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		response.Error(c, apperror.Validation("company_id must be a valid uuid"))
		return
	}

	user, err := h.svc.Signup(c.Request.Context(), SignupRequest{
		Email:     req.Email,
		Password:  req.Password,
		FullName:  req.FullName,
		CompanyID: companyID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": user.ID, "email": user.Email, "full_name": user.FullName})
}

type loginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	CompanyID string `json:"company_id"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		response.Error(c, apperror.Validation("company_id must be a valid uuid"))
		return
	}

	pair, err := h.svc.Login(c.Request.Context(), req.Email, req.Password, companyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tokenPairResponse(pair))
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tokenPairResponse(pair))
}

func (h *Handler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid request body"))
		return
	}
	if err := h.svc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"revoked": true})
}

func tokenPairResponse(pair *TokenPair) gin.H {
	return gin.H{
		"access_token":             pair.AccessToken,
		"refresh_token":            pair.RefreshToken,
		"access_token_expires_at":  pair.AccessTokenExpiresAt,
		"refresh_token_expires_at": pair.RefreshTokenExpiresAt,
	}
}
