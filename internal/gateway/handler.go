package gateway

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/massehanto/saku/internal/authmw"
	"github.com/massehanto/saku/pkg/apperror"
	"github.com/massehanto/saku/pkg/response"
)

type Handler struct {
	proxy    *Proxy
	registry *Registry
	limiter  *CallerLimiter
	verifier authmw.TokenVerifier
}

func NewHandler(proxy *Proxy, registry *Registry, limiter *CallerLimiter, verifier authmw.TokenVerifier) *Handler {
	return &Handler{proxy: proxy, registry: registry, limiter: limiter, verifier: verifier}
}

// routeTable maps the gateway's public path prefix to the downstream
// service name, mirroring original_source's routes/mod.rs router setup.
var routeTable = []struct {
	prefix  string
	service string
}{
	{"/api/auth", "auth"},
	{"/api/companies", "company"},
	{"/api/accounts", "accounts"},
	{"/api/journal-entries", "ledger"},
	{"/api/trial-balance", "ledger"},
	{"/api/tax-configurations", "tax"},
	{"/api/tax-transactions", "tax"},
	{"/api/tax-report", "tax"},
	{"/api/vendors", "payables"},
	{"/api/vendor-invoices", "payables"},
	{"/api/customers", "receivables"},
	{"/api/customer-invoices", "receivables"},
	{"/api/items", "inventory"},
	{"/api/transactions", "inventory"},
	{"/api/stock-adjustment", "inventory"},
	{"/api/stock-report", "inventory"},
	{"/api/valuation-report", "inventory"},
	{"/api/reports", "reporting"},
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/services/status", h.ServiceStatus)
	r.Any("/api/*path", h.RateLimit, h.ProxyRequest)
}

func (h *Handler) ServiceStatus(c *gin.Context) {
	response.OK(c, h.registry.Snapshot())
}

// RateLimit applies a per-caller token bucket keyed by the bearer
// token's subject when present, falling back to remote address for
// unauthenticated probes.
func (h *Handler) RateLimit(c *gin.Context) {
	key := c.ClientIP()
	if caller, err := h.authenticate(c); err == nil {
		key = caller.UserID.String()
	}
	if !h.limiter.Allow(key) {
		// 429 falls outside the seven-bucket error taxonomy (see
		// pkg/apperror), so this writes the envelope directly rather
		// than stretching a taxonomy code to cover it.
		c.JSON(http.StatusTooManyRequests, response.ErrorResponse{
			ErrorCode: "RATE_LIMITED",
			Message:   "too many requests",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		c.Abort()
		return
	}
	c.Next()
}

func (h *Handler) ProxyRequest(c *gin.Context) {
	path := c.Param("path")
	fullPath := "/api" + path

	for _, route := range routeTable {
		if strings.HasPrefix(fullPath, route.prefix) {
			// auth and company both have to be reachable before a caller
			// can hold a token: signup needs an existing company, and
			// company bootstrap precedes any user being authenticated.
			if route.service != "auth" && route.service != "company" {
				caller, err := h.authenticate(c)
				if err != nil {
					response.Error(c, err)
					return
				}
				c.Request.Header.Set("X-User-ID", caller.UserID.String())
				c.Request.Header.Set("X-Company-ID", caller.CompanyID.String())
			}
			h.proxy.Forward(c, route.service, strings.TrimPrefix(fullPath, "/api"))
			return
		}
	}
	response.Error(c, apperror.NotFound("route"))
}

// authenticate verifies the caller's bearer token before the request is
// proxied downstream; every sibling service trusts the X-User-ID/
// X-Company-ID headers it sets because TRUST_GATEWAY_HEADERS is only
// configured true for traffic arriving from the gateway's own network.
func (h *Handler) authenticate(c *gin.Context) (authmw.Caller, error) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return authmw.Caller{}, apperror.Unauthenticated("missing bearer token")
	}
	claims, err := h.verifier.VerifyAccessToken(strings.TrimPrefix(header, prefix))
	if err != nil {
		return authmw.Caller{}, apperror.Unauthenticated("invalid or expired token")
	}
	return authmw.Caller{UserID: claims.UserID, CompanyID: claims.CompanyID, Email: claims.Email}, nil
}
