package gateway

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/massehanto/saku/pkg/apperror"
	"github.com/massehanto/saku/pkg/response"
)

// droppedRequestHeaders mirrors service_registry.rs's proxy_request
// header skip-list: hop-by-hop headers the reverse proxy must not
// forward verbatim to the upstream service.
var droppedRequestHeaders = map[string]bool{
	"host":              true,
	"content-length":    true,
	"transfer-encoding": true,
}

type Proxy struct {
	registry   *Registry
	httpClient *http.Client
	log        *zap.Logger
}

func NewProxy(registry *Registry, log *zap.Logger) *Proxy {
	return &Proxy{registry: registry, httpClient: &http.Client{}, log: log.Named("gateway.proxy")}
}

// Forward proxies the incoming request to serviceName's base URL plus
// downstreamPath, copying headers and body both ways per
// proxy_request's forwarding rules.
func (p *Proxy) Forward(c *gin.Context, serviceName, downstreamPath string) {
	endpoint, ok := p.registry.Lookup(serviceName)
	if !ok {
		response.Error(c, apperror.NotFound("service "+serviceName))
		return
	}
	if !endpoint.Healthy {
		unavailable := apperror.Dependency(serviceName, nil)
		unavailable.HTTPStatus = http.StatusServiceUnavailable
		response.Error(c, unavailable)
		return
	}

	url := endpoint.BaseURL + downstreamPath
	if raw := c.Request.URL.RawQuery; raw != "" {
		url += "?" + raw
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, url, c.Request.Body)
	if err != nil {
		response.Error(c, apperror.Internal(err))
		return
	}
	for key, values := range c.Request.Header {
		if droppedRequestHeaders[strings.ToLower(key)] {
			continue
		}
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		unavailable := apperror.Dependency(serviceName, err)
		unavailable.HTTPStatus = http.StatusServiceUnavailable
		response.Error(c, unavailable)
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		if droppedRequestHeaders[strings.ToLower(key)] {
			continue
		}
		for _, v := range values {
			c.Writer.Header().Add(key, v)
		}
	}
	c.Writer.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(c.Writer, resp.Body)
}
