// Package gateway is the reverse-proxy API gateway (C9): a service
// registry with background health polling, request routing by path
// prefix, and per-caller rate limiting — grounded on original_source's
// services/api-gateway/src/services/service_registry.rs and routes/mod.rs.
package gateway

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/massehanto/saku/pkg/config"
)

// Endpoint is one sibling service's routable base URL and last-known
// health state.
type Endpoint struct {
	Name      string
	BaseURL   string
	Healthy   bool
	CheckedAt time.Time
}

// Registry holds the current endpoint map behind an atomic pointer so
// the background health-poll goroutine can swap in a fresh snapshot
// without readers ever seeing a partially-updated map or needing a lock.
type Registry struct {
	endpoints  atomic.Pointer[map[string]*Endpoint]
	httpClient *http.Client
	log        *zap.Logger
}

func NewRegistry(cfg config.ServiceConfig, log *zap.Logger) *Registry {
	initial := make(map[string]*Endpoint, len(cfg.PeerURLs))
	for name, url := range cfg.PeerURLs {
		initial[name] = &Endpoint{Name: name, BaseURL: url, Healthy: true}
	}

	r := &Registry{httpClient: &http.Client{Timeout: 5 * time.Second}, log: log.Named("gateway.registry")}
	r.endpoints.Store(&initial)
	return r
}

// Lookup returns the endpoint (base URL and health) registered for a
// service name.
func (r *Registry) Lookup(serviceName string) (*Endpoint, bool) {
	endpoints := *r.endpoints.Load()
	ep, ok := endpoints[serviceName]
	return ep, ok
}

// Snapshot returns every registered endpoint, for a /services/status route.
func (r *Registry) Snapshot() map[string]Endpoint {
	endpoints := *r.endpoints.Load()
	out := make(map[string]Endpoint, len(endpoints))
	for name, ep := range endpoints {
		out[name] = *ep
	}
	return out
}

// RunHealthMonitor polls every endpoint's /health path on an interval
// until ctx is cancelled, replacing the registry's map atomically after
// each sweep — the Go translation of service_registry.rs's
// start_health_monitoring spawned task.
func (r *Registry) RunHealthMonitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.pollOnce(ctx)
		}
	}
}

func (r *Registry) pollOnce(ctx context.Context) {
	current := *r.endpoints.Load()
	next := make(map[string]*Endpoint, len(current))

	for name, ep := range current {
		healthy := r.checkHealth(ctx, ep.BaseURL)
		updated := &Endpoint{Name: ep.Name, BaseURL: ep.BaseURL, Healthy: healthy, CheckedAt: time.Now().UTC()}
		next[name] = updated
		if updated.Healthy != ep.Healthy {
			r.log.Warn("service health changed", zap.String("service", name), zap.Bool("healthy", healthy))
		}
	}
	r.endpoints.Store(&next)
}

func (r *Registry) checkHealth(ctx context.Context, baseURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}
