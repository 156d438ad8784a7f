// Package svcserver provides the shared gin+fx HTTP server bootstrap every
// SAKU service binary starts from: health check, Prometheus metrics,
// structured request logging, and graceful shutdown on SIGINT/SIGTERM —
// generalized from the teacher's internal/server Module down to a single
// small service's needs.
package svcserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/massehanto/saku/pkg/config"
)

// NewEngine builds a gin engine with recovery and structured request
// logging wired in, matching the teacher's middleware stacking order.
func NewEngine(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.GET("/health", healthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RequestLogger logs method/path/status/latency for every request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http.request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// Run starts engine on addr and blocks until ctx is cancelled, then shuts
// down gracefully.
func Run(ctx context.Context, log *zap.Logger, engine *gin.Engine, addr string) error {
	srv := &http.Server{Addr: addr, Handler: engine}

	errCh := make(chan error, 1)
	go func() {
		log.Info("service listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// RegisterHooks wires Run into the fx lifecycle so `fx.New` blocks on the
// server the way the teacher's apps/api/main.go does.
func RegisterHooks(lc fx.Lifecycle, log *zap.Logger, engine *gin.Engine, cfg config.ServiceConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := Run(ctx, log, engine, cfg.BindAddr); err != nil {
					log.Error("server exited with error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
