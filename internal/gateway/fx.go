package gateway

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/massehanto/saku/internal/authmw"
	"github.com/massehanto/saku/internal/identity"
	"github.com/massehanto/saku/pkg/config"
)

const healthPollInterval = 15 * time.Second

func newCallerLimiter() *CallerLimiter {
	return NewCallerLimiter(20, 40)
}

func newTokenVerifier(cfg config.ServiceConfig) authmw.TokenVerifier {
	return identity.NewStandaloneVerifier(cfg.JWTSecret)
}

func registerHealthMonitor(lc fx.Lifecycle, registry *Registry) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go registry.RunHealthMonitor(ctx, healthPollInterval)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

var Module = fx.Module("gateway",
	fx.Provide(
		NewRegistry,
		NewProxy,
		newCallerLimiter,
		newTokenVerifier,
		NewHandler,
	),
	fx.Invoke(registerHealthMonitor, RegisterRoutes),
)
