package bootstrap

import (
	"context"
	"log/slog"

	"reservebook/internal/pkg/config"
	"reservebook/internal/pkg/tracing"

	"go.uber.org/fx"
)

var TracingModule = fx.Module("tracing",
	fx.Invoke(registerTracing),
)

func registerTracing(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) {
	var shutdown tracing.ShutdownFunc
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			fn, err := tracing.Setup(ctx, cfg.App.ServiceName, cfg.Tracing)
			if err != nil {
				return err
			}
			shutdown = fn
			if cfg.Tracing.Enabled {
				logger.Info("トレーシングを有効化しました", "endpoint", cfg.Tracing.OTLPEndpoint)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		},
	})
}
