package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *Logger and flushes it on shutdown.
// A logger.Config must be available in the container.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle handles cleanup (sync) of the Zap logger.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// stderr sync errors are not actionable
			_ = client.Zap.Sync()
			return nil
		},
	})
}
