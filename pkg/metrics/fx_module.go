package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/logger"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
)

// FXModule provides *Metrics, exposes it as the observability.Observer and
// serves /metrics for the lifetime of the app.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		AsObserver,
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// AsObserver exposes m to components that accept an observer.
func AsObserver(m *Metrics) observability.Observer {
	return m
}

func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})

				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Error starting Prometheus metrics server", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Prometheus metrics server", nil, nil)
			return m.Server.Shutdown(ctx)
		},
	})
}
