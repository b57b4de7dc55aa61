package publisher

import (
	"context"

	"go.uber.org/fx"

	kafkaclient "github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/kafka"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/logger"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
)

// FXModule provides the configured Publisher and closes it on stop.
var FXModule = fx.Module("publisher",
	fx.Provide(NewWithDI),
)

// PublisherParams groups the dependencies needed to create a Publisher.
type PublisherParams struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Config      Config
	KafkaConfig kafkaclient.Config
	Logger      *logger.Logger
	Observer    observability.Observer `optional:"true"`
}

// NewWithDI picks AppSync, Kafka or Noop from the configuration.
func NewWithDI(params PublisherParams) (Publisher, error) {
	cfg := params.Config

	switch {
	case cfg.AppSyncEndpoint != "":
		params.Logger.Info("Publishing to AppSync Events API", nil, map[string]interface{}{"endpoint": cfg.AppSyncEndpoint})
		return NewAppSync(cfg.AppSyncEndpoint, cfg.AppSyncAPIKey, cfg.Timeout, params.Logger).
			WithObserver(params.Observer), nil

	case cfg.KafkaTopic != "":
		writer, err := kafkaclient.NewWriter(params.KafkaConfig, cfg.KafkaTopic, params.Logger)
		if err != nil {
			return nil, err
		}
		params.Logger.Info("Republishing to Kafka", nil, map[string]interface{}{"topic": cfg.KafkaTopic})
		p := NewKafka(writer).WithObserver(params.Observer)
		params.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return p.Close()
			},
		})
		return p, nil

	default:
		return NewNoop(params.Logger), nil
	}
}
