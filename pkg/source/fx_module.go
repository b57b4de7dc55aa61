package source

import (
	"context"
	"errors"

	"go.uber.org/fx"

	kafkaclient "github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/kafka"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/logger"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/processor"
)

// ConsumerModule runs the Kafka consumer for the lifetime of the fx app.
var ConsumerModule = fx.Module("source",
	fx.Provide(NewConsumerWithDI),
	fx.Invoke(RegisterConsumerLifecycle),
)

// ConsumerParams groups the dependencies needed to create a Consumer.
type ConsumerParams struct {
	fx.In

	KafkaConfig kafkaclient.Config
	Processor   *processor.Processor
	Logger      *logger.Logger
	Observer    observability.Observer `optional:"true"`
}

// NewConsumerWithDI builds the kafka-go reader and wraps it in a Consumer.
func NewConsumerWithDI(params ConsumerParams) (*Consumer, error) {
	reader, err := kafkaclient.NewReader(params.KafkaConfig, params.Logger)
	if err != nil {
		return nil, err
	}
	cfg := params.KafkaConfig
	if cfg.BatchSize == 0 {
		cfg.BatchSize = kafkaclient.DefaultBatchSize
	}
	if cfg.BatchWait == 0 {
		cfg.BatchWait = kafkaclient.DefaultBatchWait
	}
	return NewConsumer(reader, params.Processor, cfg.BatchSize, cfg.BatchWait, params.Logger).
		WithObserver(params.Observer), nil
}

// RegisterConsumerLifecycle starts Run on app start and, on stop, cancels it,
// waits for the batch in flight and closes the reader.
func RegisterConsumerLifecycle(lc fx.Lifecycle, shutdowner fx.Shutdowner, c *Consumer, log *logger.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				log.Info("Kafka consumer started", nil, nil)
				if err := c.Run(ctx); err != nil {
					log.Error("Kafka consumer stopped", err, nil)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return errors.Join(c.reader.Close(), stopCtx.Err())
		},
	})
}
