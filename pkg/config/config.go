// Package config loads every component configuration from the environment.
//
// Variable names are those of the component configs (EVENTS_TABLE,
// GLUE_REGISTRY_NAME, APPSYNC_HTTP_ENDPOINT, ...); they are not prefixed.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/awsclient"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/decoder"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/kafka"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/logger"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/metrics"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/pipeline"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/processor"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/publisher"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/schema_registry"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/source"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/store"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/tracer"
)

// Config is the full service configuration.
type Config struct {
	Logger    logger.Config          `yaml:"logger"`
	Tracer    tracer.Config          `yaml:"tracer"`
	Metrics   metrics.Config         `yaml:"metrics"`
	AWS       awsclient.Config       `yaml:"aws"`
	Registry  schema_registry.Config `yaml:"schema_registry"`
	Decoder   decoder.Config         `yaml:"decoder"`
	Pipeline  pipeline.Config        `yaml:"pipeline"`
	Kafka     kafka.Config           `yaml:"kafka"`
	Publisher publisher.Config       `yaml:"publisher"`
	Store     store.Config           `yaml:"store"`
	Processor processor.Config       `yaml:"processor"`
	Source    source.Config          `yaml:"source"`
}

// Load reads every section from the environment, applying the defaults
// declared on the component configs.
func Load() (Config, error) {
	var c Config
	sections := []struct {
		name string
		spec interface{}
	}{
		{"logger", &c.Logger},
		{"tracer", &c.Tracer},
		{"metrics", &c.Metrics},
		{"aws", &c.AWS},
		{"schema_registry", &c.Registry},
		{"decoder", &c.Decoder},
		{"pipeline", &c.Pipeline},
		{"kafka", &c.Kafka},
		{"kafka tls", &c.Kafka.TLS},
		{"kafka sasl", &c.Kafka.SASL},
		{"publisher", &c.Publisher},
		{"store", &c.Store},
		{"processor", &c.Processor},
		{"source", &c.Source},
	}
	for _, s := range sections {
		if err := envconfig.Process("", s.spec); err != nil {
			return Config{}, fmt.Errorf("failed to load %s config: %w", s.name, err)
		}
	}
	return c, nil
}

// Sections exposes each component config to the fx container.
type Sections struct {
	fx.Out

	Logger    logger.Config
	Tracer    tracer.Config
	Metrics   metrics.Config
	AWS       awsclient.Config
	Registry  schema_registry.Config
	Decoder   decoder.Config
	Pipeline  pipeline.Config
	Kafka     kafka.Config
	Publisher publisher.Config
	Store     store.Config
	Processor processor.Config
	Source    source.Config
}

// Provide splits c into its sections.
func Provide(c Config) Sections {
	return Sections{
		Logger:    c.Logger,
		Tracer:    c.Tracer,
		Metrics:   c.Metrics,
		AWS:       c.AWS,
		Registry:  c.Registry,
		Decoder:   c.Decoder,
		Pipeline:  c.Pipeline,
		Kafka:     c.Kafka,
		Publisher: c.Publisher,
		Store:     c.Store,
		Processor: c.Processor,
		Source:    c.Source,
	}
}

// FXModule provides every section of c.
func FXModule(c Config) fx.Option {
	return fx.Module("config",
		fx.Supply(c),
		fx.Provide(Provide),
	)
}
