package pipeline

import (
	"go.uber.org/fx"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/decoder"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/logger"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/resolver"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/tracer"
)

// FXModule provides *Pipeline.
var FXModule = fx.Module("pipeline",
	fx.Provide(NewWithDI),
)

// PipelineParams groups the dependencies needed to create a Pipeline.
type PipelineParams struct {
	fx.In

	Config   Config
	Resolver *resolver.Resolver
	Decoder  decoder.Decoder
	Logger   *logger.Logger
	Tracer   *tracer.Tracer         `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewWithDI is New for the fx container.
func NewWithDI(params PipelineParams) *Pipeline {
	p := New(params.Resolver, params.Decoder, params.Logger).
		WithTopicSchemas(DefaultTopicSchemas().Merge(params.Config.TopicSchemas)).
		WithObserver(params.Observer)
	if params.Tracer != nil {
		p.WithTracer(params.Tracer.Tracer("pipeline"))
	}
	return p
}
