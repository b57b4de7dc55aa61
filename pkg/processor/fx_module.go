package processor

import (
	"go.uber.org/fx"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/logger"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/pipeline"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/publisher"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/store"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/tracer"
)

// FXModule provides *Processor.
var FXModule = fx.Module("processor",
	fx.Provide(NewWithDI),
)

// ProcessorParams groups the dependencies needed to create a Processor.
type ProcessorParams struct {
	fx.In

	Config    Config
	Pipeline  *pipeline.Pipeline
	Publisher publisher.Publisher
	Store     store.Store
	Logger    *logger.Logger
	Tracer    *tracer.Tracer         `optional:"true"`
	Observer  observability.Observer `optional:"true"`
}

// NewWithDI is New for the fx container.
func NewWithDI(params ProcessorParams) *Processor {
	p := New(params.Pipeline, params.Publisher, params.Store, params.Config, params.Logger).
		WithObserver(params.Observer)
	if params.Tracer != nil {
		p.WithTracer(params.Tracer.Tracer("processor"))
	}
	return p
}
