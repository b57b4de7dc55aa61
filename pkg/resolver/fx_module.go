package resolver

import (
	"go.uber.org/fx"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/decoder"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/logger"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/schema_registry"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/schemacache"
)

// FXModule provides *Resolver.
var FXModule = fx.Module("resolver",
	fx.Provide(NewWithDI),
)

// ResolverParams groups the dependencies needed to create a Resolver.
type ResolverParams struct {
	fx.In

	Cache          schemacache.Cache
	Registry       schema_registry.Registry
	Decoder        decoder.Decoder
	RegistryConfig schema_registry.Config
	Logger         *logger.Logger
	Observer       observability.Observer `optional:"true"`
}

// NewWithDI is New for the fx container.
func NewWithDI(params ResolverParams) *Resolver {
	return New(params.Cache, params.Registry, params.Decoder, params.RegistryConfig.RegistryName, params.Logger).
		WithObserver(params.Observer)
}
