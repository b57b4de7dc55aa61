package schema_registry

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"go.uber.org/fx"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/logger"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
)

// FXModule provides the Registry and logs its lifecycle.
//
// Usage:
//
//	app := fx.New(
//	    awsclient.FXModule,
//	    schema_registry.FXModule,
//	    fx.Provide(func() schema_registry.Config { return cfg.Registry }),
//	)
var FXModule = fx.Module("schema_registry",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterSchemaRegistryLifecycle),
)

// SchemaRegistryParams groups the dependencies needed to create a Registry.
type SchemaRegistryParams struct {
	fx.In

	Config    Config
	AWSConfig aws.Config
	Logger    *logger.Logger
	Observer  observability.Observer `optional:"true"`
}

// NewClientWithDI returns the Glue client, or Unavailable when Glue is disabled.
func NewClientWithDI(params SchemaRegistryParams) Registry {
	if !params.Config.Enabled {
		params.Logger.Warn("Glue client not available, schema lookups will fail", nil, nil)
		return Unavailable{}
	}
	return NewGlueClientFromConfig(params.AWSConfig, params.Config).WithObserver(params.Observer)
}

// SchemaRegistryLifecycleParams groups the dependencies for lifecycle logging.
type SchemaRegistryLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    Config
	Logger    *logger.Logger
}

// RegisterSchemaRegistryLifecycle logs registry settings on start and stop.
func RegisterSchemaRegistryLifecycle(params SchemaRegistryLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			params.Logger.Info("Schema Registry client initialized", nil, map[string]interface{}{
				"enabled":           params.Config.Enabled,
				"registry_name":     params.Config.RegistryName,
				"auto_registration": params.Config.AutoRegistration,
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Schema Registry client shutdown", nil, nil)
			return nil
		},
	})
}
