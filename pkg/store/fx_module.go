package store

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"go.uber.org/fx"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/logger"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
)

// FXModule provides the Store.
var FXModule = fx.Module("store",
	fx.Provide(NewWithDI),
)

// StoreParams groups the dependencies needed to create a Store.
type StoreParams struct {
	fx.In

	Config    Config
	AWSConfig aws.Config
	Logger    *logger.Logger
	Observer  observability.Observer `optional:"true"`
}

// NewWithDI returns the DynamoDB store, or Noop when no table is configured.
func NewWithDI(params StoreParams) Store {
	if params.Config.Table == "" {
		params.Logger.Warn("EVENTS_TABLE not configured, persistence disabled", nil, nil)
		return Noop{}
	}
	return NewDynamoDBFromConfig(params.AWSConfig, params.Config, params.Logger).
		WithObserver(params.Observer)
}
