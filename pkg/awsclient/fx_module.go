package awsclient

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"go.uber.org/fx"
)

// FXModule provides the shared aws.Config.
var FXModule = fx.Module("awsclient",
	fx.Provide(NewWithDI),
)

// NewWithDI loads the AWS configuration for the fx container.
func NewWithDI(cfg Config) (aws.Config, error) {
	return Load(context.Background(), cfg)
}
