package decoder

import (
	"go.uber.org/fx"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/logger"
)

// FXModule provides the Decoder capability selected from decoder.Config.
var FXModule = fx.Module("decoder",
	fx.Provide(NewWithDI),
)

// DecoderParams groups the dependencies needed to select a decoder.
type DecoderParams struct {
	fx.In

	Config Config
	Logger *logger.Logger
}

// NewWithDI is New for the fx container.
func NewWithDI(params DecoderParams) Decoder {
	return New(params.Config, params.Logger)
}
