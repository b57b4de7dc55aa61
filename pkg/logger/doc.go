// Package logger provides the structured logger used across the stream processor.
//
// It wraps a zap.Logger with a small, uniform API: every method takes a message,
// an optional error and any number of field maps.
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "taxi-stream-processor",
//	})
//
//	log.Info("Decoded record", nil, map[string]interface{}{
//		"topic":  "taxi-trips",
//		"offset": 42,
//	})
//
// The *WithContext variants add trace_id and span_id from the OpenTelemetry span
// in ctx when Config.EnableTracing is set.
//
// Components never import zap directly; they declare the subset of methods they
// need as a local Logger interface, which *Logger satisfies.
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config { return cfg.Logger }),
//	)
package logger
