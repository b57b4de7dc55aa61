// Package tracer configures OpenTelemetry tracing for the stream processor.
//
// NewClient installs a global TracerProvider, optionally exporting spans over
// OTLP/HTTP, and components obtain named tracers from it:
//
//	t := tracer.NewClient(tracer.Config{ServiceName: "taxi-stream-processor"}, log)
//	p := pipeline.New(res, dec, log).WithTracer(t.Tracer("pipeline"))
//
// GetCarrier and SetCarrierOnContext move the W3C trace context across process
// boundaries. The processor continues the trace found in record headers and
// the publishers stamp it on outgoing requests.
package tracer
