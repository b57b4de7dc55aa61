// Package observability defines the hook components use to report operations
// without depending on a metrics or tracing implementation.
package observability

import "time"

// OperationContext describes a single completed operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "pipeline" or "resolver".
	Component string

	// Operation is what was done, e.g. "decode" or "resolve_by_name".
	Operation string

	// Resource is the primary subject of the operation (topic, schema key, table).
	Resource string

	// SubResource carries secondary context such as the decode strategy.
	SubResource string

	Duration time.Duration
	Error    error

	// Size is the number of bytes or items involved, when meaningful.
	Size int64

	Metadata map[string]interface{}
}

// Observer receives OperationContext events. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
