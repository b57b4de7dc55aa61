package metrics

import (
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
)

var _ observability.Observer = (*Metrics)(nil)

// ObserveOperation records ctx against the metrics of its component. Unknown
// components are ignored.
func (m *Metrics) ObserveOperation(ctx observability.OperationContext) {
	seconds := ctx.Duration.Seconds()

	switch ctx.Component {
	case "pipeline":
		m.decodes.WithLabelValues(ctx.Resource, ctx.SubResource).Inc()
		m.decodeDuration.WithLabelValues(ctx.SubResource).Observe(seconds)

	case "resolver":
		cache := "miss"
		if hit, _ := ctx.Metadata["cache_hit"].(bool); hit {
			cache = "hit"
		}
		m.resolutions.WithLabelValues(ctx.Operation, ctx.SubResource, cache).Inc()

	case "schema_registry":
		m.registryRequests.WithLabelValues(ctx.Operation, status(ctx.Error)).Inc()
		m.registryDuration.WithLabelValues(ctx.Operation).Observe(seconds)

	case "publisher":
		m.publishes.WithLabelValues(ctx.SubResource, status(ctx.Error)).Inc()
		m.publishDuration.WithLabelValues(ctx.SubResource).Observe(seconds)

	case "store":
		m.storedEvents.WithLabelValues(status(ctx.Error)).Add(float64(ctx.Size))
		m.storeDuration.WithLabelValues().Observe(seconds)

	case "processor":
		for _, outcome := range []string{"processed", "saved", "errors", "skipped", "fallbacks"} {
			if n, ok := ctx.Metadata[outcome].(int); ok && n > 0 {
				m.batchRecords.WithLabelValues(outcome).Add(float64(n))
			}
		}
		m.lastBatch.WithLabelValues(ctx.Component).Set(float64(ctx.Size))

	case "source":
		m.lastBatch.WithLabelValues(ctx.Component).Set(float64(ctx.Size))
	}
}
