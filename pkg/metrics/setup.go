// Package metrics exposes processor metrics to Prometheus. *Metrics is an
// observability.Observer: components report operations and the observer turns
// them into counters and histograms.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var latencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Metrics owns an isolated registry; every metric carries a service label.
type Metrics struct {
	Server   *http.Server
	Registry *prometheus.Registry

	decodes          *prometheus.CounterVec
	decodeDuration   *prometheus.HistogramVec
	resolutions      *prometheus.CounterVec
	registryRequests *prometheus.CounterVec
	registryDuration *prometheus.HistogramVec
	publishes        *prometheus.CounterVec
	publishDuration  *prometheus.HistogramVec
	storedEvents     *prometheus.CounterVec
	storeDuration    *prometheus.HistogramVec
	batchRecords     *prometheus.CounterVec
	lastBatch        *prometheus.GaugeVec
}

func NewMetrics(cfg Config) *Metrics {
	if cfg.Address == "" {
		cfg.Address = DefaultMetricsAddress
	}

	registry := prometheus.NewRegistry()
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	ns := cfg.Namespace
	m := &Metrics{
		Registry: registry,

		decodes:          createCounterVec(ns, "decode_total", "Records decoded, by topic and terminal strategy", []string{"topic", "strategy"}),
		decodeDuration:   createHistogramVec(ns, "decode_duration_seconds", "Time to decode one record", []string{"strategy"}, latencyBuckets),
		resolutions:      createCounterVec(ns, "schema_resolutions_total", "Schema resolutions, by lookup kind and outcome", []string{"operation", "outcome", "cache"}),
		registryRequests: createCounterVec(ns, "schema_registry_requests_total", "Remote schema registry calls", []string{"operation", "status"}),
		registryDuration: createHistogramVec(ns, "schema_registry_request_duration_seconds", "Latency of remote schema registry calls", []string{"operation"}, latencyBuckets),
		publishes:        createCounterVec(ns, "publish_total", "Envelopes published, by publisher and status", []string{"publisher", "status"}),
		publishDuration:  createHistogramVec(ns, "publish_duration_seconds", "Latency of one publish call", []string{"publisher"}, latencyBuckets),
		storedEvents:     createCounterVec(ns, "stored_events_total", "Envelopes persisted", []string{"status"}),
		storeDuration:    createHistogramVec(ns, "store_batch_duration_seconds", "Latency of one batch save", nil, latencyBuckets),
		batchRecords:     createCounterVec(ns, "batch_records_total", "Records per batch outcome", []string{"outcome"}),
		lastBatch:        createGaugeVec(ns, "last_batch_size", "Records in the most recent batch, by source", []string{"component"}),
	}

	wrappedRegistry.MustRegister(
		m.decodes,
		m.decodeDuration,
		m.resolutions,
		m.registryRequests,
		m.registryDuration,
		m.publishes,
		m.publishDuration,
		m.storedEvents,
		m.storeDuration,
		m.batchRecords,
		m.lastBatch,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: mux,
	}
	return m
}
