package metrics

const DefaultMetricsAddress = ":9090"

// Config controls the Prometheus registry and its HTTP endpoint.
type Config struct {
	// Address is where /metrics is served. Empty means DefaultMetricsAddress.
	Address string `yaml:"address" envconfig:"METRICS_ADDRESS" default:":9090"`

	// EnableDefaultCollectors adds the Go runtime, process and build info collectors.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS" default:"true"`

	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace" envconfig:"METRICS_NAMESPACE" default:"taxi_stream"`

	// ServiceName is attached to every metric as the service label.
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME" default:"taxi-stream-processor"`
}
