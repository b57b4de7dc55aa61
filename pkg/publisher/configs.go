package publisher

import "time"

const DefaultTimeout = 10 * time.Second

// Config selects and configures the publisher. AppSync wins when both an
// endpoint and a Kafka topic are set.
type Config struct {
	// AppSyncEndpoint is the HTTP endpoint of the AppSync Events API, without
	// the trailing /event.
	AppSyncEndpoint string `yaml:"appsync_endpoint" envconfig:"APPSYNC_HTTP_ENDPOINT"`

	AppSyncAPIKey string `yaml:"appsync_api_key" envconfig:"APPSYNC_API_KEY"`

	// KafkaTopic republishes envelopes as JSON to this topic.
	KafkaTopic string `yaml:"kafka_topic" envconfig:"PUBLISH_KAFKA_TOPIC"`

	// Timeout bounds a single publish call.
	Timeout time.Duration `yaml:"timeout" envconfig:"PUBLISH_TIMEOUT" default:"10s"`
}
