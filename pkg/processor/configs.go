package processor

import "time"

const (
	DefaultWorkers        = 8
	DefaultPublishTimeout = 10 * time.Second
	DefaultPersistTimeout = 30 * time.Second
)

// Config tunes batch processing.
type Config struct {
	// Workers bounds how many records are decoded and published at once.
	Workers int `yaml:"workers" envconfig:"PROCESSOR_WORKERS" default:"8"`

	// PublishTimeout bounds each publish call.
	PublishTimeout time.Duration `yaml:"publish_timeout" envconfig:"PUBLISH_TIMEOUT" default:"10s"`

	// PersistTimeout bounds the batch save. It runs even when the batch
	// context was cancelled, so decoded records are not lost.
	PersistTimeout time.Duration `yaml:"persist_timeout" envconfig:"PERSIST_TIMEOUT" default:"30s"`
}
