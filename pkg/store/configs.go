package store

import "time"

const (
	// MaxBatchWriteItems is the DynamoDB BatchWriteItem request limit.
	MaxBatchWriteItems = 25

	DefaultRetentionDays = 30
	DefaultMaxRetries    = 5
	DefaultRetryBackoff  = 50 * time.Millisecond
)

// Config controls event persistence. An empty Table disables it.
type Config struct {
	Table string `yaml:"table" envconfig:"EVENTS_TABLE"`

	// RetentionDays sets the ttl attribute of each item.
	RetentionDays int `yaml:"retention_days" envconfig:"HISTORICAL_RETENTION_DAYS" default:"30"`

	// MaxRetries bounds resubmission of unprocessed items per chunk.
	MaxRetries int `yaml:"max_retries" envconfig:"DYNAMODB_MAX_RETRIES" default:"5"`
}
