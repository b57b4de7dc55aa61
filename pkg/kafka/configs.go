package kafka

import (
	"time"
)

const (
	DefaultMinBytes     = 1
	DefaultMaxBytes     = 10e6
	DefaultMaxWait      = 500 * time.Millisecond
	DefaultRequiredAcks = -1
	DefaultMaxAttempts  = 3
	DefaultWriteTimeout = 10 * time.Second
	DefaultBatchSize    = 100
	DefaultBatchWait    = time.Second
)

// Config holds the connection settings shared by the consumer and the
// republishing writer.
type Config struct {
	// Brokers is the list of bootstrap brokers, "host:port".
	Brokers []string `yaml:"brokers" envconfig:"KAFKA_BROKERS"`

	// Topics are consumed as one consumer group. More than one topic requires GroupID.
	Topics []string `yaml:"topics" envconfig:"KAFKA_TOPICS" default:"taxi-trips"`

	GroupID string `yaml:"group_id" envconfig:"KAFKA_GROUP_ID" default:"taxi-stream-processor"`

	// StartOffset applies when the group has no committed offset: "first" or "last".
	StartOffset string `yaml:"start_offset" envconfig:"KAFKA_START_OFFSET" default:"first"`

	MinBytes int           `yaml:"min_bytes" envconfig:"KAFKA_MIN_BYTES"`
	MaxBytes int           `yaml:"max_bytes" envconfig:"KAFKA_MAX_BYTES"`
	MaxWait  time.Duration `yaml:"max_wait" envconfig:"KAFKA_MAX_WAIT"`

	// BatchSize and BatchWait bound how many fetched records the consumer hands
	// to the processor at once.
	BatchSize int           `yaml:"batch_size" envconfig:"KAFKA_BATCH_SIZE"`
	BatchWait time.Duration `yaml:"batch_wait" envconfig:"KAFKA_BATCH_WAIT"`

	RequiredAcks     int           `yaml:"required_acks" envconfig:"KAFKA_REQUIRED_ACKS"`
	MaxAttempts      int           `yaml:"max_attempts" envconfig:"KAFKA_MAX_ATTEMPTS"`
	WriteTimeout     time.Duration `yaml:"write_timeout" envconfig:"KAFKA_WRITE_TIMEOUT"`
	CompressionCodec string        `yaml:"compression_codec" envconfig:"KAFKA_COMPRESSION_CODEC"`

	// TLS and SASL carry their own variable names and are loaded separately.
	TLS  TLSConfig  `yaml:"tls" ignored:"true"`
	SASL SASLConfig `yaml:"sasl" ignored:"true"`
}

// TLSConfig configures TLS to the brokers. MSK exposes TLS on 9094/9096.
type TLSConfig struct {
	Enabled            bool   `yaml:"enabled" envconfig:"KAFKA_TLS_ENABLED"`
	CACertPath         string `yaml:"ca_cert_path" envconfig:"KAFKA_TLS_CA_CERT"`
	ClientCertPath     string `yaml:"client_cert_path" envconfig:"KAFKA_TLS_CLIENT_CERT"`
	ClientKeyPath      string `yaml:"client_key_path" envconfig:"KAFKA_TLS_CLIENT_KEY"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify" envconfig:"KAFKA_TLS_INSECURE_SKIP_VERIFY"`
}

// SASLConfig configures SASL authentication: PLAIN, SCRAM-SHA-256 or SCRAM-SHA-512.
type SASLConfig struct {
	Enabled   bool   `yaml:"enabled" envconfig:"KAFKA_SASL_ENABLED"`
	Mechanism string `yaml:"mechanism" envconfig:"KAFKA_SASL_MECHANISM" default:"SCRAM-SHA-512"`
	Username  string `yaml:"username" envconfig:"KAFKA_SASL_USERNAME"`
	Password  string `yaml:"password" envconfig:"KAFKA_SASL_PASSWORD"`
}

func (c Config) withDefaults() Config {
	if c.MinBytes == 0 {
		c.MinBytes = DefaultMinBytes
	}
	if c.MaxBytes == 0 {
		c.MaxBytes = DefaultMaxBytes
	}
	if c.MaxWait == 0 {
		c.MaxWait = DefaultMaxWait
	}
	if c.RequiredAcks == 0 {
		c.RequiredAcks = DefaultRequiredAcks
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.BatchWait == 0 {
		c.BatchWait = DefaultBatchWait
	}
	return c
}
