// Package kafka builds kafka-go readers and writers from a Config, with TLS
// and SASL applied the same way for both.
package kafka

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

var (
	ErrNoBrokers = errors.New("kafka: no brokers configured")
	ErrNoTopics  = errors.New("kafka: no topics configured")
	ErrNoGroup   = errors.New("kafka: consuming several topics requires a group id")
)

// Logger is the subset of the logger package used here.
type Logger interface {
	Error(msg string, err error, fields ...map[string]interface{})
}

// NewReader creates a consumer-group reader for cfg.Topics. Offsets are
// committed explicitly by the caller.
func NewReader(cfg Config, log Logger) (*kafka.Reader, error) {
	cfg = cfg.withDefaults()
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if len(cfg.Topics) == 0 {
		return nil, ErrNoTopics
	}
	if len(cfg.Topics) > 1 && cfg.GroupID == "" {
		return nil, ErrNoGroup
	}

	dialer, err := newDialer(cfg)
	if err != nil {
		return nil, err
	}

	readerConfig := kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		MinBytes:       cfg.MinBytes,
		MaxBytes:       cfg.MaxBytes,
		MaxWait:        cfg.MaxWait,
		StartOffset:    startOffset(cfg.StartOffset),
		CommitInterval: 0,
		Dialer:         dialer,
		ErrorLogger:    errorLogger(log),
	}
	if len(cfg.Topics) == 1 {
		readerConfig.Topic = cfg.Topics[0]
	} else {
		readerConfig.GroupTopics = cfg.Topics
	}

	return kafka.NewReader(readerConfig), nil
}

// NewWriter creates a synchronous writer for topic.
func NewWriter(cfg Config, topic string, log Logger) (*kafka.Writer, error) {
	cfg = cfg.withDefaults()
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}

	dialer, err := newDialer(cfg)
	if err != nil {
		return nil, err
	}

	writerConfig := kafka.WriterConfig{
		Brokers:      cfg.Brokers,
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		MaxAttempts:  cfg.MaxAttempts,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: cfg.RequiredAcks,
		Dialer:       dialer,
		ErrorLogger:  errorLogger(log),
	}
	if codec := compressionCodec(cfg.CompressionCodec); codec != nil {
		writerConfig.CompressionCodec = codec
	}

	return kafka.NewWriter(writerConfig), nil
}

func newDialer(cfg Config) (*kafka.Dialer, error) {
	dialer := &kafka.Dialer{
		Timeout:   cfg.WriteTimeout,
		DualStack: true,
	}
	if cfg.TLS.Enabled {
		tlsConfig, err := createTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
		dialer.TLS = tlsConfig
	}
	if cfg.SASL.Enabled {
		mechanism, err := createSASLMechanism(cfg.SASL)
		if err != nil {
			return nil, fmt.Errorf("failed to create SASL mechanism: %w", err)
		}
		dialer.SASLMechanism = mechanism
	}
	return dialer, nil
}

func startOffset(s string) int64 {
	if s == "last" {
		return kafka.LastOffset
	}
	return kafka.FirstOffset
}

func compressionCodec(name string) kafka.CompressionCodec {
	switch name {
	case "gzip":
		return &compress.GzipCodec
	case "snappy":
		return &compress.SnappyCodec
	case "lz4":
		return &compress.Lz4Codec
	case "zstd":
		return &compress.ZstdCodec
	default:
		return nil
	}
}

func errorLogger(log Logger) kafka.Logger {
	if log == nil {
		return nil
	}
	return kafka.LoggerFunc(func(msg string, args ...interface{}) {
		log.Error("Kafka internal error", nil, map[string]interface{}{
			"error": fmt.Sprintf(msg, args...),
		})
	})
}

func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		MinVersion:         tls.VersionTLS12,
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = caCertPool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

func createSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case "PLAIN":
		return plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", cfg.Mechanism)
	}
}
