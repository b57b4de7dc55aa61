package store

import (
	"context"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/message"
)

// Store persists processed envelopes for historical queries.
//
// This interface is implemented by *DynamoDB and Noop.
type Store interface {
	// SaveBatch stores envs and returns the event ids that were written. A
	// partial failure returns the ids that made it alongside the error.
	SaveBatch(ctx context.Context, envs []message.Envelope) ([]string, error)
}

// Logger is the subset of the logger package used here.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Noop is used when no table is configured. It stores nothing.
type Noop struct{}

func (Noop) SaveBatch(context.Context, []message.Envelope) ([]string, error) {
	return nil, nil
}
