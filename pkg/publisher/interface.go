package publisher

import (
	"context"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/message"
)

// Publisher delivers an envelope to real-time subscribers of channel.
//
// This interface is implemented by *AppSync, *Kafka and Noop.
type Publisher interface {
	Publish(ctx context.Context, channel string, env message.Envelope) error
}

// Logger is the subset of the logger package used here.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}
