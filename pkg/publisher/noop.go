package publisher

import (
	"context"
	"errors"
	"sync"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/message"
)

// ErrNotConfigured is returned by Noop for every publish.
var ErrNotConfigured = errors.New("no publish channel configured")

// Noop is used when no publish channel is configured. It logs once and
// reports every publish as failed with ErrNotConfigured, so undelivered
// envelopes show up in the batch error count.
type Noop struct {
	log  Logger
	once *sync.Once
}

func NewNoop(log Logger) Noop {
	return Noop{log: log, once: &sync.Once{}}
}

func (n Noop) Publish(context.Context, string, message.Envelope) error {
	if n.once != nil && n.log != nil {
		n.once.Do(func() {
			n.log.Warn("No publish channel configured, envelopes are not published", nil, nil)
		})
	}
	return ErrNotConfigured
}
