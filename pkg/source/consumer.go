// Package source feeds records to the batch processor, either from MSK event
// payloads or from a Kafka consumer group.
package source

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/message"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/processor"
)

const commitTimeout = 10 * time.Second

// BatchProcessor is implemented by *processor.Processor.
type BatchProcessor interface {
	Process(ctx context.Context, records []message.Record) processor.Result
}

// Reader is the subset of *kafka.Reader used by the consumer.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger is the subset of the logger package used here.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Consumer fetches messages, hands them to the processor in batches and
// commits each batch once it has been processed. Delivery is at least once:
// a batch interrupted by shutdown is left uncommitted and redelivered.
type Consumer struct {
	reader    Reader
	processor BatchProcessor
	batchSize int
	batchWait time.Duration

	log      Logger
	observer observability.Observer
}

// NewConsumer creates a consumer. A batch is handed over when it holds
// batchSize messages or batchWait has passed since its first message.
func NewConsumer(reader Reader, proc BatchProcessor, batchSize int, batchWait time.Duration, log Logger) *Consumer {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Consumer{
		reader:    reader,
		processor: proc,
		batchSize: batchSize,
		batchWait: batchWait,
		log:       log,
	}
}

func (c *Consumer) WithObserver(observer observability.Observer) *Consumer {
	c.observer = observer
	return c
}

// Run consumes until ctx is cancelled or the reader fails. Cancellation is
// not an error. Messages fetched after cancellation are not processed.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msgs, err := c.nextBatch(ctx)
		if ctx.Err() != nil {
			if len(msgs) > 0 {
				c.log.Info("Leaving partial batch uncommitted on shutdown", nil, map[string]interface{}{"messages": len(msgs)})
			}
			return nil
		}
		if len(msgs) > 0 {
			c.handle(ctx, msgs)
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// nextBatch blocks for the first message, then collects more until the batch
// is full or the wait elapses.
func (c *Consumer) nextBatch(ctx context.Context) ([]kafka.Message, error) {
	first, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return nil, err
	}
	msgs := []kafka.Message{first}

	waitCtx, cancel := context.WithTimeout(ctx, c.batchWait)
	defer cancel()

	for len(msgs) < c.batchSize {
		m, err := c.reader.FetchMessage(waitCtx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				break
			}
			return msgs, err
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func (c *Consumer) handle(ctx context.Context, msgs []kafka.Message) {
	start := time.Now()
	records := make([]message.Record, len(msgs))
	for i, m := range msgs {
		records[i] = FromKafka(m)
	}

	res := c.processor.Process(ctx, records)

	var err error
	if res.Skipped > 0 {
		c.log.Warn("Batch interrupted, offsets not committed", nil, map[string]interface{}{
			"batch_id": res.BatchID,
			"skipped":  res.Skipped,
		})
	} else {
		commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), commitTimeout)
		defer cancel()
		if err = c.reader.CommitMessages(commitCtx, msgs...); err != nil {
			c.log.Error("Failed to commit offsets", err, map[string]interface{}{"batch_id": res.BatchID})
		}
	}

	if c.observer != nil {
		c.observer.ObserveOperation(observability.OperationContext{
			Component: "source",
			Operation: "consume_batch",
			Resource:  res.BatchID,
			Duration:  time.Since(start),
			Error:     err,
			Size:      int64(len(msgs)),
		})
	}
}

// FromKafka converts a kafka-go message into a Record.
func FromKafka(m kafka.Message) message.Record {
	r := message.Record{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
		Key:       m.Key,
		Value:     m.Value,
	}
	if !m.Time.IsZero() {
		ts := m.Time.UnixMilli()
		r.Timestamp = &ts
	}
	if len(m.Headers) > 0 {
		r.Headers = make(map[string]string, len(m.Headers))
		for _, h := range m.Headers {
			r.Headers[h.Key] = string(h.Value)
		}
	}
	return r
}
