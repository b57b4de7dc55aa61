package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/jsoncodec"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/message"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/tracer"
)

// MessageWriter is implemented by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka republishes envelopes as JSON. The message key is the envelope's
// event id and the channel travels as a header, along with the trace context.
type Kafka struct {
	writer   MessageWriter
	observer observability.Observer
}

func NewKafka(writer MessageWriter) *Kafka {
	return &Kafka{writer: writer}
}

func (k *Kafka) WithObserver(observer observability.Observer) *Kafka {
	k.observer = observer
	return k
}

func (k *Kafka) Publish(ctx context.Context, channel string, env message.Envelope) (err error) {
	start := time.Now()
	var size int
	defer func() {
		k.observeOperation(channel, time.Since(start), size, err)
	}()

	value, err := jsoncodec.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	size = len(value)

	headers := []kafka.Header{{Key: "channel", Value: []byte(channel)}}
	for key, val := range tracer.GetCarrier(ctx) {
		headers = append(headers, kafka.Header{Key: key, Value: []byte(val)})
	}

	if err := k.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(env.EventID()),
		Value:   value,
		Headers: headers,
	}); err != nil {
		return fmt.Errorf("failed to republish to kafka: %w", err)
	}
	return nil
}

// Close closes the underlying writer.
func (k *Kafka) Close() error {
	return k.writer.Close()
}

func (k *Kafka) observeOperation(channel string, duration time.Duration, size int, err error) {
	if k.observer == nil {
		return
	}
	k.observer.ObserveOperation(observability.OperationContext{
		Component:   "publisher",
		Operation:   "publish",
		Resource:    channel,
		SubResource: "kafka",
		Duration:    duration,
		Error:       err,
		Size:        int64(size),
	})
}
