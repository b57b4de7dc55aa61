// Package pipeline turns a raw record value into a structured record.
//
// Strategies are tried in order of certainty and the first success wins:
//
//  1. registry envelope: decompress, resolve the schema by version id, decode
//  2. JSON object text
//  3. topic convention: resolve the schema by the topic's mapped name, decode
//  4. raw fallback: {"raw_bytes": base64(value)}
//
// A detected envelope always ends the chain, even when it cannot be decoded.
// Decode never returns nil and never panics.
package pipeline

import (
	"context"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/compression"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/decoder"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/envelope"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/jsoncodec"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/message"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/tracer"
)

// Logger is the subset of the logger package used here.
type Logger interface {
	Warn(msg string, err error, fields ...map[string]interface{})
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// SchemaResolver is implemented by *resolver.Resolver.
type SchemaResolver interface {
	ResolveBySchemaID(ctx context.Context, id string) (decoder.Schema, bool)
	ResolveByName(ctx context.Context, name string) (decoder.Schema, bool)
}

// Pipeline runs the decode strategy chain. It is safe for concurrent use.
type Pipeline struct {
	resolver SchemaResolver
	decoder  decoder.Decoder
	topics   TopicSchemaMap

	log      Logger
	tracer   trace.Tracer
	observer observability.Observer
}

// New builds a Pipeline using DefaultTopicSchemas.
func New(resolver SchemaResolver, dec decoder.Decoder, log Logger) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		decoder:  dec,
		topics:   DefaultTopicSchemas(),
		log:      log,
		tracer:   tracer.Noop(),
	}
}

// WithTopicSchemas replaces the topic convention table.
func (p *Pipeline) WithTopicSchemas(topics TopicSchemaMap) *Pipeline {
	p.topics = topics
	return p
}

func (p *Pipeline) WithTracer(t trace.Tracer) *Pipeline {
	if t != nil {
		p.tracer = t
	}
	return p
}

func (p *Pipeline) WithObserver(observer observability.Observer) *Pipeline {
	p.observer = observer
	return p
}

// Decode returns the structured form of raw, or a fallback carrying raw_bytes.
func (p *Pipeline) Decode(ctx context.Context, raw []byte, topic string) message.Decoded {
	record, _ := p.DecodeWithStrategy(ctx, raw, topic)
	return record
}

// DecodeWithStrategy is Decode that also reports which strategy produced the record.
func (p *Pipeline) DecodeWithStrategy(ctx context.Context, raw []byte, topic string) (record message.Decoded, strategy Strategy) {
	start := time.Now()
	ctx, span := p.tracer.Start(ctx, "pipeline.decode", trace.WithAttributes(
		attribute.String("messaging.destination.name", topic),
		attribute.Int("messaging.message.body.size", len(raw)),
	))

	defer func() {
		if r := recover(); r != nil {
			record, strategy = message.Raw(raw), StrategyRaw
			p.log.Warn("Recovered from decode panic", nil, map[string]interface{}{"topic": topic, "panic": r})
		}
		span.SetAttributes(attribute.String("decode.strategy", strategy.String()))
		span.End()
		p.observe(topic, strategy, len(raw), time.Since(start), record)
	}()

	if env, payload, ok := envelope.Parse(raw); ok {
		return p.decodeEnvelope(ctx, topic, raw, env, payload)
	}

	if decoded, ok := decodeJSON(raw); ok {
		return decoded, StrategyJSON
	}
	p.log.DebugWithContext(ctx, "Value is not a JSON object", nil, map[string]interface{}{"topic": topic})

	if decoded, ok := p.decodeByTopic(ctx, topic, raw); ok {
		return decoded, StrategyTopicSchema
	}

	return message.Raw(raw), StrategyRaw
}

func (p *Pipeline) decodeEnvelope(ctx context.Context, topic string, raw []byte, env envelope.Envelope, payload []byte) (message.Decoded, Strategy) {
	span := trace.SpanFromContext(ctx)

	id, err := env.SchemaVersionID()
	if err != nil {
		p.log.WarnWithContext(ctx, "Malformed registry envelope", err, map[string]interface{}{"topic": topic})
		tracer.RecordError(span, err)
		return message.MalformedEnvelope(raw, err), StrategyEnvelopeFallback
	}

	data, err := compression.Decompress(payload, env.Compression)
	if err != nil {
		p.log.WarnWithContext(ctx, "Failed to decompress payload", err, map[string]interface{}{"topic": topic, "schema_version_id": id})
		tracer.RecordError(span, err)
		return message.DecodeFailed(payload, err.Error()), StrategyEnvelopeFallback
	}

	schema, ok := p.resolver.ResolveBySchemaID(ctx, id)
	if !ok {
		p.log.WarnWithContext(ctx, "Schema not resolved for envelope", nil, map[string]interface{}{"topic": topic, "schema_version_id": id})
		return message.UnresolvedSchema(data, id), StrategyEnvelopeFallback
	}

	res := p.decoder.Decode(data, schema)
	if res.Kind != decoder.KindDecoded {
		p.log.WarnWithContext(ctx, "Failed to decode envelope payload", res.Err, map[string]interface{}{"topic": topic, "schema_version_id": id})
		tracer.RecordError(span, res.Err)
		return res.Record(), StrategyEnvelopeFallback
	}
	return res.Record(), StrategyEnvelope
}

func decodeJSON(raw []byte) (message.Decoded, bool) {
	if len(raw) == 0 || !utf8.Valid(raw) {
		return nil, false
	}
	obj, ok := jsoncodec.Object(raw)
	if !ok {
		return nil, false
	}
	return message.Decoded(obj), true
}

func (p *Pipeline) decodeByTopic(ctx context.Context, topic string, raw []byte) (message.Decoded, bool) {
	name, ok := p.topics.SchemaFor(topic)
	if !ok || !p.decoder.Available() {
		return nil, false
	}

	schema, ok := p.resolver.ResolveByName(ctx, name)
	if !ok {
		return nil, false
	}

	res := p.decoder.Decode(raw, schema)
	if res.Kind != decoder.KindDecoded {
		p.log.DebugWithContext(ctx, "Topic schema did not decode value", res.Err, map[string]interface{}{"topic": topic, "schema_name": name})
		return nil, false
	}
	return res.Record(), true
}

func (p *Pipeline) observe(topic string, strategy Strategy, size int, duration time.Duration, record message.Decoded) {
	if p.observer == nil {
		return
	}
	p.observer.ObserveOperation(observability.OperationContext{
		Component:   "pipeline",
		Operation:   "decode",
		Resource:    topic,
		SubResource: strategy.String(),
		Duration:    duration,
		Size:        int64(size),
		Metadata:    map[string]interface{}{"decode_error": record.HasDecodeError()},
	})
}
