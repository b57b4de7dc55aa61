// Package processor runs a batch of records through the decode pipeline, then
// publishes every envelope and persists the batch.
package processor

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/message"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/publisher"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/store"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/tracer"
)

// Decoder is implemented by *pipeline.Pipeline.
type Decoder interface {
	Decode(ctx context.Context, raw []byte, topic string) message.Decoded
}

// Logger is the subset of the logger package used here.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Result summarises one batch.
type Result struct {
	BatchID string `json:"batch_id"`

	// Records is the number of input records.
	Records int `json:"records"`

	// Processed counts envelopes published successfully.
	Processed int `json:"processed"`

	// Saved counts envelopes persisted.
	Saved int `json:"saved"`

	// Errors counts envelopes whose publish failed.
	Errors int `json:"errors"`

	// Skipped counts records never decoded because the batch was cancelled.
	Skipped int `json:"skipped"`

	// Fallbacks counts decoded records that carry raw_bytes instead of fields.
	Fallbacks int `json:"fallbacks"`
}

type outcome struct {
	env       message.Envelope
	decoded   bool
	published bool
}

// Processor is safe for concurrent use.
type Processor struct {
	decoder   Decoder
	publisher publisher.Publisher
	store     store.Store
	cfg       Config

	log      Logger
	tracer   trace.Tracer
	observer observability.Observer
	now      func() time.Time
}

// New creates a Processor. Zero config values fall back to the defaults.
func New(dec Decoder, pub publisher.Publisher, st store.Store, cfg Config, log Logger) *Processor {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.PublishTimeout == 0 {
		cfg.PublishTimeout = DefaultPublishTimeout
	}
	if cfg.PersistTimeout == 0 {
		cfg.PersistTimeout = DefaultPersistTimeout
	}
	return &Processor{
		decoder:   dec,
		publisher: pub,
		store:     st,
		cfg:       cfg,
		log:       log,
		tracer:    tracer.Noop(),
		now:       time.Now,
	}
}

func (p *Processor) WithTracer(t trace.Tracer) *Processor {
	if t != nil {
		p.tracer = t
	}
	return p
}

func (p *Processor) WithObserver(observer observability.Observer) *Processor {
	p.observer = observer
	return p
}

// Process decodes and publishes records concurrently, then saves every
// envelope that was produced in one batch. Cancelling ctx stops new records
// from being started; envelopes already produced are still saved.
func (p *Processor) Process(ctx context.Context, records []message.Record) Result {
	start := time.Now()
	res := Result{BatchID: newBatchID(), Records: len(records)}
	fields := map[string]interface{}{"batch_id": res.BatchID, "records": len(records)}
	p.log.Info("Received batch", nil, fields)

	outcomes := make([]outcome, len(records))

	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)
	for i := range records {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcomes[i] = p.processRecord(ctx, res.BatchID, records[i])
			return nil
		})
	}
	_ = g.Wait()

	envs := make([]message.Envelope, 0, len(records))
	for _, o := range outcomes {
		if !o.decoded {
			res.Skipped++
			continue
		}
		if o.env.Data.IsFallback() {
			res.Fallbacks++
		}
		if o.published {
			res.Processed++
		} else {
			res.Errors++
		}
		envs = append(envs, o.env)
	}

	if len(envs) > 0 {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cfg.PersistTimeout)
		ids, err := p.store.SaveBatch(saveCtx, envs)
		cancel()
		if err != nil {
			p.log.Error("Error saving batch", err, map[string]interface{}{"batch_id": res.BatchID})
		}
		res.Saved = len(ids)
	}

	if res.Skipped > 0 {
		p.log.Warn("Batch cancelled before all records were decoded", ctx.Err(), map[string]interface{}{
			"batch_id": res.BatchID,
			"skipped":  res.Skipped,
		})
	}
	p.log.Info("Processing complete", nil, map[string]interface{}{
		"batch_id":  res.BatchID,
		"processed": res.Processed,
		"saved":     res.Saved,
		"errors":    res.Errors,
		"fallbacks": res.Fallbacks,
	})
	p.observeOperation(res, time.Since(start))
	return res
}

// processRecord runs one record under its own span, continuing the
// producer's trace when the record headers carry one.
func (p *Processor) processRecord(ctx context.Context, batchID string, r message.Record) outcome {
	ctx = tracer.SetCarrierOnContext(ctx, r.Headers)
	ctx, span := p.tracer.Start(ctx, "processor.record", trace.WithAttributes(tracer.Attributes(map[string]interface{}{
		"messaging.destination.name":         r.Topic,
		"messaging.destination.partition.id": r.Partition,
		"messaging.kafka.offset":             r.Offset,
		"messaging.batch.id":                 batchID,
	})...))
	defer span.End()

	data := p.decoder.Decode(ctx, r.Value, r.Topic)
	env := message.NewEnvelope(r, data, p.now())

	pubCtx, cancel := context.WithTimeout(ctx, p.cfg.PublishTimeout)
	defer cancel()

	if err := p.publisher.Publish(pubCtx, env.Channel(), env); err != nil {
		tracer.RecordError(span, err)
		if !errors.Is(err, publisher.ErrNotConfigured) {
			p.log.ErrorWithContext(ctx, "Error publishing event", err, map[string]interface{}{
				"batch_id": batchID,
				"event_id": env.EventID(),
				"channel":  env.Channel(),
			})
		}
		return outcome{env: env, decoded: true}
	}
	return outcome{env: env, decoded: true, published: true}
}

func (p *Processor) observeOperation(res Result, duration time.Duration) {
	if p.observer == nil {
		return
	}
	p.observer.ObserveOperation(observability.OperationContext{
		Component: "processor",
		Operation: "process_batch",
		Resource:  res.BatchID,
		Duration:  duration,
		Size:      int64(res.Records),
		Metadata: map[string]interface{}{
			"processed": res.Processed,
			"saved":     res.Saved,
			"errors":    res.Errors,
			"skipped":   res.Skipped,
			"fallbacks": res.Fallbacks,
		},
	})
}
