package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/message"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
)

// ErrUnprocessed is returned when items are still unprocessed after the last retry.
var ErrUnprocessed = errors.New("dynamodb left items unprocessed")

// BatchWriteAPI is the subset of *dynamodb.Client used by the store.
type BatchWriteAPI interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// DynamoDB writes envelopes to a table with BatchWriteItem.
type DynamoDB struct {
	api        BatchWriteAPI
	table      string
	retention  time.Duration
	maxRetries int
	backoff    time.Duration
	now        func() time.Time

	log      Logger
	observer observability.Observer
}

// NewDynamoDB creates the store. Zero config values fall back to the defaults.
func NewDynamoDB(api BatchWriteAPI, cfg Config, log Logger) *DynamoDB {
	if cfg.RetentionDays == 0 {
		cfg.RetentionDays = DefaultRetentionDays
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	return &DynamoDB{
		api:        api,
		table:      cfg.Table,
		retention:  time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		maxRetries: cfg.MaxRetries,
		backoff:    DefaultRetryBackoff,
		now:        time.Now,
		log:        log,
	}
}

// NewDynamoDBFromConfig creates the store on a new DynamoDB client.
func NewDynamoDBFromConfig(awsCfg aws.Config, cfg Config, log Logger) *DynamoDB {
	return NewDynamoDB(dynamodb.NewFromConfig(awsCfg), cfg, log)
}

func (d *DynamoDB) WithObserver(observer observability.Observer) *DynamoDB {
	d.observer = observer
	return d
}

// SaveBatch writes envs in chunks of MaxBatchWriteItems. Envelopes sharing a
// key are collapsed to the last one, since a single request may not contain
// duplicates. A failing chunk does not stop the remaining chunks.
func (d *DynamoDB) SaveBatch(ctx context.Context, envs []message.Envelope) ([]string, error) {
	if len(envs) == 0 {
		return nil, nil
	}
	start := time.Now()

	requests, ids := d.buildRequests(envs)

	var (
		saved []string
		errs  []error
	)
	for i := 0; i < len(requests); i += MaxBatchWriteItems {
		end := min(i+MaxBatchWriteItems, len(requests))
		written, err := d.writeChunk(ctx, requests[i:end], ids[i:end])
		saved = append(saved, written...)
		if err != nil {
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		d.log.Error("Error in batch save to DynamoDB", err, map[string]interface{}{
			"table": d.table,
			"saved": len(saved),
			"total": len(requests),
		})
	} else {
		d.log.Info("Batch saved events to DynamoDB", nil, map[string]interface{}{"table": d.table, "saved": len(saved)})
	}
	d.observeOperation(len(saved), time.Since(start), err)
	return saved, err
}

func (d *DynamoDB) buildRequests(envs []message.Envelope) ([]types.WriteRequest, []string) {
	now := d.now()

	index := make(map[string]int, len(envs))
	requests := make([]types.WriteRequest, 0, len(envs))
	ids := make([]string, 0, len(envs))

	for _, env := range envs {
		it, err := newItem(env, now, d.retention)
		if err != nil {
			d.log.Warn("Skipping event that cannot be stored", err, map[string]interface{}{"event_id": env.EventID()})
			continue
		}
		av, err := attributevalue.MarshalMap(it)
		if err != nil {
			d.log.Warn("Skipping event that cannot be stored", err, map[string]interface{}{"event_id": env.EventID()})
			continue
		}

		req := types.WriteRequest{PutRequest: &types.PutRequest{Item: av}}
		key := it.PK + "|" + it.SK
		if i, ok := index[key]; ok {
			requests[i], ids[i] = req, it.ID
			continue
		}
		index[key] = len(requests)
		requests = append(requests, req)
		ids = append(ids, it.ID)
	}
	return requests, ids
}

func (d *DynamoDB) writeChunk(ctx context.Context, requests []types.WriteRequest, ids []string) ([]string, error) {
	pending := requests
	for attempt := 0; ; attempt++ {
		out, err := d.api.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{d.table: pending},
		})
		if err != nil {
			return savedIDs(ids, requests, pending), fmt.Errorf("batch write failed: %w", err)
		}

		pending = out.UnprocessedItems[d.table]
		if len(pending) == 0 {
			return ids, nil
		}
		if attempt >= d.maxRetries {
			return savedIDs(ids, requests, pending), fmt.Errorf("%w: %d of %d", ErrUnprocessed, len(pending), len(requests))
		}

		select {
		case <-ctx.Done():
			return savedIDs(ids, requests, pending), ctx.Err()
		case <-time.After(d.backoff << attempt):
		}
	}
}

// savedIDs returns the ids of requests that are no longer pending.
func savedIDs(ids []string, requests, pending []types.WriteRequest) []string {
	if len(pending) == len(requests) {
		return nil
	}
	unsaved := make(map[string]struct{}, len(pending))
	for _, req := range pending {
		if id := itemID(req); id != "" {
			unsaved[id] = struct{}{}
		}
	}
	out := make([]string, 0, len(ids)-len(unsaved))
	for _, id := range ids {
		if _, ok := unsaved[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func itemID(req types.WriteRequest) string {
	if req.PutRequest == nil {
		return ""
	}
	if s, ok := req.PutRequest.Item["id"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (d *DynamoDB) observeOperation(saved int, duration time.Duration, err error) {
	if d.observer == nil {
		return
	}
	d.observer.ObserveOperation(observability.OperationContext{
		Component: "store",
		Operation: "save_batch",
		Resource:  d.table,
		Duration:  duration,
		Error:     err,
		Size:      int64(saved),
	})
}
