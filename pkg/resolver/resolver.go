// Package resolver finds the decode schema for a record, either by the schema
// version id carried in its envelope or by a schema name, consulting the
// schema cache before the remote registry.
package resolver

import (
	"context"
	"errors"
	"time"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/decoder"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/schema_registry"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/schemacache"
)

// Logger is the subset of the logger package used here.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Kind tags the outcome of a resolution.
type Kind int

const (
	Resolved Kind = iota
	NotFound
	RemoteFailed
	ParseFailed
)

func (k Kind) String() string {
	switch k {
	case Resolved:
		return "resolved"
	case NotFound:
		return "not_found"
	case RemoteFailed:
		return "remote_failed"
	case ParseFailed:
		return "parse_failed"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of a lookup.
type Resolution struct {
	Kind     Kind
	Key      schemacache.Key
	Schema   decoder.Schema
	CacheHit bool
	Err      error
}

// OK reports whether a schema was resolved.
func (r Resolution) OK() bool {
	return r.Kind == Resolved && r.Schema != nil
}

// Resolver resolves schemas through the cache and the registry.
type Resolver struct {
	cache        schemacache.Cache
	registry     schema_registry.Registry
	decoder      decoder.Decoder
	registryName string

	log      Logger
	observer observability.Observer
}

// New builds a Resolver. registryName is used for name lookups.
func New(cache schemacache.Cache, registry schema_registry.Registry, dec decoder.Decoder, registryName string, log Logger) *Resolver {
	return &Resolver{
		cache:        cache,
		registry:     registry,
		decoder:      dec,
		registryName: registryName,
		log:          log,
	}
}

// WithObserver attaches an observer and returns the resolver for chaining.
func (r *Resolver) WithObserver(observer observability.Observer) *Resolver {
	r.observer = observer
	return r
}

// ResolveBySchemaID returns the schema for an envelope schema version id.
func (r *Resolver) ResolveBySchemaID(ctx context.Context, id string) (decoder.Schema, bool) {
	res := r.Resolve(ctx, schemacache.VersionID(id))
	return res.Schema, res.OK()
}

// ResolveByName returns the latest schema registered under name.
func (r *Resolver) ResolveByName(ctx context.Context, name string) (decoder.Schema, bool) {
	res := r.Resolve(ctx, schemacache.Name(name))
	return res.Schema, res.OK()
}

// Resolve looks key up in the cache and, on a miss, makes exactly one registry
// call. Failures are logged and never cached.
func (r *Resolver) Resolve(ctx context.Context, key schemacache.Key) Resolution {
	start := time.Now()

	if schema, ok := r.cache.Get(key); ok {
		res := Resolution{Kind: Resolved, Key: key, Schema: schema, CacheHit: true}
		r.observe(res, time.Since(start))
		return res
	}

	res := r.fetch(ctx, key)
	r.observe(res, time.Since(start))
	return res
}

func (r *Resolver) fetch(ctx context.Context, key schemacache.Key) Resolution {
	fields := map[string]interface{}{"schema_key": key.String()}

	var (
		definition string
		err        error
	)
	switch key.Kind {
	case schemacache.KindName:
		definition, err = r.registry.GetSchemaByName(ctx, r.registryName, key.Value)
	default:
		definition, err = r.registry.GetSchemaByVersionID(ctx, key.Value)
	}
	if err != nil {
		kind := RemoteFailed
		if schema_registry.IsNotFound(err) {
			kind = NotFound
		}
		r.log.Error("Error fetching schema", err, fields)
		return Resolution{Kind: kind, Key: key, Err: err}
	}

	schema, err := r.decoder.Parse(definition)
	if err == nil && schema == nil {
		err = errors.New("parser returned no schema")
	}
	if err != nil {
		r.log.Error("Error parsing schema", err, fields)
		return Resolution{Kind: ParseFailed, Key: key, Err: err}
	}

	r.cache.Set(key, schema)
	r.log.Info("Cached schema", nil, fields)
	return Resolution{Kind: Resolved, Key: key, Schema: schema}
}

func (r *Resolver) observe(res Resolution, duration time.Duration) {
	if r.observer == nil {
		return
	}
	operation := "resolve_by_version_id"
	if res.Key.Kind == schemacache.KindName {
		operation = "resolve_by_name"
	}
	r.observer.ObserveOperation(observability.OperationContext{
		Component:   "resolver",
		Operation:   operation,
		Resource:    res.Key.String(),
		SubResource: res.Kind.String(),
		Duration:    duration,
		Error:       res.Err,
		Metadata:    map[string]interface{}{"cache_hit": res.CacheHit},
	})
}
