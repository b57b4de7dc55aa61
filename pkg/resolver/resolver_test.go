package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/decoder"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/logger"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/schema_registry"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/schemacache"
)

const (
	versionID  = "6f3c1a52-9d2e-4b8a-a1f0-2c7d9e4b5a61"
	schemaName = "taxi-trip-schema"
	definition = `{"type":"record","name":"Ping","fields":[{"name":"n","type":"long"}]}`
)

func newResolver(t *testing.T) (*Resolver, *schema_registry.MockRegistry, *schemacache.Memory) {
	ctrl := gomock.NewController(t)
	registry := schema_registry.NewMockRegistry(ctrl)
	cache := schemacache.New()
	return New(cache, registry, decoder.NewAvro(), "taxi-registry", logger.NewNop()), registry, cache
}

func TestResolveBySchemaIDCachesAfterOneCall(t *testing.T) {
	r, registry, cache := newResolver(t)
	registry.EXPECT().GetSchemaByVersionID(gomock.Any(), versionID).Return(definition, nil).Times(1)

	first, ok := r.ResolveBySchemaID(context.Background(), versionID)
	require.True(t, ok)
	second, ok := r.ResolveBySchemaID(context.Background(), versionID)
	require.True(t, ok)

	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())
}

func TestResolveByNameUsesRegistryName(t *testing.T) {
	r, registry, _ := newResolver(t)
	registry.EXPECT().GetSchemaByName(gomock.Any(), "taxi-registry", schemaName).Return(definition, nil).Times(1)

	for i := 0; i < 3; i++ {
		_, ok := r.ResolveByName(context.Background(), schemaName)
		require.True(t, ok)
	}
}

func TestNameAndVersionKeysDoNotCollide(t *testing.T) {
	r, registry, cache := newResolver(t)
	registry.EXPECT().GetSchemaByName(gomock.Any(), gomock.Any(), "same").Return(definition, nil).Times(1)
	registry.EXPECT().GetSchemaByVersionID(gomock.Any(), "same").Return(definition, nil).Times(1)

	_, ok := r.ResolveByName(context.Background(), "same")
	require.True(t, ok)
	_, ok = r.ResolveBySchemaID(context.Background(), "same")
	require.True(t, ok)

	assert.Equal(t, 2, cache.Len())
}

func TestRemoteFailureIsNotCached(t *testing.T) {
	r, registry, cache := newResolver(t)
	registry.EXPECT().GetSchemaByVersionID(gomock.Any(), versionID).Return("", errors.New("throttled")).Times(2)

	for i := 0; i < 2; i++ {
		schema, ok := r.ResolveBySchemaID(context.Background(), versionID)
		assert.False(t, ok)
		assert.Nil(t, schema)
	}
	assert.Equal(t, 0, cache.Len())
}

func TestFailureThenSuccess(t *testing.T) {
	r, registry, _ := newResolver(t)
	gomock.InOrder(
		registry.EXPECT().GetSchemaByVersionID(gomock.Any(), versionID).Return("", errors.New("timeout")),
		registry.EXPECT().GetSchemaByVersionID(gomock.Any(), versionID).Return(definition, nil),
	)

	_, ok := r.ResolveBySchemaID(context.Background(), versionID)
	assert.False(t, ok)
	_, ok = r.ResolveBySchemaID(context.Background(), versionID)
	assert.True(t, ok)
}

func TestResolutionKinds(t *testing.T) {
	r, registry, cache := newResolver(t)
	registry.EXPECT().GetSchemaByVersionID(gomock.Any(), "missing").
		Return("", fmt.Errorf("%w: gone", schema_registry.ErrNotFound))
	registry.EXPECT().GetSchemaByVersionID(gomock.Any(), "broken").Return(`{"type":`, nil)

	res := r.Resolve(context.Background(), schemacache.VersionID("missing"))
	assert.Equal(t, NotFound, res.Kind)
	assert.False(t, res.OK())

	res = r.Resolve(context.Background(), schemacache.VersionID("broken"))
	assert.Equal(t, ParseFailed, res.Kind)
	assert.Error(t, res.Err)
	assert.Equal(t, 0, cache.Len())
}

func TestObserverSeesCacheHits(t *testing.T) {
	r, registry, _ := newResolver(t)
	registry.EXPECT().GetSchemaByVersionID(gomock.Any(), versionID).Return(definition, nil)

	var mu sync.Mutex
	var ops []observability.OperationContext
	r.WithObserver(observability.ObserverFunc(func(ctx observability.OperationContext) {
		mu.Lock()
		ops = append(ops, ctx)
		mu.Unlock()
	}))

	r.ResolveBySchemaID(context.Background(), versionID)
	r.ResolveBySchemaID(context.Background(), versionID)

	require.Len(t, ops, 2)
	assert.Equal(t, false, ops[0].Metadata["cache_hit"])
	assert.Equal(t, true, ops[1].Metadata["cache_hit"])
	assert.Equal(t, "resolve_by_version_id", ops[1].Operation)
}

func TestConcurrentResolutionIsSafe(t *testing.T) {
	r, registry, cache := newResolver(t)
	// Racing misses may each call the registry; the cached value is the same either way.
	registry.EXPECT().GetSchemaByName(gomock.Any(), gomock.Any(), schemaName).Return(definition, nil).MinTimes(1).MaxTimes(16)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := r.ResolveByName(context.Background(), schemaName)
			assert.True(t, ok)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, cache.Len())
}
