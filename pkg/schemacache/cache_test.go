package schemacache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/decoder"
)

type fakeSchema string

func (s fakeSchema) Definition() string { return string(s) }

func TestKeyNamespaces(t *testing.T) {
	assert.Equal(t, "taxi-trip-schema", VersionID("taxi-trip-schema").String())
	assert.Equal(t, "name:taxi-trip-schema", Name("taxi-trip-schema").String())
	assert.NotEqual(t, VersionID("x"), Name("x"))
}

func TestGetSet(t *testing.T) {
	c := New()

	_, ok := c.Get(VersionID("a"))
	assert.False(t, ok)

	c.Set(VersionID("a"), fakeSchema("A"))
	s, ok := c.Get(VersionID("a"))
	require.True(t, ok)
	assert.Equal(t, "A", s.Definition())

	_, ok = c.Get(Name("a"))
	assert.False(t, ok, "name and version keys must not collide")
}

func TestSetIgnoresNil(t *testing.T) {
	c := New()
	c.Set(Name("x"), nil)
	var typedNil decoder.Schema
	c.Set(Name("y"), typedNil)
	assert.Equal(t, 0, c.Len())
}

func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := Name(fmt.Sprintf("s-%d", i%5))
			c.Set(key, fakeSchema("def"))
			_, _ = c.Get(key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, c.Len())
}
