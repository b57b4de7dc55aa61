// Package schemacache keeps parsed schemas for the lifetime of the process.
//
// Entries are created on the first successful resolution and never expire or
// get evicted; a new process starts cold. Failed lookups are never stored.
package schemacache

import (
	"sync"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/decoder"
)

// KeyKind separates the two identifier namespaces.
type KeyKind int

const (
	// KindVersionID keys are schema version UUIDs taken from an envelope.
	KindVersionID KeyKind = iota

	// KindName keys are schema names from the topic convention.
	KindName
)

// Key identifies a cached schema.
type Key struct {
	Kind  KeyKind
	Value string
}

// VersionID returns the key for a schema version UUID.
func VersionID(id string) Key {
	return Key{Kind: KindVersionID, Value: id}
}

// Name returns the key for a schema name.
func Name(name string) Key {
	return Key{Kind: KindName, Value: name}
}

// String renders the key; name keys carry a "name:" prefix.
func (k Key) String() string {
	if k.Kind == KindName {
		return "name:" + k.Value
	}
	return k.Value
}

// Cache stores parsed schemas. Implementations must be safe for concurrent use.
type Cache interface {
	Get(key Key) (decoder.Schema, bool)

	// Set stores schema under key; nil schemas are ignored. Concurrent sets
	// for the same key are last-writer-wins.
	Set(key Key, schema decoder.Schema)

	Len() int
}

// Memory is the in-memory Cache.
type Memory struct {
	mu      sync.RWMutex
	schemas map[Key]decoder.Schema
}

// New returns an empty cache.
func New() *Memory {
	return &Memory{schemas: make(map[Key]decoder.Schema)}
}

func (m *Memory) Get(key Key) (decoder.Schema, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.schemas[key]
	return s, ok
}

func (m *Memory) Set(key Key, schema decoder.Schema) {
	if schema == nil {
		return
	}
	m.mu.Lock()
	m.schemas[key] = schema
	m.mu.Unlock()
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.schemas)
}
