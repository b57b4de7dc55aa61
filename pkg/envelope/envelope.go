// Package envelope reads and writes the schema registry header that
// registry-aware producers prepend to record values.
//
// Wire format:
//
//	[version (1 byte, 0x03)] [compression (1 byte)] [schema version id (16 bytes, UUID)] [payload]
//
// Compression 0x00 means the payload is stored as is, 0x05 means zlib.
package envelope

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	// Version is the only recognised header version.
	Version byte = 0x03

	// Size is the fixed header length.
	Size = 18

	CompressionNone byte = 0x00
	CompressionZlib byte = 0x05
)

// Envelope is a parsed registry header.
type Envelope struct {
	Version     byte
	Compression byte
	SchemaID    [16]byte
}

// Parse detects a registry header. It reports false, with a nil payload, when
// data is no longer than Size or does not start with Version; the caller then
// treats the whole value as header-free. Parse never fails otherwise.
func Parse(data []byte) (Envelope, []byte, bool) {
	if len(data) <= Size || data[0] != Version {
		return Envelope{}, nil, false
	}

	env := Envelope{
		Version:     data[0],
		Compression: data[1],
	}
	copy(env.SchemaID[:], data[2:Size])

	return env, data[Size:], true
}

// SchemaVersionID returns the schema identifier in canonical UUID form.
func (e Envelope) SchemaVersionID() (string, error) {
	id, err := uuid.FromBytes(e.SchemaID[:])
	if err != nil {
		return "", fmt.Errorf("invalid schema version id: %w", err)
	}
	return id.String(), nil
}

// Encode builds a header for id and prepends it to payload. payload must
// already be compressed according to compression.
func Encode(compression byte, id uuid.UUID, payload []byte) []byte {
	buf := make([]byte, Size+len(payload))
	buf[0] = Version
	buf[1] = compression
	copy(buf[2:Size], id[:])
	copy(buf[Size:], payload)
	return buf
}
