// Package message holds the per-record types that flow through the processor:
// the raw Kafka record coming in, the decoded record, and the envelope handed
// to the publish and persistence collaborators.
package message

import (
	"encoding/base64"
	"fmt"
	"time"
	"unicode/utf8"
)

// Fallback record keys.
const (
	KeyRawBytes        = "raw_bytes"
	KeyDecodeError     = "decode_error"
	KeySchemaVersionID = "schema_version_id"
	KeyError           = "error"
)

// Record is one message as delivered by the event source.
type Record struct {
	Topic     string
	Partition int
	Offset    int64

	// Timestamp is the broker timestamp in milliseconds, nil when unknown.
	Timestamp *int64

	Key   []byte
	Value []byte

	// Headers are the record headers as strings. They carry the producer's
	// trace context when it sent one.
	Headers map[string]string
}

// Decoded is the structured form of a record value. It is either the decoded
// fields or a fallback carrying raw_bytes.
type Decoded map[string]interface{}

// IsFallback reports whether d carries raw bytes instead of decoded fields.
func (d Decoded) IsFallback() bool {
	_, ok := d[KeyRawBytes]
	return ok
}

// HasDecodeError reports whether d is a fallback produced by a failed decode.
func (d Decoded) HasDecodeError() bool {
	_, ok := d[KeyDecodeError]
	return ok
}

// EncodeRaw returns the base64 (standard, padded) form used for raw_bytes.
func EncodeRaw(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// Raw is the terminal fallback: only raw_bytes.
func Raw(b []byte) Decoded {
	return Decoded{KeyRawBytes: EncodeRaw(b)}
}

// DecodeFailed is the fallback produced when a binary decode was attempted and failed.
func DecodeFailed(b []byte, reason string) Decoded {
	return Decoded{KeyRawBytes: EncodeRaw(b), KeyDecodeError: reason}
}

// UnresolvedSchema is the fallback for an envelope whose schema could not be fetched.
func UnresolvedSchema(payload []byte, schemaVersionID string) Decoded {
	return Decoded{KeyRawBytes: EncodeRaw(payload), KeySchemaVersionID: schemaVersionID}
}

// MalformedEnvelope is the fallback for an envelope that could not be read at all.
func MalformedEnvelope(original []byte, err error) Decoded {
	return Decoded{KeyRawBytes: EncodeRaw(original), KeyError: err.Error()}
}

// Envelope is the unit handed to downstream publish and persistence.
type Envelope struct {
	Topic       string  `json:"topic"`
	Partition   int     `json:"partition"`
	Offset      int64   `json:"offset"`
	Timestamp   *int64  `json:"timestamp"`
	Key         *string `json:"key"`
	Data        Decoded `json:"data"`
	ProcessedAt string  `json:"processed_at"`
}

// NewEnvelope wraps a decoded record with the coordinates of its source record.
func NewEnvelope(r Record, data Decoded, processedAt time.Time) Envelope {
	if data == nil {
		data = Raw(r.Value)
	}
	return Envelope{
		Topic:       r.Topic,
		Partition:   r.Partition,
		Offset:      r.Offset,
		Timestamp:   r.Timestamp,
		Key:         KeyString(r.Key),
		Data:        data,
		ProcessedAt: processedAt.UTC().Format("2006-01-02T15:04:05.000000"),
	}
}

// EventID is the deterministic id derived from Kafka coordinates.
func (e Envelope) EventID() string {
	return fmt.Sprintf("%s-%d-%d", e.Topic, e.Partition, e.Offset)
}

// Channel is the real-time channel the envelope is published on.
func (e Envelope) Channel() string {
	return "/kafka/" + e.Topic
}

// KeyString converts a record key to a string. Empty keys become nil; keys that
// are not valid UTF-8 are base64 encoded so they survive JSON.
func KeyString(key []byte) *string {
	if len(key) == 0 {
		return nil
	}
	var s string
	if utf8.Valid(key) {
		s = string(key)
	} else {
		s = EncodeRaw(key)
	}
	return &s
}
