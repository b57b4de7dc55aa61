package message

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackConstructors(t *testing.T) {
	raw := []byte{0xde, 0xad, 0xbe, 0xef}

	assert.Equal(t, Decoded{"raw_bytes": "3q2+7w=="}, Raw(raw))
	assert.True(t, Raw(raw).IsFallback())
	assert.False(t, Raw(raw).HasDecodeError())

	failed := DecodeFailed(raw, "short buffer")
	assert.Equal(t, "short buffer", failed[KeyDecodeError])
	assert.True(t, failed.HasDecodeError())

	unresolved := UnresolvedSchema(raw, "8c1e2b2a-0000-4000-8000-000000000001")
	assert.Equal(t, "8c1e2b2a-0000-4000-8000-000000000001", unresolved[KeySchemaVersionID])

	malformed := MalformedEnvelope(raw, errors.New("invalid UUID"))
	assert.Equal(t, "invalid UUID", malformed[KeyError])

	assert.False(t, Decoded{"a": 1}.IsFallback())
}

func TestNewEnvelope(t *testing.T) {
	ts := int64(1700000000000)
	r := Record{Topic: "taxi-trips", Partition: 3, Offset: 99, Timestamp: &ts, Key: []byte("trip-1"), Value: []byte("x")}
	at := time.Date(2024, 1, 2, 3, 4, 5, 6000, time.UTC)

	env := NewEnvelope(r, Decoded{"VendorID": int32(1)}, at)

	require.NotNil(t, env.Key)
	assert.Equal(t, "trip-1", *env.Key)
	assert.Equal(t, "taxi-trips-3-99", env.EventID())
	assert.Equal(t, "/kafka/taxi-trips", env.Channel())
	assert.Equal(t, "2024-01-02T03:04:05.000006", env.ProcessedAt)
	assert.Equal(t, &ts, env.Timestamp)
}

func TestNewEnvelopeNeverHasNilData(t *testing.T) {
	env := NewEnvelope(Record{Value: []byte{1}}, nil, time.Now())
	assert.Equal(t, Decoded{"raw_bytes": "AQ=="}, env.Data)
	assert.Nil(t, env.Key)
}

func TestKeyStringNonUTF8(t *testing.T) {
	k := KeyString([]byte{0xff, 0xfe})
	require.NotNil(t, k)
	assert.Equal(t, "//4=", *k)
}
