package compression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/envelope"
)

func TestNoneIsIdentity(t *testing.T) {
	in := []byte{0, 1, 2, 3}
	out, err := Decompress(in, envelope.CompressionNone)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestZlibRoundTrip(t *testing.T) {
	in := []byte("the quick brown fox jumps over the lazy dog, twice: the quick brown fox")
	packed, err := Compress(in, envelope.CompressionZlib)
	require.NoError(t, err)
	assert.NotEqual(t, in, packed)

	out, err := Decompress(packed, envelope.CompressionZlib)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestZlibCorruptData(t *testing.T) {
	_, err := Decompress([]byte{0x78, 0x9c, 0xde, 0xad, 0xbe, 0xef}, envelope.CompressionZlib)
	assert.Error(t, err)

	_, err = Decompress([]byte("not zlib at all"), envelope.CompressionZlib)
	assert.Error(t, err)
}

func TestUnknownCodeIsAnError(t *testing.T) {
	_, err := Decompress([]byte{1, 2, 3}, 0x02)
	assert.ErrorIs(t, err, ErrUnsupportedCompression)

	_, err = Compress([]byte{1, 2, 3}, 0x09)
	assert.ErrorIs(t, err, ErrUnsupportedCompression)
}
