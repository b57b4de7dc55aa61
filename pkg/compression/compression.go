// Package compression applies the payload compression declared by a registry
// envelope.
package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/envelope"
)

// ErrUnsupportedCompression is returned for codes other than none and zlib.
var ErrUnsupportedCompression = errors.New("unsupported compression")

// Decompress returns the raw encoded payload for b. Code 0x00 returns b
// unchanged, 0x05 inflates zlib data. Any other code is an error rather than
// a pass-through so garbage is never handed to the binary decoder.
func Decompress(b []byte, code byte) ([]byte, error) {
	switch code {
	case envelope.CompressionNone:
		return b, nil
	case envelope.CompressionZlib:
		r, err := zlib.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: code 0x%02x", ErrUnsupportedCompression, code)
	}
}

// Compress is the inverse of Decompress, used by producers.
func Compress(b []byte, code byte) ([]byte, error) {
	switch code {
	case envelope.CompressionNone:
		return b, nil
	case envelope.CompressionZlib:
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		if _, err := w.Write(b); err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: code 0x%02x", ErrUnsupportedCompression, code)
	}
}
