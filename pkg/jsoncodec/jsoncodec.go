// Package jsoncodec is the JSON codec shared by the pipeline, publishers and
// store. It uses sonic configured for encoding/json compatibility.
package jsoncodec

import (
	"io"

	"github.com/bytedance/sonic"
)

var defaultConfig = sonic.ConfigStd

// objectConfig is defaultConfig with integers kept as int64, so ids above
// 2^53 survive decoding.
var objectConfig = sonic.Config{
	EscapeHTML:       true,
	SortMapKeys:      true,
	CompactMarshaler: true,
	CopyString:       true,
	ValidateString:   true,
	UseInt64:         true,
}.Froze()

func Marshal(v any) ([]byte, error) {
	return defaultConfig.Marshal(v)
}

func Unmarshal(data []byte, v any) error {
	return defaultConfig.Unmarshal(data, v)
}

func Encode(w io.Writer, v any) error {
	return defaultConfig.NewEncoder(w).Encode(v)
}

func Decode(r io.Reader, v any) error {
	return defaultConfig.NewDecoder(r).Decode(v)
}

// Object parses data as a JSON object. It reports false for invalid JSON and
// for valid JSON whose top-level value is not an object. Integers decode to
// int64 and other numbers to float64.
func Object(data []byte) (map[string]interface{}, bool) {
	var v interface{}
	if err := objectConfig.Unmarshal(data, &v); err != nil {
		return nil, false
	}
	obj, ok := v.(map[string]interface{})
	return obj, ok
}
