package decoder

import (
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/message"
)

// UnavailableReason is the decode_error reported when no binary decoder is available.
const UnavailableReason = "capability unavailable"

// Schema is a parsed, decoder-ready schema. Values are immutable and safe to share.
type Schema interface {
	// Definition returns the schema document the value was parsed from.
	Definition() string
}

// Decoder decodes binary payloads against a Schema.
//
// This interface is implemented by *Avro and Unavailable.
type Decoder interface {
	// Available reports whether Decode can ever succeed.
	Available() bool

	// Parse turns a schema document into a Schema.
	Parse(definition string) (Schema, error)

	// Decode never panics; every failure is reported through the Result.
	Decode(data []byte, schema Schema) Result
}

// Kind tags the outcome of a decode.
type Kind int

const (
	KindDecoded Kind = iota
	KindFailed
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindDecoded:
		return "decoded"
	case KindFailed:
		return "failed"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Result is the outcome of Decoder.Decode.
type Result struct {
	Kind  Kind
	Value map[string]interface{}
	Err   error

	raw []byte
}

// Decoded builds a successful result.
func Decoded(v map[string]interface{}) Result {
	return Result{Kind: KindDecoded, Value: v}
}

// Failed builds a failed result for data.
func Failed(data []byte, err error) Result {
	return Result{Kind: KindFailed, Err: err, raw: data}
}

// Record returns the decoded fields, or the raw_bytes/decode_error fallback.
func (r Result) Record() message.Decoded {
	switch r.Kind {
	case KindDecoded:
		return message.Decoded(r.Value)
	case KindUnavailable:
		return message.DecodeFailed(r.raw, UnavailableReason)
	default:
		reason := "decode failed"
		if r.Err != nil {
			reason = r.Err.Error()
		}
		return message.DecodeFailed(r.raw, reason)
	}
}
