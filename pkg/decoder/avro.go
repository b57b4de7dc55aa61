package decoder

import (
	"errors"
	"fmt"

	"github.com/linkedin/goavro/v2"
)

// ErrNotARecord is returned when a payload decodes to something other than a record.
var ErrNotARecord = errors.New("decoded value is not a record")

// Avro decodes schemaless Avro binary (no object container framing).
//
// Records decode to map[string]interface{}. goavro reports a non-null union
// value as {"<type>": value}; Decode replaces those with the value itself.
type Avro struct{}

// NewAvro returns the Avro decoder.
func NewAvro() *Avro {
	return &Avro{}
}

type avroSchema struct {
	definition string
	codec      *goavro.Codec
	shape      *avroType
}

func (s *avroSchema) Definition() string {
	return s.definition
}

func (a *Avro) Available() bool {
	return true
}

func (a *Avro) Parse(definition string) (Schema, error) {
	codec, err := goavro.NewCodec(definition)
	if err != nil {
		return nil, fmt.Errorf("failed to parse avro schema: %w", err)
	}
	return &avroSchema{definition: definition, codec: codec, shape: parseShape(definition)}, nil
}

func (a *Avro) Decode(data []byte, schema Schema) (res Result) {
	s, ok := schema.(*avroSchema)
	if !ok || s == nil {
		return Failed(data, fmt.Errorf("schema %T was not parsed by the avro decoder", schema))
	}

	defer func() {
		if r := recover(); r != nil {
			res = Failed(data, fmt.Errorf("avro decoder panic: %v", r))
		}
	}()

	native, _, err := s.codec.NativeFromBinary(data)
	if err != nil {
		return Failed(data, err)
	}

	record, ok := s.shape.plain(native).(map[string]interface{})
	if !ok {
		return Failed(data, fmt.Errorf("%w: %T", ErrNotARecord, native))
	}
	return Decoded(record)
}

// Encode encodes a record with schema. record is in goavro's native form, so
// non-null union values are written as {"<type>": value}. It is used by
// producers and tests.
func Encode(schema Schema, record map[string]interface{}) ([]byte, error) {
	s, ok := schema.(*avroSchema)
	if !ok || s == nil {
		return nil, fmt.Errorf("schema %T was not parsed by the avro decoder", schema)
	}
	return s.codec.BinaryFromNative(nil, record)
}
