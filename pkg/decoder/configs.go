package decoder

// Config selects the decoder capability at startup.
type Config struct {
	// BinaryDecoding enables Avro decoding. When false every binary decode
	// degrades to a raw_bytes fallback.
	BinaryDecoding bool `yaml:"binary_decoding" envconfig:"AVRO_DECODING_ENABLED" default:"true"`
}
