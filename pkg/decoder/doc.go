// Package decoder turns binary payloads into structured records.
//
// Binary decoding is a capability chosen once at startup: *Avro decodes
// schemaless Avro with goavro, Unavailable degrades every decode to a
// raw_bytes fallback carrying decode_error "capability unavailable".
//
//	dec := decoder.New(decoder.Config{BinaryDecoding: true}, log)
//	schema, err := dec.Parse(definition)
//	res := dec.Decode(payload, schema)
//	switch res.Kind {
//	case decoder.KindDecoded:
//		// res.Value holds the record
//	default:
//		// res.Record() is {raw_bytes, decode_error}
//	}
//
// Decode never panics and never returns an error; the outcome is tagged by Kind.
package decoder
