package decoder

// Unavailable is the degraded decoder selected when binary decoding is
// disabled. Parse keeps the raw definition so schemas still resolve and
// cache; every Decode reports "capability unavailable".
type Unavailable struct{}

type rawSchema string

func (s rawSchema) Definition() string {
	return string(s)
}

func (Unavailable) Available() bool {
	return false
}

func (Unavailable) Parse(definition string) (Schema, error) {
	return rawSchema(definition), nil
}

func (Unavailable) Decode(data []byte, _ Schema) Result {
	return Result{Kind: KindUnavailable, raw: data}
}
