package decoder

// Logger is the subset of the logger package used here.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// New selects the decoder implementation once for the process. The degraded
// mode is logged here and nowhere else.
func New(cfg Config, log Logger) Decoder {
	if !cfg.BinaryDecoding {
		if log != nil {
			log.Warn("Avro decoding not available, binary payloads will be returned as raw bytes", nil, nil)
		}
		return Unavailable{}
	}
	if log != nil {
		log.Info("Avro decoding enabled", nil, nil)
	}
	return NewAvro()
}
