package pipeline

// Strategy names the step of the decode chain that produced a record.
type Strategy string

const (
	// StrategyEnvelope decoded a registry envelope with its resolved schema.
	StrategyEnvelope Strategy = "envelope"

	// StrategyEnvelopeFallback found an envelope but could not fully decode it.
	StrategyEnvelopeFallback Strategy = "envelope_fallback"

	StrategyJSON        Strategy = "json"
	StrategyTopicSchema Strategy = "topic_schema"
	StrategyRaw         Strategy = "raw"
)

func (s Strategy) String() string {
	return string(s)
}
