package pipeline

// TopicSchemaMap maps topic names (and their known aliases) to the registry
// schema name used when a record carries no envelope.
type TopicSchemaMap map[string]string

// DefaultTopicSchemas is the naming convention of the taxi producers.
func DefaultTopicSchemas() TopicSchemaMap {
	return TopicSchemaMap{
		"taxi-trips":       "taxi-trip-schema",
		"taxi-rides":       "taxi-trip-schema",
		"taxi-trip-schema": "taxi-trip-schema",
		"taxi-locations":   "taxi-locations",
	}
}

// SchemaFor returns the schema name for topic. Matching is exact.
func (m TopicSchemaMap) SchemaFor(topic string) (string, bool) {
	name, ok := m[topic]
	return name, ok && name != ""
}

// Merge returns a copy of m with overrides applied on top.
func (m TopicSchemaMap) Merge(overrides map[string]string) TopicSchemaMap {
	out := make(TopicSchemaMap, len(m)+len(overrides))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
