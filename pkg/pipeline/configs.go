package pipeline

// Config tunes the decode pipeline.
type Config struct {
	// TopicSchemas adds to or overrides DefaultTopicSchemas, as
	// "topic:schema,topic:schema".
	TopicSchemas map[string]string `yaml:"topic_schemas" envconfig:"TOPIC_SCHEMA_MAP"`
}
