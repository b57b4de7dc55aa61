package source

// Config selects the event source.
type Config struct {
	// EventFile replays a saved MSK event JSON file once instead of consuming
	// from Kafka. "-" reads the event from stdin.
	EventFile string `yaml:"event_file" envconfig:"MSK_EVENT_FILE"`
}
