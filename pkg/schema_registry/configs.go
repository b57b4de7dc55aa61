package schema_registry

import "time"

// DefaultTimeout bounds every registry call.
const DefaultTimeout = 10 * time.Second

// Config holds configuration for the Glue schema registry client.
type Config struct {
	// Enabled turns the Glue client on. When false the Unavailable registry is
	// used and every lookup fails with ErrUnavailable.
	Enabled bool `yaml:"enabled" envconfig:"GLUE_ENABLED" default:"true"`

	// RegistryName is the Glue registry used for name lookups.
	RegistryName string `yaml:"registry_name" envconfig:"GLUE_REGISTRY_NAME"`

	// Timeout for a single registry call. A timeout is reported as a failed lookup.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout" envconfig:"GLUE_TIMEOUT" default:"10s"`

	// AutoRegistration is reported at startup only; this service never writes schemas.
	AutoRegistration bool `yaml:"auto_registration" envconfig:"SCHEMA_AUTO_REGISTRATION" default:"true"`
}
