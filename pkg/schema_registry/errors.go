package schema_registry

import "errors"

var (
	// ErrUnavailable is returned when no registry client is configured.
	ErrUnavailable = errors.New("schema registry: client not available")

	// ErrNotFound is returned when the registry has no such schema or version.
	ErrNotFound = errors.New("schema registry: schema not found")

	// ErrEmptyDefinition is returned when the registry answers without a definition.
	ErrEmptyDefinition = errors.New("schema registry: empty schema definition")

	// ErrRegistryNameRequired is returned for name lookups without a registry name.
	ErrRegistryNameRequired = errors.New("schema registry: registry name is required")
)

// IsNotFound reports whether err means the schema does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
