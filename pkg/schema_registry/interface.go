package schema_registry

import "context"

// Registry fetches schema definitions from a remote schema registry.
//
// This interface is implemented by *GlueClient and Unavailable.
//
//go:generate mockgen -source=interface.go -destination=mock_registry.go -package=schema_registry
type Registry interface {
	// GetSchemaByVersionID returns the definition of a schema version identified by UUID.
	GetSchemaByVersionID(ctx context.Context, versionID string) (string, error)

	// GetSchemaByName returns the definition of the latest version of schemaName
	// in registryName.
	GetSchemaByName(ctx context.Context, registryName, schemaName string) (string, error)
}
