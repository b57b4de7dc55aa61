// Package schema_registry reads schema definitions from the AWS Glue Schema Registry.
//
// Two lookups are supported: by schema version id (the UUID carried in a
// registry envelope) and by registry and schema name, which returns the latest
// version. Both are bounded by Config.Timeout; a timeout is an ordinary error.
//
//	awsCfg, err := awsclient.Load(ctx, awsclient.Config{Region: "eu-central-1"})
//	if err != nil {
//	    return err
//	}
//	registry := schema_registry.NewGlueClientFromConfig(awsCfg, schema_registry.Config{
//	    RegistryName: "taxi-registry",
//	    Timeout:      10 * time.Second,
//	})
//
//	definition, err := registry.GetSchemaByName(ctx, "taxi-registry", "taxi-trip-schema")
//
// Missing schemas are reported as ErrNotFound; other Glue API errors keep their
// smithy error code in the message. The client itself does not cache: parsed
// schemas are cached by the resolver package.
//
// When Config.Enabled is false the FX module provides Unavailable, which fails
// every lookup with ErrUnavailable so callers fall back to raw bytes.
package schema_registry
