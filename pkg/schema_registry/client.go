package schema_registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/aws/smithy-go"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
)

// GlueAPI is the subset of *glue.Client used by GlueClient.
type GlueAPI interface {
	GetSchemaVersion(ctx context.Context, params *glue.GetSchemaVersionInput, optFns ...func(*glue.Options)) (*glue.GetSchemaVersionOutput, error)
}

// GlueClient reads schema definitions from the AWS Glue Schema Registry.
// It does not cache; caching of parsed schemas belongs to the resolver.
type GlueClient struct {
	api     GlueAPI
	timeout time.Duration

	observer observability.Observer
}

// NewGlueClient wraps a Glue API client.
func NewGlueClient(api GlueAPI, cfg Config) *GlueClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &GlueClient{api: api, timeout: cfg.Timeout}
}

// NewGlueClientFromConfig builds the Glue API client from an AWS config.
func NewGlueClientFromConfig(awsCfg aws.Config, cfg Config) *GlueClient {
	return NewGlueClient(glue.NewFromConfig(awsCfg), cfg)
}

// WithObserver attaches an observer and returns the client for chaining.
func (c *GlueClient) WithObserver(observer observability.Observer) *GlueClient {
	c.observer = observer
	return c
}

// GetSchemaByVersionID retrieves a schema version by its UUID.
func (c *GlueClient) GetSchemaByVersionID(ctx context.Context, versionID string) (string, error) {
	return c.getSchemaVersion(ctx, "get_schema_by_version_id", versionID, &glue.GetSchemaVersionInput{
		SchemaVersionId: aws.String(versionID),
	})
}

// GetSchemaByName retrieves the latest version of a schema by registry and name.
func (c *GlueClient) GetSchemaByName(ctx context.Context, registryName, schemaName string) (string, error) {
	if registryName == "" {
		return "", ErrRegistryNameRequired
	}
	return c.getSchemaVersion(ctx, "get_schema_by_name", registryName+"/"+schemaName, &glue.GetSchemaVersionInput{
		SchemaId: &types.SchemaId{
			RegistryName: aws.String(registryName),
			SchemaName:   aws.String(schemaName),
		},
		SchemaVersionNumber: &types.SchemaVersionNumber{
			LatestVersion: true,
		},
	})
}

func (c *GlueClient) getSchemaVersion(ctx context.Context, operation, resource string, input *glue.GetSchemaVersionInput) (string, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.api.GetSchemaVersion(ctx, input)
	if err != nil {
		err = classify(err)
	} else if out == nil || aws.ToString(out.SchemaDefinition) == "" {
		err = ErrEmptyDefinition
	}

	c.observeOperation(operation, resource, time.Since(start), err)
	if err != nil {
		return "", err
	}
	return aws.ToString(out.SchemaDefinition), nil
}

// classify maps Glue errors onto package errors while keeping the cause.
func classify(err error) error {
	var notFound *types.EntityNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, notFound.ErrorMessage())
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("glue %s: %w", apiErr.ErrorCode(), err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("glue call timed out: %w", err)
	}
	return fmt.Errorf("glue call failed: %w", err)
}

func (c *GlueClient) observeOperation(operation, resource string, duration time.Duration, err error) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveOperation(observability.OperationContext{
		Component: "schema_registry",
		Operation: operation,
		Resource:  resource,
		Duration:  duration,
		Error:     err,
	})
}

// Unavailable is the registry used when no Glue client is configured.
type Unavailable struct{}

func (Unavailable) GetSchemaByVersionID(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) GetSchemaByName(context.Context, string, string) (string, error) {
	return "", ErrUnavailable
}
