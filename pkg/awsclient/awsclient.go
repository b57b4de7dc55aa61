// Package awsclient loads the shared AWS SDK configuration used by the Glue
// schema registry and the DynamoDB store.
package awsclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// DefaultMaxAttempts mirrors the retry budget the processor has always used.
const DefaultMaxAttempts = 3

// Config holds the AWS settings. Empty values fall back to the SDK's default
// chain (environment, shared config, instance role).
type Config struct {
	Region string `yaml:"region" envconfig:"AWS_REGION"`

	// Endpoint optionally points every client at a custom endpoint, for example
	// LocalStack or DynamoDB Local.
	Endpoint string `yaml:"endpoint" envconfig:"AWS_ENDPOINT_URL"`

	AccessKeyID     string `yaml:"access_key_id" envconfig:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" envconfig:"AWS_SECRET_ACCESS_KEY"`

	MaxAttempts int `yaml:"max_attempts" envconfig:"AWS_MAX_ATTEMPTS" default:"3"`
}

// Loader matches awsconfig.LoadDefaultConfig; replaced in tests.
var Loader = awsconfig.LoadDefaultConfig

// Load builds an aws.Config with adaptive retries.
func Load(ctx context.Context, cfg Config) (aws.Config, error) {
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRetryMaxAttempts(cfg.MaxAttempts),
		awsconfig.WithRetryMode(aws.RetryModeAdaptive),
	}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	if cfg.Endpoint != "" {
		if _, err := url.Parse(cfg.Endpoint); err != nil {
			return aws.Config{}, fmt.Errorf("failed to parse AWS endpoint: %w", err)
		}
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.Endpoint))
	}

	awsCfg, err := Loader(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	// Ensure region is set even if the loader ignores options (e.g. in tests)
	if cfg.Region != "" {
		awsCfg.Region = cfg.Region
	}
	return awsCfg, nil
}
