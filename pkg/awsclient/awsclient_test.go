package awsclient

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withLoader(t *testing.T, fn func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error)) {
	t.Helper()
	orig := Loader
	Loader = fn
	t.Cleanup(func() { Loader = orig })
}

func TestLoadAppliesOptions(t *testing.T) {
	var got awsconfig.LoadOptions
	withLoader(t, func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		for _, fn := range optFns {
			require.NoError(t, fn(&got))
		}
		return aws.Config{}, nil
	})

	cfg, err := Load(context.Background(), Config{
		Region:          "eu-west-1",
		Endpoint:        "http://localhost:4566",
		AccessKeyID:     "test",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "eu-west-1", got.Region)
	assert.Equal(t, DefaultMaxAttempts, got.RetryMaxAttempts)
	assert.Equal(t, aws.RetryModeAdaptive, got.RetryMode)
	assert.Equal(t, "http://localhost:4566", got.BaseEndpoint)
	assert.NotNil(t, got.Credentials)
}

func TestLoadPropagatesLoaderError(t *testing.T) {
	withLoader(t, func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no credentials")
	})

	_, err := Load(context.Background(), Config{})
	assert.ErrorContains(t, err, "no credentials")
}
