package schema_registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
)

type fakeGlue struct {
	calls       []*glue.GetSchemaVersionInput
	out         *glue.GetSchemaVersionOutput
	err         error
	block       bool
	sawDeadline bool
}

func (f *fakeGlue) GetSchemaVersion(ctx context.Context, params *glue.GetSchemaVersionInput, _ ...func(*glue.Options)) (*glue.GetSchemaVersionOutput, error) {
	f.calls = append(f.calls, params)
	_, f.sawDeadline = ctx.Deadline()
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.out, f.err
}

type recordingObserver struct {
	ops []observability.OperationContext
}

func (r *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	r.ops = append(r.ops, ctx)
}

func TestGetSchemaByVersionID(t *testing.T) {
	api := &fakeGlue{out: &glue.GetSchemaVersionOutput{SchemaDefinition: aws.String(`"string"`)}}
	obs := &recordingObserver{}
	c := NewGlueClient(api, Config{}).WithObserver(obs)

	def, err := c.GetSchemaByVersionID(context.Background(), "6f3c1a52-9d2e-4b8a-a1f0-2c7d9e4b5a61")
	require.NoError(t, err)
	assert.Equal(t, `"string"`, def)

	require.Len(t, api.calls, 1)
	assert.Equal(t, "6f3c1a52-9d2e-4b8a-a1f0-2c7d9e4b5a61", aws.ToString(api.calls[0].SchemaVersionId))
	assert.Nil(t, api.calls[0].SchemaId)
	assert.True(t, api.sawDeadline, "registry call must carry a deadline")

	require.Len(t, obs.ops, 1)
	assert.Equal(t, "schema_registry", obs.ops[0].Component)
	assert.Equal(t, "get_schema_by_version_id", obs.ops[0].Operation)
	assert.NoError(t, obs.ops[0].Error)
}

func TestGetSchemaByNameUsesLatestVersion(t *testing.T) {
	api := &fakeGlue{out: &glue.GetSchemaVersionOutput{SchemaDefinition: aws.String(`"string"`)}}
	c := NewGlueClient(api, Config{})

	_, err := c.GetSchemaByName(context.Background(), "taxi-registry", "taxi-trip-schema")
	require.NoError(t, err)

	require.Len(t, api.calls, 1)
	in := api.calls[0]
	require.NotNil(t, in.SchemaId)
	assert.Equal(t, "taxi-registry", aws.ToString(in.SchemaId.RegistryName))
	assert.Equal(t, "taxi-trip-schema", aws.ToString(in.SchemaId.SchemaName))
	require.NotNil(t, in.SchemaVersionNumber)
	assert.True(t, in.SchemaVersionNumber.LatestVersion)
}

func TestGetSchemaByNameRequiresRegistry(t *testing.T) {
	api := &fakeGlue{}
	c := NewGlueClient(api, Config{})

	_, err := c.GetSchemaByName(context.Background(), "", "taxi-trip-schema")
	assert.ErrorIs(t, err, ErrRegistryNameRequired)
	assert.Empty(t, api.calls)
}

func TestErrorsAreClassified(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		api := &fakeGlue{err: &types.EntityNotFoundException{Message: aws.String("no such version")}}
		_, err := NewGlueClient(api, Config{}).GetSchemaByVersionID(context.Background(), "x")
		assert.True(t, IsNotFound(err))
	})

	t.Run("api error keeps code", func(t *testing.T) {
		api := &fakeGlue{err: &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "denied"}}
		_, err := NewGlueClient(api, Config{}).GetSchemaByVersionID(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AccessDeniedException")
		var apiErr smithy.APIError
		assert.True(t, errors.As(err, &apiErr))
	})

	t.Run("empty definition", func(t *testing.T) {
		api := &fakeGlue{out: &glue.GetSchemaVersionOutput{}}
		_, err := NewGlueClient(api, Config{}).GetSchemaByVersionID(context.Background(), "x")
		assert.ErrorIs(t, err, ErrEmptyDefinition)
	})
}

func TestTimeoutIsAFailure(t *testing.T) {
	api := &fakeGlue{block: true}
	c := NewGlueClient(api, Config{Timeout: 20 * time.Millisecond})

	start := time.Now()
	_, err := c.GetSchemaByVersionID(context.Background(), "x")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestUnavailable(t *testing.T) {
	var r Registry = Unavailable{}
	_, err := r.GetSchemaByVersionID(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = r.GetSchemaByName(context.Background(), "r", "s")
	assert.ErrorIs(t, err, ErrUnavailable)
}
