package store

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/awsclient"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/logger"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/message"
)

// TestDynamoDBLocalSaveBatch writes a batch to DynamoDB Local and reads it back.
func TestDynamoDBLocalSaveBatch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	endpoint, containerInstance := initializeDynamoDB(ctx, t)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	awsCfg, err := awsclient.Load(ctx, awsclient.Config{
		Region:          "us-east-1",
		Endpoint:        endpoint,
		AccessKeyID:     "local",
		SecretAccessKey: "local",
	})
	require.NoError(t, err)

	client := dynamodb.NewFromConfig(awsCfg)
	createEventsTable(ctx, t, client, "events")

	var s Store
	app := fx.New(
		FXModule,
		fx.Provide(
			func() Config { return Config{Table: "events"} },
			func() aws.Config { return awsCfg },
			func() *logger.Logger { return logger.NewNop() },
		),
		fx.Populate(&s),
	)
	require.NoError(t, app.Start(ctx))
	defer app.Stop(ctx)

	envs := make([]message.Envelope, 40)
	for i := range envs {
		envs[i] = message.NewEnvelope(message.Record{
			Topic:     "taxi-trips",
			Partition: 0,
			Offset:    int64(i),
			Key:       []byte(fmt.Sprintf("cab-%d", i)),
		}, message.Decoded{"PULocationID": int32(100 + i%3)}, time.Now())
	}

	t.Run("Save", func(t *testing.T) {
		ids, err := s.SaveBatch(ctx, envs)
		require.NoError(t, err)
		assert.Len(t, ids, 40)
	})

	t.Run("Query by pickup location", func(t *testing.T) {
		out, err := client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String("events"),
			KeyConditionExpression: aws.String("pk = :pk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: "LOC#100"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, int32(14), out.Count)
	})

	t.Run("Redelivery overwrites", func(t *testing.T) {
		_, err := s.SaveBatch(ctx, envs[:5])
		require.NoError(t, err)

		out, err := client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String("events")})
		require.NoError(t, err)
		assert.Equal(t, int32(40), out.Count)
	})
}

func createEventsTable(ctx context.Context, t *testing.T, client *dynamodb.Client, name string) {
	t.Helper()
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(name),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("pk"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("sk"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	require.NoError(t, err)
}

func initializeDynamoDB(ctx context.Context, t *testing.T) (string, testcontainers.Container) {
	hostPort, err := getFreePort()
	require.NoError(t, err)

	containerInstance, err := createDynamoDBContainer(ctx, hostPort)
	require.NoError(t, err)

	port, err := containerInstance.MappedPort(ctx, "8000")
	require.NoError(t, err)

	host, err := containerInstance.Host(ctx)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port.Port()), 2*time.Second)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 30*time.Second, 500*time.Millisecond, "DynamoDB Local port not ready")

	return "http://" + net.JoinHostPort(host, port.Port()), containerInstance
}

func createDynamoDBContainer(ctx context.Context, hostPort string) (testcontainers.Container, error) {
	portBindings := nat.PortMap{
		"8000/tcp": []nat.PortBinding{{HostPort: hostPort}},
	}

	req := testcontainers.ContainerRequest{
		Image:        "amazon/dynamodb-local:2.5.2",
		ExposedPorts: []string{"8000/tcp"},
		Cmd:          []string{"-jar", "DynamoDBLocal.jar", "-inMemory", "-sharedDb"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForListeningPort("8000/tcp").WithStartupTimeout(60 * time.Second),
	}

	var containerInstance testcontainers.Container
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		containerInstance, lastErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if lastErr == nil {
			return containerInstance, nil
		}
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("failed to start DynamoDB Local after retries: %w", lastErr)
}

func getFreePort() (string, error) {
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		return "", err
	}
	defer l.Close()
	addr := l.Addr().(*net.TCPAddr)
	return strconv.Itoa(addr.Port), nil
}
