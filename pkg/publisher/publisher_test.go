package publisher

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/jsoncodec"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/logger"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/message"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
)

func testEnvelope() message.Envelope {
	ts := int64(1718000000000)
	return message.NewEnvelope(message.Record{
		Topic:     "taxi-trips",
		Partition: 2,
		Offset:    77,
		Timestamp: &ts,
		Key:       []byte("cab-17"),
	}, message.Decoded{"PULocationID": 132}, time.Date(2024, 6, 10, 6, 13, 20, 0, time.UTC))
}

func TestAppSyncPublish(t *testing.T) {
	var (
		gotPath        string
		gotKey         string
		gotContentType string
		gotBody        appSyncRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, jsoncodec.Decode(r.Body, &gotBody))
		_, _ = io.WriteString(w, `{"successful":[{"identifier":"1","index":0}]}`)
	}))
	defer srv.Close()

	env := testEnvelope()
	p := NewAppSync(srv.URL+"/", "secret", 0, logger.NewNop())
	require.NoError(t, p.Publish(context.Background(), env.Channel(), env))

	assert.Equal(t, "/event", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "/kafka/taxi-trips", gotBody.Channel)
	require.Len(t, gotBody.Events, 1)

	var event map[string]interface{}
	require.NoError(t, jsoncodec.Unmarshal([]byte(gotBody.Events[0]), &event))
	assert.Equal(t, "taxi-trips", event["topic"])
	assert.Equal(t, float64(77), event["offset"])
	assert.Equal(t, "cab-17", event["key"])
	assert.Equal(t, "2024-06-10T06:13:20.000000", event["processed_at"])
}

func TestAppSyncOmitsEmptyAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["X-Api-Key"]
		assert.False(t, present)
	}))
	defer srv.Close()

	require.NoError(t, NewAppSync(srv.URL, "", 0, logger.NewNop()).Publish(context.Background(), "/kafka/t", testEnvelope()))
}

func TestAppSyncNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, "bad key")
	}))
	defer srv.Close()

	var seen []observability.OperationContext
	p := NewAppSync(srv.URL, "k", 0, logger.NewNop()).WithObserver(observability.ObserverFunc(func(ctx observability.OperationContext) {
		seen = append(seen, ctx)
	}))
	err := p.Publish(context.Background(), "/kafka/t", testEnvelope())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "bad key", statusErr.Body)
	require.Len(t, seen, 1)
	assert.Error(t, seen[0].Error)
}

func TestAppSyncTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	p := NewAppSync(srv.URL, "", 50*time.Millisecond, logger.NewNop())
	err := p.Publish(context.Background(), "/kafka/t", testEnvelope())
	assert.Error(t, err)
}

func TestAppSyncWithoutEndpoint(t *testing.T) {
	err := NewAppSync("", "", 0, logger.NewNop()).Publish(context.Background(), "/kafka/t", testEnvelope())
	assert.ErrorIs(t, err, ErrNoEndpoint)
}

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublish(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafka(w)
	env := testEnvelope()

	require.NoError(t, p.Publish(context.Background(), env.Channel(), env))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "taxi-trips-2-77", string(w.msgs[0].Key))
	assert.Equal(t, "channel", w.msgs[0].Headers[0].Key)
	assert.Equal(t, "/kafka/taxi-trips", string(w.msgs[0].Headers[0].Value))

	var decoded message.Envelope
	require.NoError(t, jsoncodec.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, env.Offset, decoded.Offset)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublishError(t *testing.T) {
	p := NewKafka(&fakeWriter{err: errors.New("leader not available")})
	err := p.Publish(context.Background(), "/kafka/t", testEnvelope())
	assert.ErrorContains(t, err, "leader not available")
}

func TestNoop(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := NewNoop(&logger.Logger{Zap: zap.New(core)})

	assert.ErrorIs(t, n.Publish(context.Background(), "/kafka/t", testEnvelope()), ErrNotConfigured)
	assert.ErrorIs(t, n.Publish(context.Background(), "/kafka/t", testEnvelope()), ErrNotConfigured)
	assert.ErrorIs(t, Noop{}.Publish(context.Background(), "/kafka/t", testEnvelope()), ErrNotConfigured)
	assert.Equal(t, 1, logs.Len(), "the missing channel is logged once")
}

func TestAppSyncLogsUnreadableResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "64")
		_, _ = io.WriteString(w, `{"succ`)
	}))
	defer srv.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	p := NewAppSync(srv.URL, "", 0, &logger.Logger{Zap: zap.New(core)})

	env := testEnvelope()
	require.NoError(t, p.Publish(context.Background(), env.Channel(), env))

	entries := logs.FilterMessage("Failed to read AppSync response body").All()
	require.Len(t, entries, 1)
	assert.Equal(t, env.EventID(), entries[0].ContextMap()["event_id"])
	assert.Contains(t, entries[0].ContextMap(), "error")
}
