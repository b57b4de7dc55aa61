package publisher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/jsoncodec"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/message"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/observability"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/tracer"
)

var ErrNoEndpoint = errors.New("appsync endpoint not configured")

// StatusError is returned for a non-2xx AppSync response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("appsync returned %d: %s", e.StatusCode, e.Body)
}

type appSyncRequest struct {
	Channel string   `json:"channel"`
	Events  []string `json:"events"`
}

// AppSync publishes to an AppSync Events API channel over HTTP. Each envelope
// is sent as a single JSON-encoded event string.
type AppSync struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	log        Logger
	observer   observability.Observer
}

// NewAppSync creates an AppSync publisher. A zero timeout means DefaultTimeout.
func NewAppSync(endpoint, apiKey string, timeout time.Duration, log Logger) *AppSync {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &AppSync{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (a *AppSync) WithObserver(observer observability.Observer) *AppSync {
	a.observer = observer
	return a
}

func (a *AppSync) Publish(ctx context.Context, channel string, env message.Envelope) (err error) {
	start := time.Now()
	defer func() {
		a.observeOperation(channel, time.Since(start), err)
	}()

	if a.endpoint == "" {
		return ErrNoEndpoint
	}

	event, err := jsoncodec.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	body, err := jsoncodec.Marshal(appSyncRequest{Channel: channel, Events: []string{string(event)}})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint+"/event", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("x-api-key", a.apiKey)
	}
	for k, v := range tracer.GetCarrier(ctx) {
		req.Header.Set(k, v)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to publish to appsync: %w", err)
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if readErr != nil {
		a.log.Debug("Failed to read AppSync response body", readErr, map[string]interface{}{
			"channel":  channel,
			"event_id": env.EventID(),
			"status":   resp.StatusCode,
		})
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	a.log.Debug("AppSync response", nil, map[string]interface{}{
		"channel":  channel,
		"event_id": env.EventID(),
		"response": string(respBody),
	})
	return nil
}

func (a *AppSync) observeOperation(channel string, duration time.Duration, err error) {
	if a.observer == nil {
		return
	}
	a.observer.ObserveOperation(observability.OperationContext{
		Component:   "publisher",
		Operation:   "publish",
		Resource:    channel,
		SubResource: "appsync",
		Duration:    duration,
		Error:       err,
	})
}
