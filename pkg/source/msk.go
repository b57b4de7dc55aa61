package source

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/jsoncodec"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/message"
)

// ErrInvalidEvent is returned when an MSK event body is not valid JSON.
var ErrInvalidEvent = errors.New("invalid msk event")

// MSKEvent is the batch an MSK event source mapping delivers: records grouped
// under "<topic>-<partition>" keys, with base64 keys and values.
type MSKEvent struct {
	EventSource      string                 `json:"eventSource"`
	EventSourceArn   string                 `json:"eventSourceArn"`
	BootstrapServers string                 `json:"bootstrapServers"`
	Records          map[string][]MSKRecord `json:"records"`
}

type MSKRecord struct {
	Topic         string  `json:"topic"`
	Partition     int     `json:"partition"`
	Offset        int64   `json:"offset"`
	Timestamp     *int64  `json:"timestamp"`
	TimestampType string  `json:"timestampType"`
	Key           *string `json:"key"`
	Value         string  `json:"value"`

	// Headers arrive as a list of single-entry objects whose values are byte arrays.
	Headers []map[string][]int `json:"headers"`
}

// ParseMSKEvent decodes an MSK event into records, ordered by topic-partition
// key and then by position within the partition. The topic is taken from the
// grouping key with its trailing "-<partition>" removed. A value that is not
// valid base64 becomes an empty value, and such a key becomes nil, rather
// than failing the whole batch.
func ParseMSKEvent(body []byte) ([]message.Record, error) {
	var event MSKEvent
	if err := jsoncodec.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return event.Flatten(), nil
}

// Flatten converts the grouped records into message.Records.
func (e MSKEvent) Flatten() []message.Record {
	groups := make([]string, 0, len(e.Records))
	total := 0
	for k, recs := range e.Records {
		groups = append(groups, k)
		total += len(recs)
	}
	sort.Strings(groups)

	out := make([]message.Record, 0, total)
	for _, group := range groups {
		topic := topicFromGroup(group)
		for _, r := range e.Records[group] {
			out = append(out, message.Record{
				Topic:     topic,
				Partition: r.Partition,
				Offset:    r.Offset,
				Timestamp: r.Timestamp,
				Key:       decodeKey(r.Key),
				Value:     decodeValue(r.Value),
				Headers:   decodeHeaders(r.Headers),
			})
		}
	}
	return out
}

func topicFromGroup(group string) string {
	if i := strings.LastIndex(group, "-"); i >= 0 {
		return group[:i]
	}
	return group
}

func decodeKey(key *string) []byte {
	if key == nil || *key == "" {
		return nil
	}
	b, err := base64.StdEncoding.DecodeString(*key)
	if err != nil {
		return nil
	}
	return b
}

func decodeHeaders(headers []map[string][]int) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for _, h := range headers {
		for k, v := range h {
			b := make([]byte, len(v))
			for i, c := range v {
				b[i] = byte(c)
			}
			out[k] = string(b)
		}
	}
	return out
}

func decodeValue(value string) []byte {
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return []byte{}
	}
	return b
}
