package store

import (
	"fmt"
	"time"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/jsoncodec"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/message"
)

// item is the DynamoDB layout of an event. Records with a pickup location are
// partitioned by it; everything else is partitioned by topic. The sort key is
// the Kafka coordinate so a redelivered record overwrites itself.
type item struct {
	PK        string  `dynamodbav:"pk"`
	SK        string  `dynamodbav:"sk"`
	ID        string  `dynamodbav:"id"`
	Topic     string  `dynamodbav:"topic"`
	Partition int     `dynamodbav:"partition"`
	Offset    int64   `dynamodbav:"offset"`
	Timestamp int64   `dynamodbav:"timestamp"`
	Key       *string `dynamodbav:"key,omitempty"`

	PULocationID interface{} `dynamodbav:"PULocationID,omitempty"`
	DOLocationID interface{} `dynamodbav:"DOLocationID,omitempty"`

	PickupLongitude  *float64 `dynamodbav:"pickup_longitude,omitempty"`
	PickupLatitude   *float64 `dynamodbav:"pickup_latitude,omitempty"`
	DropoffLongitude *float64 `dynamodbav:"dropoff_longitude,omitempty"`
	DropoffLatitude  *float64 `dynamodbav:"dropoff_latitude,omitempty"`

	PickupDatetime  string `dynamodbav:"pickup_datetime"`
	DropoffDatetime string `dynamodbav:"dropoff_datetime"`

	Data          string `dynamodbav:"data"`
	ProcessedAt   string `dynamodbav:"processedAt"`
	TTL           int64  `dynamodbav:"ttl"`
	Version       int    `dynamodbav:"_version"`
	LastChangedAt int64  `dynamodbav:"_lastChangedAt"`
}

func newItem(env message.Envelope, now time.Time, retention time.Duration) (item, error) {
	data := env.Data
	if data == nil {
		data = message.Decoded{}
	}
	encoded, err := jsoncodec.Marshal(data)
	if err != nil {
		return item{}, fmt.Errorf("failed to encode data of %s: %w", env.EventID(), err)
	}

	unix := now.Unix()
	it := item{
		SK:               fmt.Sprintf("P#%d#O#%d", env.Partition, env.Offset),
		ID:               env.EventID(),
		Topic:            env.Topic,
		Partition:        env.Partition,
		Offset:           env.Offset,
		Timestamp:        unix,
		Key:              env.Key,
		PULocationID:     field(data, "PULocationID"),
		DOLocationID:     field(data, "DOLocationID"),
		PickupLongitude:  float(data, "pickup_longitude"),
		PickupLatitude:   float(data, "pickup_latitude"),
		DropoffLongitude: float(data, "dropoff_longitude"),
		DropoffLatitude:  float(data, "dropoff_latitude"),
		PickupDatetime:   datetime(data, "tpep_pickup_datetime"),
		DropoffDatetime:  datetime(data, "tpep_dropoff_datetime"),
		Data:             string(encoded),
		ProcessedAt:      env.ProcessedAt,
		TTL:              unix + int64(retention/time.Second),
		Version:          1,
		LastChangedAt:    unix,
	}
	if env.Timestamp != nil {
		it.Timestamp = *env.Timestamp
	}
	if it.ProcessedAt == "" {
		it.ProcessedAt = now.UTC().Format("2006-01-02T15:04:05.000000")
	}

	if it.PULocationID != nil {
		it.PK = fmt.Sprintf("LOC#%v", it.PULocationID)
	} else {
		it.PK = "TOPIC#" + env.Topic
	}
	return it, nil
}

// field returns data[name], or nil when it is absent.
func field(data message.Decoded, name string) interface{} {
	return data[name]
}

func float(data message.Decoded, name string) *float64 {
	var f float64
	switch v := field(data, name).(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return nil
	}
	return &f
}

func datetime(data message.Decoded, name string) string {
	switch v := field(data, name).(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}
