package requestlog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/sony/gobreaker"
)

// KafkaSinkConfig contains configuration for the Kafka request-log sink
type KafkaSinkConfig struct {
	Brokers      []string
	Topic        string
	RetryMax     int
	TimeoutMs    int
	RequiredAcks sarama.RequiredAcks
}

func DefaultKafkaSinkConfig() *KafkaSinkConfig {
	return &KafkaSinkConfig{
		Brokers:      []string{"localhost:9092"},
		Topic:        "request-logs",
		RetryMax:     3,
		TimeoutMs:    5000,
		RequiredAcks: sarama.WaitForLocal,
	}
}

// KafkaSink publishes entries to a topic. A circuit breaker stops publishing
// for a while after repeated broker failures.
type KafkaSink struct {
	producer sarama.SyncProducer
	topic    string
	breaker  *gobreaker.CircuitBreaker
}

func NewKafkaSink(config *KafkaSinkConfig) (*KafkaSink, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return NewKafkaSinkWithProducer(producer, config.Topic), nil
}

// NewKafkaSinkWithProducer wraps an existing producer.
func NewKafkaSinkWithProducer(producer sarama.SyncProducer, topic string) *KafkaSink {
	settings := gobreaker.Settings{
		Name:     "request-log-kafka",
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}
	return &KafkaSink{
		producer: producer,
		topic:    topic,
		breaker:  gobreaker.NewCircuitBreaker(settings),
	}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Write(ctx context.Context, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal request log: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     s.topic,
		Key:       sarama.StringEncoder(entry.Path),
		Value:     sarama.ByteEncoder(payload),
		Headers:   headersFor(entry),
		Timestamp: entry.Timestamp,
	}

	_, err = s.breaker.Execute(func() (interface{}, error) {
		_, _, err := s.producer.SendMessage(message)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("failed to publish request log: %w", err)
	}
	return nil
}

func (s *KafkaSink) State() gobreaker.State {
	return s.breaker.State()
}

func (s *KafkaSink) Close() error {
	if s.producer == nil {
		return nil
	}
	if err := s.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

func headersFor(entry Entry) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("log_id"), Value: []byte(entry.ID)},
		{Key: []byte("method"), Value: []byte(entry.Method)},
		{Key: []byte("status_code"), Value: []byte(strconv.Itoa(entry.StatusCode))},
		{Key: []byte("is_agent"), Value: []byte(strconv.FormatBool(entry.IsAgent))},
		{Key: []byte("producer"), Value: []byte("tixmarket-requestlog")},
	}
}
