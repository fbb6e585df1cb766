package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"aerobook/pkg/logger"

	"github.com/IBM/sarama"
)

// Publisher is the message-passing side-channel the core publishes
// booking/payment/ticket events to. Publishing is fire-and-forget from the
// caller's perspective: failures are reported but must never roll back the
// transaction that produced the event.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
	Close() error
}

// KafkaConfig contains configuration for the Kafka publisher
type KafkaConfig struct {
	Brokers         []string
	RetryMax        int
	TimeoutMs       int
	RequiredAcks    sarama.RequiredAcks
	CompressionType sarama.CompressionCodec
	MaxMessageBytes int
}

// DefaultKafkaConfig returns a default publisher configuration
func DefaultKafkaConfig(brokers []string) *KafkaConfig {
	return &KafkaConfig{
		Brokers:         brokers,
		RetryMax:        3,
		TimeoutMs:       10000, // 10 seconds
		RequiredAcks:    sarama.WaitForAll,
		CompressionType: sarama.CompressionSnappy,
		MaxMessageBytes: 1000000, // 1MB
	}
}

// KafkaPublisher publishes events to Kafka
type KafkaPublisher struct {
	producer sarama.SyncProducer
	log      *logger.Logger
}

// NewKafkaPublisher creates a new Kafka publisher
func NewKafkaPublisher(config *KafkaConfig) (Publisher, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps events of one booking on one partition.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaPublisher{
		producer: producer,
		log:      logger.GetDefault(),
	}, nil
}

// Publish serializes the payload and sends it to the topic.
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	messageBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(partitionKey(payload)),
		Value:     sarama.ByteEncoder(messageBytes),
		Timestamp: time.Now().UTC(),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish event to Kafka: %w", err)
	}

	p.log.Debug("event published",
		"topic", topic,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// partitionKey extracts the booking correlator so one booking's events stay
// ordered.
func partitionKey(payload interface{}) string {
	if event, ok := payload.(map[string]interface{}); ok {
		if bookingID, ok := event["booking_id"].(string); ok {
			return bookingID
		}
		if orderID, ok := event["order_id"].(string); ok {
			return orderID
		}
	}
	return ""
}

// NoopPublisher discards events when Kafka is disabled.
type NoopPublisher struct{}

func NewNoopPublisher() Publisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
