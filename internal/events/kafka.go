package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stockfolio/internal/logger"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes trade events as JSON, keyed by portfolio and symbol
// so one holding's trades stay ordered within a partition.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafkaPublisher constructs a publisher backed by a kafka-go writer.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      brokers,
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		Dialer:       dialer,
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: int(kafka.RequireOne),
	})
	return &KafkaPublisher{writer: w, topic: topic}
}

// PublishTrade implements Publisher.
func (p *KafkaPublisher) PublishTrade(ctx context.Context, event TradeEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal trade event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.PortfolioID + "|" + event.Symbol),
		Value: b,
		Time:  event.ExecutedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write trade event to %s: %w", p.topic, err)
	}

	logger.Get().Debugw("trade event published",
		"topic", p.topic,
		"transaction_id", event.TransactionID,
		"symbol", event.Symbol,
		"side", event.Side,
	)
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// New returns a Kafka publisher when brokers are configured and a no-op
// publisher otherwise.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		logger.Get().Info("KAFKA_BROKERS not set, trade events disabled")
		return NopPublisher{}
	}
	logger.Get().Infow("publishing trade events", "brokers", brokers, "topic", topic)
	return NewKafkaPublisher(brokers, topic)
}
