package pubsub

import (
	"context"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"storerating/internal/domain/service"
	"storerating/internal/errors"
)

// kafkaWriter is the subset of *kafka.Writer the publisher uses.
type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer kafkaWriter
	logger *slog.Logger
}

// NewKafkaPublisher writes events to topic, keyed by store id.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) service.EventPublisher {
	return newKafkaPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}, logger)
}

func newKafkaPublisherWithWriter(w kafkaWriter, logger *slog.Logger) *kafkaPublisher {
	return &kafkaPublisher{writer: w, logger: logger}
}

func (p *kafkaPublisher) PublishRatingSubmitted(ctx context.Context, event *service.RatingSubmittedEvent) error {
	body, key, attrs, err := encodeRatingSubmitted(event)
	if err != nil {
		return err
	}

	headers := make([]kafka.Header, 0, len(attrs))
	for k, v := range attrs {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(key),
		Value:   body,
		Headers: headers,
	}); err != nil {
		return errors.Wrap(err, "write kafka message")
	}

	p.logger.DebugContext(ctx, "[Kafka] Event published", slog.String("store_id", event.StoreID))

	return nil
}

func (p *kafkaPublisher) Close() error {
	return errors.WithStack(p.writer.Close())
}
