package pubsub

import (
	"context"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"storerating/internal/domain/service"
	"storerating/internal/errors"
)

// amqpChannel is the subset of *amqp.Channel the publisher uses.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// rabbitMQPublisher publishes persistent messages to a topic exchange.
type rabbitMQPublisher struct {
	conn       *amqp.Connection
	channel    amqpChannel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

// NewRabbitMQPublisher dials the broker and declares a durable topic exchange.
func NewRabbitMQPublisher(url, exchange, routingKey string, logger *slog.Logger) (service.EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "dial rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()

		return nil, errors.Wrap(err, "open rabbitmq channel")
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()

		return nil, errors.Wrapf(err, "declare exchange %s", exchange)
	}

	return newRabbitMQPublisherWithChannel(conn, ch, exchange, routingKey, logger), nil
}

func newRabbitMQPublisherWithChannel(conn *amqp.Connection, ch amqpChannel, exchange, routingKey string, logger *slog.Logger) *rabbitMQPublisher {
	if routingKey == "" {
		routingKey = EventTypeRatingSubmitted
	}

	return &rabbitMQPublisher{
		conn:       conn,
		channel:    ch,
		exchange:   exchange,
		routingKey: routingKey,
		logger:     logger,
	}
}

func (p *rabbitMQPublisher) PublishRatingSubmitted(ctx context.Context, event *service.RatingSubmittedEvent) error {
	body, _, attrs, err := encodeRatingSubmitted(event)
	if err != nil {
		return err
	}

	headers := amqp.Table{}
	for k, v := range attrs {
		headers[k] = v
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		Timestamp:     time.Now().UTC(),
		Type:          EventTypeRatingSubmitted,
		CorrelationId: event.RequestID,
		Headers:       headers,
		Body:          body,
	})
	if err != nil {
		return errors.Wrap(err, "publish to rabbitmq")
	}

	p.logger.DebugContext(ctx, "[RabbitMQ] Event published",
		slog.String("exchange", p.exchange),
		slog.String("store_id", event.StoreID),
	)

	return nil
}

func (p *rabbitMQPublisher) Close() error {
	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}

	return errors.Join(errs...)
}
