package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"cargomatch/internal/domain/service"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

const defaultRabbitMQQueue = "cargomatch.notifications"

// rabbitMQPublisher implements EventPublisher on a durable RabbitMQ queue.
// The worker consumes the same envelope the push endpoint receives.
type rabbitMQPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *slog.Logger

	mu sync.Mutex // amqp channels are not safe for concurrent publishes
}

// NewRabbitMQPublisher dials the broker and declares the notification queue.
func NewRabbitMQPublisher(url, queue string, logger *slog.Logger) (service.EventPublisher, error) {
	if queue == "" {
		queue = defaultRabbitMQQueue
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()

		return nil, errors.Wrap(err, "failed to open channel")
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-deleted
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		ch.Close()
		conn.Close()

		return nil, errors.Wrapf(err, "failed to declare queue %s", queue)
	}

	logger.Info("RabbitMQ publisher initialized", slog.String("queue", queue))

	return &rabbitMQPublisher{
		conn:    conn,
		channel: ch,
		queue:   queue,
		logger:  logger,
	}, nil
}

// PublishNotificationEvent publishes a persistent JSON message to the queue.
func (p *rabbitMQPublisher) PublishNotificationEvent(ctx context.Context, event *service.NotificationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	headers := amqp.Table{
		"notification_id": event.NotificationID,
		"user_id":         event.UserID,
		"type":            event.Type,
	}
	if event.RequestID != "" {
		headers["request_id"] = event.RequestID
	}

	msg := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     event.NotificationID,
		CorrelationId: event.RequestID,
		Timestamp:     time.Now().UTC(),
		Headers:       headers,
		Body:          body,
	}

	p.mu.Lock()
	err = p.channel.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		msg,
	)
	p.mu.Unlock()
	if err != nil {
		return errors.Wrap(err, "failed to publish to RabbitMQ")
	}

	p.logger.InfoContext(ctx, "[RabbitMQ] Event published",
		slog.String("notification_id", event.NotificationID),
		slog.String("queue", p.queue),
	)

	return nil
}

// Close closes the channel and the connection.
func (p *rabbitMQPublisher) Close() error {
	var closeErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			closeErr = err
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && closeErr == nil {
			closeErr = err
		}
	}

	return errors.WithStack(closeErr)
}
