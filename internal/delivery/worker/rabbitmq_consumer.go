package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"cargomatch/config"
	"cargomatch/internal/delivery"
	"cargomatch/internal/delivery/worker/handler"
	"cargomatch/internal/domain/constants"
	"cargomatch/internal/domain/service"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

const (
	defaultRabbitMQQueue = "cargomatch.notifications"
	consumerPrefetch     = 16
	consumerTag          = "cargomatch-notifyworker"
)

// ConsumerParams holds dependencies for the RabbitMQ consumer.
type ConsumerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	PushHandler *handler.PushHandler
}

type rabbitMQConsumer struct {
	url     string
	queue   string
	enabled bool
	handler *handler.PushHandler
	logger  *slog.Logger

	mu       sync.Mutex
	conn     *amqp.Connection
	stopping bool
}

// NewRabbitMQConsumer consumes the notification queue when RabbitMQ is the
// configured broker. With any other broker Serve returns immediately.
func NewRabbitMQConsumer(params ConsumerParams) delivery.Delivery {
	c := &rabbitMQConsumer{
		handler: params.PushHandler,
		logger:  params.Logger.With(slog.String("component", "rabbitmq_consumer")),
		queue:   defaultRabbitMQQueue,
	}

	if cfg := params.Cfg.PubSub; cfg != nil && cfg.Provider == constants.PubSubProviderRabbitMQ {
		c.enabled = true
		c.url = cfg.RabbitMQURL
		if cfg.RabbitMQQueue != "" {
			c.queue = cfg.RabbitMQQueue
		}
	}

	params.Lc.Append(fx.Hook{
		OnStop: c.stop,
	})

	return c
}

// Serve consumes until the connection closes. A broker-side close is an error
// so the process shuts down and gets restarted.
func (c *rabbitMQConsumer) Serve(ctx context.Context) error {
	if !c.enabled {
		return nil
	}

	conn, err := amqp.Dial(c.url)
	if err != nil {
		return errors.Wrap(err, "failed to connect to RabbitMQ")
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()

		return errors.Wrap(err, "failed to open channel")
	}

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		conn.Close()

		return errors.Wrapf(err, "failed to declare queue %s", c.queue)
	}
	if err := ch.Qos(consumerPrefetch, 0, false); err != nil {
		conn.Close()

		return errors.Wrap(err, "failed to set prefetch")
	}

	msgs, err := ch.Consume(c.queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		conn.Close()

		return errors.Wrapf(err, "failed to consume queue %s", c.queue)
	}

	c.logger.Info("Consuming notification queue", slog.String("queue", c.queue))

	for msg := range msgs {
		c.handle(ctx, msg)
	}

	c.mu.Lock()
	stopping := c.stopping
	c.mu.Unlock()
	if stopping {
		return nil
	}

	return errors.New("RabbitMQ delivery channel closed")
}

func (c *rabbitMQConsumer) handle(ctx context.Context, msg amqp.Delivery) {
	var event service.NotificationEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		c.logger.Error("Dropping unparseable message", slog.String("message_id", msg.MessageId), slog.Any("error", err))
		c.settle(msg.Nack(false, false))

		return
	}

	err := c.handler.Process(ctx, msg.CorrelationId, &event)
	switch {
	case err == nil:
		c.settle(msg.Ack(false))
	case handler.Retryable(err) && !msg.Redelivered:
		c.settle(msg.Nack(false, true))
	default:
		// A second transient failure is dropped rather than looping forever.
		c.settle(msg.Nack(false, false))
	}
}

func (c *rabbitMQConsumer) settle(err error) {
	if err != nil {
		c.logger.Warn("Failed to settle message", slog.Any("error", err))
	}
}

func (c *rabbitMQConsumer) stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopping = true
	if c.conn == nil || c.conn.IsClosed() {
		return nil
	}

	c.logger.Info("Stopping RabbitMQ consumer")

	return errors.WithStack(c.conn.Close())
}
