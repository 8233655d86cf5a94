package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"

	"nodefit/pkg/logger"
)

// DefaultQueue receives every domain event.
const DefaultQueue = "nodefit_events"

// Envelope is the JSON body of every published message.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *zap.Logger
	// amqp channels are not safe for concurrent publishing.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the event
// queue.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	queue := cfg.Queue
	if queue == "" {
		queue = DefaultQueue
	}
	log = logger.OrNop(log)

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declare(ch, queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info("RabbitMQ client connected", zap.String("queue", queue))
	return &Client{conn: conn, channel: ch, queue: queue, logger: log}, nil
}

func declare(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", queue, err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Encode wraps payload in an Envelope and marshals it.
func Encode(eventType string, payload interface{}, at time.Time) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return json.Marshal(Envelope{Type: eventType, OccurredAt: at.UTC(), Payload: raw})
}

// Publish sends a persistent domain event to the queue.
func (c *Client) Publish(ctx context.Context, eventType string, payload interface{}) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	now := time.Now()
	body, err := Encode(eventType, payload, now)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         eventType,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    now,
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	c.logger.Debug("event published", zap.String("event", eventType))
	return nil
}

// Handler processes one decoded event.
type Handler func(Envelope) error

// Consume starts delivering events to handler until ctx is done. Messages
// that cannot be decoded are rejected without requeue; handler failures
// are requeued.
func (c *Client) Consume(ctx context.Context, handler Handler) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("waiting for events", zap.String("queue", c.queue))
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			HandleDelivery(msg, handler, c.logger)
		}
	}
}

// HandleDelivery decodes msg, runs handler and acknowledges accordingly.
func HandleDelivery(msg amqp.Delivery, handler Handler, log *zap.Logger) {
	log = logger.OrNop(log)

	var env Envelope
	if err := json.Unmarshal(msg.Body, &env); err != nil {
		log.Warn("dropping undecodable event", zap.Uint64("delivery_tag", msg.DeliveryTag), zap.Error(err))
		if err := msg.Reject(false); err != nil {
			log.Error("failed to reject event", zap.Error(err))
		}
		return
	}

	if err := handler(env); err != nil {
		log.Warn("event handler failed", zap.String("event", env.Type), zap.Error(err))
		if err := msg.Nack(false, true); err != nil {
			log.Error("failed to nack event", zap.Error(err))
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		log.Error("failed to ack event", zap.Error(err))
	}
}

// LogHandler returns a Handler that writes every event to log.
func LogHandler(log *zap.Logger) Handler {
	log = logger.OrNop(log)
	return func(env Envelope) error {
		log.Info("event received",
			zap.String("event", env.Type),
			zap.Time("occurred_at", env.OccurredAt),
			zap.ByteString("payload", env.Payload))
		return nil
	}
}
