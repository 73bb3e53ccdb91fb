// Package rabbitmq publishes order lifecycle events to a RabbitMQ topic
// exchange. Downstream consumers (analytics, external courier integrations)
// bind their own queues; this side only guarantees the exchange and the
// default queues exist.
package rabbitmq

import (
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// Queue names
	OrderPlacedQueue = "order_placed_queue"
	OrderStatusQueue = "order_status_queue"

	// Routing keys
	OrderPlacedRoutingKey = "order.placed"
	OrderStatusRoutingKey = "order.status"
)

const dialAttempts = 5

// Client is a wrapper around a RabbitMQ connection with the order exchange
// and its default queues declared.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewClient connects to RabbitMQ with retry and declares the topic exchange
// plus the default order queues.
func NewClient(url, exchange string, logger *slog.Logger) (*Client, error) {
	if exchange == "" {
		return nil, fmt.Errorf("exchange name cannot be empty")
	}

	var conn *amqp.Connection
	var err error

	for i := range dialAttempts {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		retryIn := time.Duration(i*i)*time.Second + time.Second
		logger.Warn("rabbitmq connection failed, retrying",
			"retry_in", retryIn.String(), "error", err)
		time.Sleep(retryIn)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq after retries: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	queues := []string{OrderPlacedQueue, OrderStatusQueue}
	routingKeys := []string{OrderPlacedRoutingKey, OrderStatusRoutingKey}

	for i, queueName := range queues {
		q, queueErr := channel.QueueDeclare(
			queueName, // name
			true,      // durable
			false,     // delete when unused
			false,     // exclusive
			false,     // no-wait
			nil,       // arguments
		)
		if queueErr != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("declare queue %s: %w", queueName, queueErr)
		}

		if bindErr := channel.QueueBind(
			q.Name,         // queue name
			routingKeys[i], // routing key
			exchange,       // exchange
			false,          // no-wait
			nil,            // arguments
		); bindErr != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("bind queue %s to exchange %s: %w", queueName, exchange, bindErr)
		}
	}

	logger.Info("rabbitmq ready", "exchange", exchange)

	return &Client{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			return err
		}
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
