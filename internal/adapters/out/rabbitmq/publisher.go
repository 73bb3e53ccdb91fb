package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventPublisher implements ports.EventPublisher on top of the RabbitMQ client.
// Messages are persistent JSON; callers treat publish failures as log-only.
type EventPublisher struct {
	client *Client
}

// NewEventPublisher creates an event publisher over an established client.
func NewEventPublisher(client *Client) *EventPublisher {
	return &EventPublisher{client: client}
}

// orderPlacedMessage is the wire shape of an order placement event.
type orderPlacedMessage struct {
	OrderID    string   `json:"order_id"`
	BuyerID    string   `json:"buyer_id"`
	SellerID   string   `json:"seller_id"`
	ProductIDs []string `json:"product_ids"`
	Quantity   string   `json:"quantity"`
	PlacedAt   string   `json:"placed_at"`
}

// orderStatusMessage is the wire shape of a status transition event.
type orderStatusMessage struct {
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	ChangedAt string `json:"changed_at"`
}

// PublishOrderPlaced announces a freshly placed order on the topic exchange.
func (p *EventPublisher) PublishOrderPlaced(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	productIDs := make([]string, 0, len(aggregate.ProductIDs()))
	for _, id := range aggregate.ProductIDs() {
		productIDs = append(productIDs, id.String())
	}

	return p.publish(ctx, OrderPlacedRoutingKey, orderPlacedMessage{
		OrderID:    aggregate.ID().String(),
		BuyerID:    aggregate.Buyer().String(),
		SellerID:   aggregate.Seller().String(),
		ProductIDs: productIDs,
		Quantity:   aggregate.Quantity(),
		PlacedAt:   time.Now().UTC().Format(time.RFC3339),
	})
}

// PublishOrderStatusChanged announces an applied status transition.
func (p *EventPublisher) PublishOrderStatusChanged(
	ctx context.Context, aggregate *order.Order, newStatus order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return p.publish(ctx, OrderStatusRoutingKey, orderStatusMessage{
		OrderID:   aggregate.ID().String(),
		Status:    newStatus.String(),
		ChangedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (p *EventPublisher) publish(ctx context.Context, routingKey string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	if err = p.client.channel.PublishWithContext(
		ctx,
		p.client.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("publish to exchange %s with routing key %s: %w",
			p.client.exchange, routingKey, err)
	}

	return nil
}
