package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"github.com/jasonsal23/offroad-paracord/internal/dal/rabbitmq"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/order"
)

const (
	EventOrderConfirmed = "order.confirmed"
	EventOrderShipped   = "order.shipped"
)

// Publisher emits order lifecycle events. Publishing is best effort: callers
// log failures and carry on, a lost event never fails the customer request.
type Publisher interface {
	OrderConfirmed(ctx context.Context, o *order.Order) error
	OrderShipped(ctx context.Context, o *order.Order) error
}

// Event is the wire shape of an order lifecycle notification.
type Event struct {
	Event       string       `json:"event"`
	OrderNumber string       `json:"orderNumber"`
	Status      order.Status `json:"status"`
	TotalCents  int64        `json:"totalCents"`
	OccurredAt  time.Time    `json:"occurredAt"`
}

// RabbitPublisher publishes order events to a RabbitMQ queue. Publishing
// happens inline with the request; there are no background workers here.
type RabbitPublisher struct {
	client     *rabbitmq.Client
	exchange   string
	routingKey string
}

func NewRabbitPublisher(client *rabbitmq.Client) (*RabbitPublisher, error) {
	routingKey := viper.GetString("rabbitmq.events.routing_key")
	if routingKey == "" {
		routingKey = "order-events"
	}

	if _, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    routingKey,
		Durable: true,
	}); err != nil {
		return nil, fmt.Errorf("failed to declare events queue: %w", err)
	}

	return &RabbitPublisher{
		client:     client,
		exchange:   viper.GetString("rabbitmq.events.exchange"),
		routingKey: routingKey,
	}, nil
}

func (p *RabbitPublisher) OrderConfirmed(ctx context.Context, o *order.Order) error {
	return p.publish(ctx, EventOrderConfirmed, o)
}

func (p *RabbitPublisher) OrderShipped(ctx context.Context, o *order.Order) error {
	return p.publish(ctx, EventOrderShipped, o)
}

func (p *RabbitPublisher) publish(_ context.Context, event string, o *order.Order) error {
	body, err := json.Marshal(Event{
		Event:       event,
		OrderNumber: o.Number,
		Status:      o.Status,
		TotalCents:  o.TotalCents,
		OccurredAt:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	err = p.client.Channel().Publish(
		p.exchange,
		p.routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	return nil
}
