package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/ClaudioCeppi83/gastro-app/internal/logger"
)

// Event types published on the order events exchange
const (
	EventOrderCreated   = "order_created"
	EventItemAdded      = "item_added"
	EventItemRemoved    = "item_removed"
	EventOrderCompleted = "order_completed"
)

// OrderEvent is the message published for every order mutation, so
// kitchen displays can follow open orders without polling the API.
type OrderEvent struct {
	Event       string    `json:"event"`
	OrderID     int       `json:"order_id"`
	OrderDishID int       `json:"order_dish_id,omitempty"`
	DishName    string    `json:"dish_name,omitempty"`
	Quantity    int       `json:"quantity,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher publishes order events to RabbitMQ. A nil Publisher is a
// no-op, which keeps the event feed strictly optional.
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new order event publisher
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishOrderEvent publishes an event to the order events exchange.
// Failures are returned to the caller for logging only; a publish
// error must never fail the order mutation that produced it.
func (p *Publisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	if p == nil {
		return nil
	}

	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect before publish: %w", err)
		}
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = p.conn.Channel().PublishWithContext(ctx,
		OrderEventsExchange,
		"",    // routing key ignored for fanout
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.Timestamp,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	return nil
}
