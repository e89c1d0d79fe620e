package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	Exchange = "herbanusa.events"

	RoutingKeyOrderCreated = "order.created.v1"
	RoutingKeyOrderStatus  = "order.status.v1"
)

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitNotifier struct {
	ch      Channel
	timeout time.Duration
}

// NewRabbitNotifier declares the topic exchange so publishing never fails
// on missing infrastructure.
func NewRabbitNotifier(ch Channel) (*RabbitNotifier, error) {
	if err := ch.ExchangeDeclare(Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", Exchange, err)
	}
	return &RabbitNotifier{ch: ch, timeout: 3 * time.Second}, nil
}

// DialRabbit connects to url and opens a publishing channel. The returned
// close func releases both.
func DialRabbit(url string) (*RabbitNotifier, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	n, err := NewRabbitNotifier(ch)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	closeFn := func() error {
		_ = ch.Close()
		return conn.Close()
	}
	return n, closeFn, nil
}

func RoutingKey(kind Kind) string {
	switch kind {
	case KindOrderCreated:
		return RoutingKeyOrderCreated
	case KindOrderStatus:
		return RoutingKeyOrderStatus
	default:
		return string(kind)
	}
}

func (r *RabbitNotifier) Notify(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", ev.Kind, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err = r.ch.PublishWithContext(
		pubCtx,
		Exchange,
		RoutingKey(ev.Kind),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.ID,
			Timestamp:    ev.CreatedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", ev.Kind, err)
	}
	return nil
}
