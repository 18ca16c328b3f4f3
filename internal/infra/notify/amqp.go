package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"studio-booking/internal/usecase/commands"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("studio-booking/infra/notify")

// AMQPNotifier publishes events to a topic exchange, routed by event type.
type AMQPNotifier struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
	logger   *slog.Logger
}

func NewAMQPNotifier(url, exchange string, logger *slog.Logger) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPNotifier{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

func (n *AMQPNotifier) Publish(ctx context.Context, event commands.Event) error {
	ctx, span := tracer.Start(ctx, "notify.Publish", trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination", n.exchange),
			attribute.String("event.type", string(event.Type)),
		))
	defer span.End()

	msg, err := newPublishing(event)
	if err != nil {
		span.RecordError(err)
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.ch.PublishWithContext(ctx, n.exchange, RoutingKey(event), false, false, msg); err != nil {
		span.RecordError(err)
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	n.logger.Debug("event published", slog.String("routing_key", RoutingKey(event)))
	return nil
}

func (n *AMQPNotifier) Close() error {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

// RoutingKey is the event type, e.g. "booking.confirmed", so consumers can
// bind to "booking.*".
func RoutingKey(event commands.Event) string {
	return string(event.Type)
}

func newPublishing(event commands.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode %s: %w", event.Type, err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	}
	if event.BookingID != uuid.Nil {
		msg.MessageId = event.BookingID.String() + ":" + string(event.Type)
	}
	return msg, nil
}
