package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Queue carrying order lifecycle events; the pedidos-worker consumes it.
const Queue = "pedidos_eventos"

// Event types.
const (
	TypeOrderCreated   = "pedido.creado"
	TypeOrderCancelled = "pedido.cancelado"
)

// OrderEvent is the JSON message published per lifecycle change.
type OrderEvent struct {
	Type    string    `json:"tipo"`
	OrderID int64     `json:"pedido_id"`
	UserID  int64     `json:"usuario_id"`
	Total   float64   `json:"total,omitempty"`
	At      time.Time `json:"fecha"`
}

// Publisher writes order events to RabbitMQ. Publishing is best effort:
// a broker failure is logged and never fails the order operation.
type Publisher struct {
	conn *amqp.Connection
}

// NewPublisher wraps an existing connection. A nil connection disables
// publishing entirely.
func NewPublisher(conn *amqp.Connection) *Publisher {
	return &Publisher{conn: conn}
}

// Publish sends one event to the order queue.
func (p *Publisher) Publish(ctx context.Context, ev OrderEvent) {
	if p == nil || p.conn == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	ch, err := p.conn.Channel()
	if err != nil {
		zap.L().Warn("open mq channel failed", zap.Error(err))
		return
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(Queue, true, false, false, false, nil); err != nil {
		zap.L().Warn("declare order event queue failed", zap.Error(err))
		return
	}

	body, err := json.Marshal(&ev)
	if err != nil {
		zap.L().Warn("marshal order event failed", zap.Error(err))
		return
	}

	err = ch.PublishWithContext(ctx, "", Queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		zap.L().Warn("publish order event failed",
			zap.String("tipo", ev.Type),
			zap.Int64("pedido_id", ev.OrderID),
			zap.Error(err))
	}
}
