package mq

import (
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/config"
)

var (
	conn *amqp.Connection
	once sync.Once
)

// Init dials the shared RabbitMQ connection. The broker being down is not
// fatal: order events are best effort and the publisher tolerates nil.
func Init(cfg *config.RabbitMQConfig) *amqp.Connection {
	once.Do(func() {
		c, err := amqp.Dial(cfg.URL)
		if err != nil {
			zap.L().Warn("rabbitmq unavailable, order events disabled", zap.Error(err))
			return
		}
		conn = c
	})
	return conn
}

// Conn returns the shared connection, nil when the broker was unreachable.
func Conn() *amqp.Connection {
	return conn
}
