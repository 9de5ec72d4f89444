package main

import (
	"encoding/json"
	"fmt"

	radix "github.com/mediocregopher/radix/v3"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/config"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/events"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/infra/mq"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/infra/redis"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/pkg/log"
)

const (
	// Per-day counters kept in Redis for the ops dashboard.
	redisCreatedKey   = "pedidos:creados:%s"    // date YYYY-MM-DD
	redisCancelledKey = "pedidos:cancelados:%s" // date YYYY-MM-DD
	counterExpire     = "604800"                // keep a week of counters
)

func main() {
	cfg, err := config.Load("./config")
	if err != nil {
		panic(err)
	}

	log.InitLogger(cfg.Log.Level, cfg.Log.Development)
	defer log.Sync()

	mqConn := mq.Init(&cfg.RabbitMQ)
	if mqConn == nil {
		zap.L().Fatal("rabbitmq no disponible")
	}
	redisClient := redis.Init(&cfg.Redis)

	ch, err := mqConn.Channel()
	if err != nil {
		zap.L().Fatal("abriendo canal", zap.Error(err))
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(events.Queue, true, false, false, false, nil); err != nil {
		zap.L().Fatal("declarando cola", zap.Error(err))
	}

	msgs, err := ch.Consume(events.Queue, "", false, false, false, false, nil)
	if err != nil {
		zap.L().Fatal("consumiendo cola", zap.Error(err))
	}

	zap.L().Info("worker de pedidos iniciado", zap.String("cola", events.Queue))

	for d := range msgs {
		processDelivery(redisClient, d)
	}
}

func processDelivery(redisClient radix.Client, d amqp.Delivery) {
	var ev events.OrderEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		zap.L().Warn("mensaje inválido", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}
	handleEvent(redisClient, ev)
	if err := d.Ack(false); err != nil {
		zap.L().Warn("ack fallido", zap.Error(err))
	}
}

func handleEvent(redisClient radix.Client, ev events.OrderEvent) {
	zap.L().Info("evento de pedido",
		zap.String("tipo", ev.Type),
		zap.Int64("pedido_id", ev.OrderID),
		zap.Int64("usuario_id", ev.UserID),
		zap.Float64("total", ev.Total))

	if redisClient == nil {
		return
	}

	var key string
	switch ev.Type {
	case events.TypeOrderCreated:
		key = fmt.Sprintf(redisCreatedKey, ev.At.Format("2006-01-02"))
	case events.TypeOrderCancelled:
		key = fmt.Sprintf(redisCancelledKey, ev.At.Format("2006-01-02"))
	default:
		return
	}

	var count int
	if err := redisClient.Do(radix.Cmd(&count, "INCR", key)); err != nil {
		zap.L().Warn("incrementando contador", zap.String("key", key), zap.Error(err))
		return
	}
	if count == 1 {
		if err := redisClient.Do(radix.Cmd(nil, "EXPIRE", key, counterExpire)); err != nil {
			zap.L().Warn("fijando expiración", zap.String("key", key), zap.Error(err))
		}
	}
}
