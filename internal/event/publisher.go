package event

import (
	"encoding/json"
	"time"

	"sprint-service/internal/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Routing keys for the practice domain.
const (
	SessionStarted   = "practice.session.started"
	SessionFinalized = "practice.session.finalized"
	AttemptRecorded  = "practice.attempt.recorded"
)

// Publisher emits advisory domain events on a topic exchange. Event delivery
// is best effort: consumers get signals, the document store stays the source
// of truth. A nil *Publisher is valid and publishes nothing, so wiring can
// skip RabbitMQ entirely.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewPublisher(amqpURL, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends one event with the routing key set to its type. Failures are
// logged, never returned to request handlers.
func (p *Publisher) Publish(eventType string, payload interface{}) {
	if p == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"type":      eventType,
		"payload":   payload,
		"timestamp": time.Now().UTC(),
	})
	if err != nil {
		logger.Log.Error("marshal event", zap.String("type", eventType), zap.Error(err))
		return
	}

	err = p.channel.Publish(p.exchange, eventType, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logger.Log.Error("publish event", zap.String("type", eventType), zap.Error(err))
		return
	}
	logger.Log.Debug("event published", zap.String("type", eventType))
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
