package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	defaultQueueSize      = 256
	defaultPublishTimeout = 5 * time.Second
)

type outboundMessage struct {
	topic string
	key   string
	value []byte
}

// PaymentEventProducer publishes events to Kafka through a bounded in-memory
// queue drained by a background sender. Publish never blocks the caller: when
// the queue is full or the broker is unreachable the event is dropped and the
// loss logged, so the webhook response path is never held up by the bus.
type PaymentEventProducer struct {
	writer  *kafka.Writer
	queue   chan outboundMessage
	done    chan struct{}
	timeout time.Duration
	logger  *zap.Logger
}

func NewPaymentEventProducer(brokers []string, logger *zap.Logger) *PaymentEventProducer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	p := &PaymentEventProducer{
		writer:  w,
		queue:   make(chan outboundMessage, defaultQueueSize),
		done:    make(chan struct{}),
		timeout: defaultPublishTimeout,
		logger:  logger,
	}
	go p.sendLoop()
	logger.Info("Kafka event producer initialized", zap.Strings("brokers", brokers))
	return p
}

// Publish enqueues an event for delivery and returns immediately.
func (p *PaymentEventProducer) Publish(topic, key string, event interface{}) {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal outbound event",
			zap.String("topic", topic),
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}

	select {
	case p.queue <- outboundMessage{topic: topic, key: key, value: value}:
	default:
		p.logger.Error("Outbound event queue full, dropping event",
			zap.String("topic", topic),
			zap.String("key", key),
		)
	}
}

func (p *PaymentEventProducer) sendLoop() {
	defer close(p.done)
	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		err := p.writer.WriteMessages(ctx, kafka.Message{
			Topic: msg.topic,
			Key:   []byte(msg.key),
			Value: msg.value,
		})
		cancel()
		if err != nil {
			p.logger.Error("Failed to publish event, dropping",
				zap.String("topic", msg.topic),
				zap.String("key", msg.key),
				zap.Error(err),
			)
			continue
		}
		p.logger.Info("Event published",
			zap.String("topic", msg.topic),
			zap.String("key", msg.key),
		)
	}
}

// Close drains the queue, stops the sender and closes the writer.
func (p *PaymentEventProducer) Close() {
	close(p.queue)
	<-p.done
	_ = p.writer.Close()
	p.logger.Info("Kafka event producer closed")
}
