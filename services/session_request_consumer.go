package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"payments-gateway/models"
	"payments-gateway/repository"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventPublisher emits events onto the outbound bus. Implementations are
// fire-and-forget: they must not block and must absorb transport failures.
type EventPublisher interface {
	Publish(topic, key string, event interface{})
}

const sessionCreateTimeout = 15 * time.Second

// SessionRequestConsumer serves checkout-session requests arriving over the
// bus instead of HTTP. Each message is a CheckoutSessionRequest; the outcome
// is published to the session events topic with the checkout URL (or the
// failure) so the requesting service can react.
type SessionRequestConsumer struct {
	reader      *kafkago.Reader
	processor   PaymentProcessor
	publisher   EventPublisher
	repo        repository.PaymentRecordRepository // nil when the audit store is disabled
	resultTopic string
	logger      *zap.Logger
}

func NewSessionRequestConsumer(
	brokers []string,
	topic, groupID, resultTopic string,
	processor PaymentProcessor,
	publisher EventPublisher,
	repo repository.PaymentRecordRepository,
	logger *zap.Logger,
) *SessionRequestConsumer {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		logger.Fatal("SessionRequestConsumer topic is empty")
	}
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1e3,
		MaxBytes: 10e6,
	})
	logger.Info("SessionRequestConsumer initialized",
		zap.String("topic", topic),
		zap.Strings("brokers", brokers),
		zap.String("group_id", groupID),
	)
	return &SessionRequestConsumer{
		reader:      r,
		processor:   processor,
		publisher:   publisher,
		repo:        repo,
		resultTopic: resultTopic,
		logger:      logger,
	}
}

func (c *SessionRequestConsumer) Start(ctx context.Context) {
	c.logger.Info("Starting SessionRequestConsumer")
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("SessionRequestConsumer stopped")
				return
			}
			c.logger.Warn("Error reading session request", zap.Error(err))
			continue
		}
		c.processMessage(ctx, m.Value)
	}
}

func (c *SessionRequestConsumer) processMessage(ctx context.Context, value []byte) {
	var req models.CheckoutSessionRequest
	if err := json.Unmarshal(value, &req); err != nil {
		c.logger.Warn("Invalid session request JSON", zap.Error(err), zap.String("payload", string(value)))
		return
	}
	if req.OrderID == "" || req.Currency == "" || len(req.Items) == 0 {
		c.logger.Warn("Incomplete session request",
			zap.String("order_id", req.OrderID),
			zap.Int("items", len(req.Items)),
		)
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, sessionCreateTimeout)
	result, err := c.processor.CreateCheckoutSession(callCtx, req)
	cancel()
	if err != nil {
		c.logger.Warn("Stripe checkout session creation failed",
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
		c.publisher.Publish(c.resultTopic, req.OrderID, models.CheckoutSessionEvent{
			Type:      "checkout.session.failed",
			OrderID:   req.OrderID,
			Error:     err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	c.logger.Info("Stripe checkout session created",
		zap.String("order_id", req.OrderID),
		zap.String("session_url", result.URL),
	)

	if c.repo != nil {
		record := NewSessionRecord(req, result)
		if err := c.repo.Create(ctx, record); err != nil {
			c.logger.Error("Failed to write payment audit record",
				zap.String("order_id", req.OrderID),
				zap.Error(err),
			)
		}
	}

	c.publisher.Publish(c.resultTopic, req.OrderID, models.CheckoutSessionEvent{
		Type:        "checkout.session.created",
		OrderID:     req.OrderID,
		CheckoutURL: result.URL,
		Timestamp:   time.Now().UTC(),
	})
}

// Close stops the underlying Kafka reader.
func (c *SessionRequestConsumer) Close() error {
	return c.reader.Close()
}

// NewSessionRecord builds the audit row for a freshly created session.
func NewSessionRecord(req models.CheckoutSessionRequest, result *models.CheckoutSessionResult) *models.PaymentRecord {
	var total int64
	for _, item := range req.Items {
		total += MinorUnits(item.UnitPrice) * item.Quantity
	}
	sessionID := result.SessionID
	return &models.PaymentRecord{
		OrderID:         req.OrderID,
		Amount:          total,
		Currency:        strings.ToLower(req.Currency),
		Status:          "created",
		StripeSessionID: &sessionID,
	}
}
