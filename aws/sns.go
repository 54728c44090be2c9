package aws

import (
	"context"
	"encoding/json"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
)

const (
	defaultQueueSize      = 256
	defaultPublishTimeout = 5 * time.Second
)

type outboundMessage struct {
	topicArn string
	key      string
	payload  []byte
}

// SNSEventPublisher is the SNS alternative to the Kafka producer, selected
// with EVENT_BUS=sns. The topic argument of Publish is the SNS topic ARN; the
// key is carried only for logging because SNS has no partitioning.
//
// Same delivery shape as the Kafka path: a bounded in-memory queue drained by
// a background sender. Publish never blocks and never grows past the queue
// bound; when the queue is full or SNS is unreachable the event is dropped
// and the loss logged.
type SNSEventPublisher struct {
	client  *sns.Client
	queue   chan outboundMessage
	done    chan struct{}
	timeout time.Duration
	logger  *zap.Logger
}

func NewSNSEventPublisher(cfg sdkaws.Config, logger *zap.Logger) *SNSEventPublisher {
	p := &SNSEventPublisher{
		client:  sns.NewFromConfig(cfg),
		queue:   make(chan outboundMessage, defaultQueueSize),
		done:    make(chan struct{}),
		timeout: defaultPublishTimeout,
		logger:  logger,
	}
	go p.sendLoop()
	logger.Info("SNS event publisher initialized")
	return p
}

// Publish enqueues an event for delivery and returns immediately.
func (p *SNSEventPublisher) Publish(topicArn, key string, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal outbound event",
			zap.String("topic_arn", topicArn),
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}

	select {
	case p.queue <- outboundMessage{topicArn: topicArn, key: key, payload: payload}:
	default:
		p.logger.Error("Outbound event queue full, dropping event",
			zap.String("topic_arn", topicArn),
			zap.String("key", key),
		)
	}
}

func (p *SNSEventPublisher) sendLoop() {
	defer close(p.done)
	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		_, err := p.client.Publish(ctx, &sns.PublishInput{
			TopicArn: sdkaws.String(msg.topicArn),
			Message:  sdkaws.String(string(msg.payload)),
		})
		cancel()
		if err != nil {
			p.logger.Error("Failed to publish event to SNS, dropping",
				zap.String("topic_arn", msg.topicArn),
				zap.String("key", msg.key),
				zap.Error(err),
			)
			continue
		}
		p.logger.Info("Event published to SNS",
			zap.String("topic_arn", msg.topicArn),
			zap.String("key", msg.key),
		)
	}
}

// Close drains the queue and stops the sender.
func (p *SNSEventPublisher) Close() {
	close(p.queue)
	<-p.done
	p.logger.Info("SNS event publisher closed")
}
