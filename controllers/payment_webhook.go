package controllers

import (
	"errors"
	"net/http"

	"payments-gateway/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StripeWebhook receives Stripe webhook deliveries: verify the signature over
// the raw body, classify the event, publish the result. Only a signature
// failure changes the response status; everything else is acknowledged with
// 200 so Stripe does not redeliver payloads we have already seen and decided
// about.
func (pc *PaymentController) StripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		pc.Logger.Warn("Failed to read webhook body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return
	}

	event, err := pc.Processor.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		pc.Logger.Warn("Stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "webhook signature verification failed: " + err.Error()})
		return
	}

	pc.Logger.Info("Processing Stripe webhook",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
	)

	domainEvent, err := services.ClassifyEvent(event)
	if err != nil {
		var unhandled *services.UnhandledEventError
		var dataErr *services.ClassificationError
		switch {
		case errors.As(err, &unhandled):
			pc.Logger.Info("Unhandled webhook event type", zap.String("event_type", unhandled.EventType))
		case errors.As(err, &dataErr):
			pc.Logger.Warn("Webhook payload failed classification",
				zap.String("event_type", dataErr.EventType),
				zap.String("event_id", event.ID),
				zap.String("reason", dataErr.Reason),
			)
		default:
			pc.Logger.Error("Unexpected classification failure",
				zap.String("event_id", event.ID),
				zap.Error(err),
			)
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return
	}

	pc.recordChargeSucceeded(c.Request.Context(), domainEvent, event.Data.Raw)

	pc.Publisher.Publish(pc.EventsTopic, domainEvent.OrderID, domainEvent)

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
