package services

import (
	"encoding/json"
	"fmt"
	"time"

	"payments-gateway/models"

	"github.com/stripe/stripe-go/v80"
)

// EventPaymentSucceeded is the type carried by outbound payment events.
const EventPaymentSucceeded = "payment.succeeded"

// UnhandledEventError marks an event type this service does not act on.
// Receiving one is normal: the webhook is still acknowledged.
type UnhandledEventError struct {
	EventType string
}

func (e *UnhandledEventError) Error() string {
	return fmt.Sprintf("event type %q not handled", e.EventType)
}

// ClassificationError marks a handled event type whose payload is missing
// expected fields. No domain event is emitted, but the webhook is still
// acknowledged so Stripe does not retry a payload that will never parse.
type ClassificationError struct {
	EventType string
	Reason    string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("cannot classify %q event: %s", e.EventType, e.Reason)
}

// ClassifyEvent maps a verified Stripe event to an internal payment event.
// All type-specific payload knowledge lives here; new handled event types are
// added as cases without touching verification or publishing.
func ClassifyEvent(event stripe.Event) (*models.PaymentSucceededEvent, error) {
	switch event.Type {
	case "charge.succeeded":
		if event.Data == nil {
			return nil, &ClassificationError{
				EventType: string(event.Type),
				Reason:    "event carries no data object",
			}
		}
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return nil, &ClassificationError{
				EventType: string(event.Type),
				Reason:    "malformed charge payload: " + err.Error(),
			}
		}
		orderID := charge.Metadata["orderId"]
		if orderID == "" {
			return nil, &ClassificationError{
				EventType: string(event.Type),
				Reason:    "missing metadata.orderId, cannot correlate charge " + charge.ID,
			}
		}
		return &models.PaymentSucceededEvent{
			Type:            EventPaymentSucceeded,
			StripePaymentID: charge.ID,
			OrderID:         orderID,
			ReceiptURL:      charge.ReceiptURL,
			Timestamp:       time.Unix(event.Created, 0).UTC(),
		}, nil
	default:
		return nil, &UnhandledEventError{EventType: string(event.Type)}
	}
}
