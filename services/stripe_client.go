package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"

	"payments-gateway/models"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"
)

// PaymentProcessor is the outbound contract to the payment provider.
type PaymentProcessor interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutSessionRequest) (*models.CheckoutSessionResult, error)
	VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error)
}

// ProcessorError is returned when the payment provider rejects or fails a
// session-creation call. StatusCode is the HTTP status the caller should
// respond with.
type ProcessorError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ProcessorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProcessorError) Unwrap() error { return e.Err }

type StripeService struct {
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewStripeService(secretKey, webhookSecret, successURL, cancelURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		webhookSecret: webhookSecret,
		successURL:    successURL,
		cancelURL:     cancelURL,
	}
}

// MinorUnits converts a major-unit decimal amount (e.g. 19.99) into the
// smallest currency unit Stripe expects. Rounds half away from zero, matching
// Math.round semantics, so 19.999 becomes 2000.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateCheckoutSession creates a Stripe Checkout Session for the given cart.
// The order id travels on the payment intent metadata so the resulting charge
// events can be correlated back to the order. Exactly one Stripe call is made;
// failures are surfaced to the caller without retrying.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, req models.CheckoutSessionRequest) (*models.CheckoutSessionResult, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(strings.ToLower(req.Currency)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(MinorUnits(item.UnitPrice)),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{"orderId": req.OrderID},
		},
		LineItems:  lineItems,
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, &ProcessorError{
			StatusCode: http.StatusBadGateway,
			Message:    "stripe checkout session creation failed",
			Err:        err,
		}
	}

	return &models.CheckoutSessionResult{
		URL:        sess.URL,
		SuccessURL: sess.SuccessURL,
		CancelURL:  sess.CancelURL,
		SessionID:  sess.ID,
	}, nil
}

// VerifyWebhook validates the Stripe signature over the exact raw request
// bytes. Any re-serialization of the body before this call breaks the check.
// API version mismatches are ignored: deliveries from endpoints pinned to
// other Stripe API versions are still correctly signed, and rejecting them
// would make Stripe redeliver them forever.
func (s *StripeService) VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, sigHeader, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}
