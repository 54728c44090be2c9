package models

import "time"

// PaymentSucceededEvent is the internal event published when a verified
// charge.succeeded webhook arrives. StripePaymentID doubles as the
// idempotency key for downstream consumers.
type PaymentSucceededEvent struct {
	Type            string    `json:"type"` // always "payment.succeeded"
	StripePaymentID string    `json:"stripePaymentId"`
	OrderID         string    `json:"orderId"`
	ReceiptURL      string    `json:"receiptUrl"`
	Timestamp       time.Time `json:"timestamp"` // Stripe event creation time
}

// CheckoutSessionEvent reports the outcome of a bus-driven session request.
type CheckoutSessionEvent struct {
	Type        string    `json:"type"` // "checkout.session.created" or "checkout.session.failed"
	OrderID     string    `json:"order_id"`
	CheckoutURL string    `json:"checkout_url,omitempty"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"` // UTC event time
}
