package models

// CartLineItem is a single priced item in a checkout request. UnitPrice is in
// major currency units (e.g. 19.99 USD); conversion to Stripe's minor-unit
// integers happens in the session builder.
type CartLineItem struct {
	Name      string  `json:"name" binding:"required"`
	UnitPrice float64 `json:"price" binding:"gte=0"`
	Quantity  int64   `json:"quantity" binding:"required,min=1"`
}

// CheckoutSessionRequest describes the cart a checkout session is created for.
// OrderID is opaque to this service; it is attached to the session metadata so
// webhook events can be correlated back to the order.
type CheckoutSessionRequest struct {
	Currency string         `json:"currency" binding:"required,len=3"`
	Items    []CartLineItem `json:"items" binding:"required,min=1,dive"`
	OrderID  string         `json:"orderId" binding:"required"`
}

// CheckoutSessionResult carries the redirect URLs returned by Stripe.
// SessionID is kept for the audit store but not exposed on the wire.
type CheckoutSessionResult struct {
	URL        string `json:"url"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
	SessionID  string `json:"-"`
}
