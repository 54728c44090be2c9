package services_test

import (
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"payments-gateway/services"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80/webhook"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{20.00, 2000},
		{19.999, 2000},
		{19.99, 1999},
		{10.5, 1050},
		{0.07, 7},
		{0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, services.MinorUnits(tc.amount), "amount %v", tc.amount)
	}
}

// signatureHeader builds a Stripe-Signature header for the given payload and
// secret, the same way Stripe's servers do.
func signatureHeader(payload []byte, secret string, at time.Time) string {
	sig := webhook.ComputeSignature(at, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(sig))
}

const testWebhookSecret = "whsec_test_secret"

func newTestStripeService() *services.StripeService {
	return services.NewStripeService("sk_test_key", testWebhookSecret, "https://shop.local/success", "https://shop.local/cancelled")
}

func TestVerifyWebhook_ValidSignature(t *testing.T) {
	svc := newTestStripeService()
	payload := []byte(`{"id": "evt_1", "type": "charge.succeeded", "data": {"object": {"id": "ch_1"}}}`)

	event, err := svc.VerifyWebhook(payload, signatureHeader(payload, testWebhookSecret, time.Now()))

	assert.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, "charge.succeeded", string(event.Type))
}

func TestVerifyWebhook_AcceptsOtherAPIVersions(t *testing.T) {
	svc := newTestStripeService()

	// Endpoints stay pinned to the API version they were created under, so
	// correctly-signed deliveries arrive with versions other than the one
	// stripe-go is built against. The signature alone decides.
	payload := []byte(`{"id": "evt_1", "api_version": "2020-08-27", "type": "charge.succeeded", "data": {"object": {"id": "ch_1"}}}`)

	event, err := svc.VerifyWebhook(payload, signatureHeader(payload, testWebhookSecret, time.Now()))

	assert.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
}

func TestVerifyWebhook_TamperedPayload(t *testing.T) {
	svc := newTestStripeService()
	payload := []byte(`{"id": "evt_1", "type": "charge.succeeded", "data": {"object": {"id": "ch_1"}}}`)
	header := signatureHeader(payload, testWebhookSecret, time.Now())

	// Single-byte mutation after signing must fail verification.
	tampered := append([]byte{}, payload...)
	tampered[len(tampered)-2] = 'X'

	_, err := svc.VerifyWebhook(tampered, header)
	assert.Error(t, err)
}

func TestVerifyWebhook_WrongSecret(t *testing.T) {
	svc := newTestStripeService()
	payload := []byte(`{"id": "evt_1", "type": "charge.succeeded", "data": {"object": {}}}`)

	_, err := svc.VerifyWebhook(payload, signatureHeader(payload, "whsec_other_secret", time.Now()))
	assert.Error(t, err)
}

func TestVerifyWebhook_MissingHeader(t *testing.T) {
	svc := newTestStripeService()

	_, err := svc.VerifyWebhook([]byte(`{}`), "")
	assert.Error(t, err)
}

func TestVerifyWebhook_ExpiredTimestamp(t *testing.T) {
	svc := newTestStripeService()
	payload := []byte(`{"id": "evt_1", "type": "charge.succeeded", "data": {"object": {}}}`)

	// Stripe's default tolerance is 300s.
	_, err := svc.VerifyWebhook(payload, signatureHeader(payload, testWebhookSecret, time.Now().Add(-time.Hour)))
	assert.Error(t, err)
}
