package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"payments-gateway/controllers"
	"payments-gateway/models"
	"payments-gateway/routes"
	"payments-gateway/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// ---- concrete mock implementing services.PaymentProcessor ----

type mockProcessor struct {
	result  *models.CheckoutSessionResult
	err     error
	lastReq models.CheckoutSessionRequest
}

func (m *mockProcessor) CreateCheckoutSession(_ context.Context, req models.CheckoutSessionRequest) (*models.CheckoutSessionResult, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockProcessor) VerifyWebhook(_ []byte, _ string) (stripe.Event, error) {
	return stripe.Event{}, nil
}

func setupSessionRouter(processor *mockProcessor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pc := &controllers.PaymentController{
		Processor:   processor,
		Publisher:   &mockPublisher{},
		Logger:      zap.NewNop(),
		EventsTopic: "payment.succeeded",
	}
	routes.RegisterPaymentRoutes(r, pc)
	return r
}

func postSession(r *gin.Engine, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payments/create-payment-session", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestCreatePaymentSession_Success(t *testing.T) {
	processor := &mockProcessor{
		result: &models.CheckoutSessionResult{
			URL:        "https://checkout.stripe.com/c/pay/cs_1",
			SuccessURL: "https://shop.local/success",
			CancelURL:  "https://shop.local/cancelled",
			SessionID:  "cs_secret_9",
		},
	}
	r := setupSessionRouter(processor)

	w := postSession(r, []byte(`{
		"currency": "usd",
		"items": [{"name": "T-Shirt", "price": 20.00, "quantity": 1}],
		"orderId": "ord_1"
	}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ord_1", processor.lastReq.OrderID)

	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_1", resp["url"])
	assert.Equal(t, "https://shop.local/success", resp["successUrl"])
	assert.Equal(t, "https://shop.local/cancelled", resp["cancelUrl"])

	// Stripe session ids stay internal.
	assert.NotContains(t, w.Body.String(), "cs_secret_9")
}

func TestCreatePaymentSession_ProcessorError(t *testing.T) {
	processor := &mockProcessor{
		err: &services.ProcessorError{StatusCode: http.StatusBadGateway, Message: "stripe checkout session creation failed"},
	}
	r := setupSessionRouter(processor)

	w := postSession(r, []byte(`{
		"currency": "usd",
		"items": [{"name": "A", "price": 5.00, "quantity": 1}],
		"orderId": "ord_2"
	}`))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "stripe checkout session creation failed")
}

func TestCreatePaymentSession_BadJSON(t *testing.T) {
	r := setupSessionRouter(&mockProcessor{})

	w := postSession(r, []byte("not-json"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePaymentSession_EmptyItemsRejected(t *testing.T) {
	r := setupSessionRouter(&mockProcessor{})

	w := postSession(r, []byte(`{"currency": "usd", "items": [], "orderId": "ord_3"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePaymentSession_MissingOrderIDRejected(t *testing.T) {
	r := setupSessionRouter(&mockProcessor{})

	w := postSession(r, []byte(`{"currency": "usd", "items": [{"name": "A", "price": 1.00, "quantity": 1}]}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuccessEndpoint(t *testing.T) {
	r := setupSessionRouter(&mockProcessor{})

	req := httptest.NewRequest(http.MethodGet, "/payments/success", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, true, resp["ok"])
	assert.Equal(t, "Payment Successful", resp["message"])
}

func TestCancelledEndpoint(t *testing.T) {
	r := setupSessionRouter(&mockProcessor{})

	req := httptest.NewRequest(http.MethodGet, "/payments/cancelled", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, false, resp["ok"])
	assert.Equal(t, "Payment Cancelled", resp["message"])
}
