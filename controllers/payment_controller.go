package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"payments-gateway/models"
	"payments-gateway/repository"
	"payments-gateway/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionCreateTimeout = 15 * time.Second

type PaymentController struct {
	Processor   services.PaymentProcessor
	Publisher   services.EventPublisher
	Repo        repository.PaymentRecordRepository // nil when the audit store is disabled
	Logger      *zap.Logger
	EventsTopic string
}

// CreatePaymentSession builds a Stripe checkout session for the posted cart
// and returns its redirect URLs.
func (pc *PaymentController) CreatePaymentSession(c *gin.Context) {
	var req models.CheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), sessionCreateTimeout)
	defer cancel()

	result, err := pc.Processor.CreateCheckoutSession(ctx, req)
	if err != nil {
		var procErr *services.ProcessorError
		if errors.As(err, &procErr) {
			pc.Logger.Warn("Checkout session creation failed",
				zap.String("order_id", req.OrderID),
				zap.Error(err),
			)
			c.JSON(procErr.StatusCode, gin.H{"error": procErr.Error()})
			return
		}
		pc.Logger.Error("Unexpected error creating checkout session",
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pc.recordSessionCreated(c.Request.Context(), req, result)

	c.JSON(http.StatusOK, result)
}

// Success is the landing endpoint Stripe redirects to after payment.
func (pc *PaymentController) Success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Payment Successful",
	})
}

// Cancelled is the landing endpoint Stripe redirects to on abandonment.
func (pc *PaymentController) Cancelled(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      false,
		"message": "Payment Cancelled",
	})
}
