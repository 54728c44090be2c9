package controllers

import (
	"context"

	"payments-gateway/models"
	"payments-gateway/services"

	"go.uber.org/zap"
)

// recordSessionCreated writes the audit row for a created session. Best
// effort: the session already exists at Stripe, so a storage failure is
// logged rather than surfaced to the caller.
func (pc *PaymentController) recordSessionCreated(ctx context.Context, req models.CheckoutSessionRequest, result *models.CheckoutSessionResult) {
	if pc.Repo == nil {
		return
	}
	if err := pc.Repo.Create(ctx, services.NewSessionRecord(req, result)); err != nil {
		pc.Logger.Error("Failed to write payment audit record",
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
	}
}

// recordChargeSucceeded marks the audit row for the order as succeeded. Best
// effort, same as above: the domain event is published regardless.
func (pc *PaymentController) recordChargeSucceeded(ctx context.Context, event *models.PaymentSucceededEvent, rawPayload []byte) {
	if pc.Repo == nil {
		return
	}
	if err := pc.Repo.MarkSucceeded(ctx, event.OrderID, event.StripePaymentID, event.ReceiptURL, rawPayload); err != nil {
		pc.Logger.Error("Failed to update payment audit record",
			zap.String("order_id", event.OrderID),
			zap.String("charge_id", event.StripePaymentID),
			zap.Error(err),
		)
	}
}
