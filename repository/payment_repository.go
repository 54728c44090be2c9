package repository

import (
	"context"

	"payments-gateway/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRecordRepository interface {
	Create(ctx context.Context, record *models.PaymentRecord) error
	MarkSucceeded(ctx context.Context, orderID, chargeID, receiptURL string, rawPayload []byte) error
}

type gormPaymentRecordRepo struct {
	db *gorm.DB
}

func NewGormPaymentRecordRepo(db *gorm.DB) PaymentRecordRepository {
	return &gormPaymentRecordRepo{db: db}
}

func (r *gormPaymentRecordRepo) Create(ctx context.Context, record *models.PaymentRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// MarkSucceeded flags the audit row for an order as succeeded, recording the
// charge id, receipt URL and raw event payload. Webhooks can arrive for
// sessions created by another instance, so a missing row is not an error: a
// fresh succeeded row is written instead.
func (r *gormPaymentRecordRepo) MarkSucceeded(ctx context.Context, orderID, chargeID, receiptURL string, rawPayload []byte) error {
	payload := string(rawPayload)
	updates := map[string]interface{}{
		"status":            "succeeded",
		"stripe_charge_id":  &chargeID,
		"receipt_url":       &receiptURL,
		"raw_event_payload": &payload,
	}

	res := r.db.WithContext(ctx).
		Model(&models.PaymentRecord{}).
		Where("order_id = ?", orderID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	return r.Create(ctx, &models.PaymentRecord{
		OrderID:         orderID,
		Status:          "succeeded",
		StripeChargeID:  &chargeID,
		ReceiptURL:      &receiptURL,
		RawEventPayload: &payload,
	})
}
