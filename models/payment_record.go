package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentRecord is the audit row written per created checkout session and per
// received charge.succeeded webhook. Published events are fire-and-forget, so
// these rows are what out-of-band reconciliation works from.
type PaymentRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         string    `gorm:"type:varchar(64);index;not null"`
	Amount          int64     `gorm:"not null"` // in cents/paise
	Currency        string    `gorm:"type:varchar(10);not null"`
	Status          string    `gorm:"type:varchar(20);not null"` // "created", "succeeded"
	StripeSessionID *string   `gorm:"uniqueIndex"`
	StripeChargeID  *string   `gorm:"uniqueIndex"`
	ReceiptURL      *string   `gorm:"type:varchar(1024)"`
	RawEventPayload *string   `gorm:"type:jsonb"` // for audit and debugging
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}
