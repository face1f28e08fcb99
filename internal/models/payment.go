package models

import "time"

const (
	PaymentStatusSuccess      = "Success"
	PaymentStatusBillingIssue = "BillingIssue"
)

// Payment is the append-only audit record of a processed billing event.
// TransactionID holds the webhook event id, not the store's transaction id:
// a single store transaction can produce several webhook deliveries, and the
// event id is the one key that is unique per event. The unique index on it is
// what makes processing idempotent under redelivery.
type Payment struct {
	ID                 string    `json:"id" gorm:"primaryKey"`
	UserID             string    `json:"user_id" gorm:"not null;index"`
	Amount             float64   `json:"amount" gorm:"not null"`
	Currency           string    `json:"currency" gorm:"default:'USD'"`
	Status             string    `json:"status" gorm:"not null;default:'Success'"`
	TransactionID      string    `json:"transaction_id" gorm:"uniqueIndex;not null"`
	StoreTransactionID string    `json:"store_transaction_id"`
	ProductID          string    `json:"product_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
