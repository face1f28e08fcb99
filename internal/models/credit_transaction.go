package models

import "time"

// Credit transaction types. Positive amounts are grants, negative are spends.
const (
	TransactionTypePurchase     = "purchase"
	TransactionTypeUsage        = "usage"
	TransactionTypeAdminAdd     = "admin_add"
	TransactionTypeBillingIssue = "billing_issue"
)

// CreditTransaction is an append-only log row. The sum of amounts for a user
// reconciles with User.CreditsBalance.
type CreditTransaction struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"not null;index"`
	Amount        int       `json:"amount" gorm:"not null"`
	Type          string    `json:"type" gorm:"not null"`
	PaymentID     string    `json:"payment_id,omitempty"`
	TransactionID string    `json:"transaction_id,omitempty" gorm:"index"`
	ProductID     string    `json:"product_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
