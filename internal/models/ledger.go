package models

import "time"

// SubscriptionUpdate describes the subscription fields a billing event sets.
// Nil pointers leave a field untouched; ClearExpiresAt nulls the expiry.
type SubscriptionUpdate struct {
	SetProMember   *bool
	SetExpiresAt   *time.Time
	ClearExpiresAt bool
	SetGracePeriod *bool
}

// LedgerEffect is the single atomic mutation a webhook event resolves to:
// a relative credits delta, subscription field updates, and the payment and
// transaction-log rows that record it. The whole effect is applied in one
// database transaction or not at all.
type LedgerEffect struct {
	UserID       string
	CreditsDelta int
	Subscription SubscriptionUpdate
	Payment      *Payment
	Transaction  *CreditTransaction
}

func BoolPtr(v bool) *bool { return &v }

func TimePtr(t time.Time) *time.Time { return &t }
