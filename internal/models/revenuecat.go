package models

import (
	"strings"
	"time"
)

// RevenueCat webhook event types we receive. Anything else is acknowledged
// and dropped.
const (
	EventTypeInitialPurchase = "INITIAL_PURCHASE"
	EventTypeRenewal         = "RENEWAL"
	EventTypeProductChange   = "PRODUCT_CHANGE"
	EventTypeExpiration      = "EXPIRATION"
	EventTypeCancellation    = "CANCELLATION"
	EventTypeUncancellation  = "UNCANCELLATION"
	EventTypeBillingIssue    = "BILLING_ISSUE"
	EventTypeTest            = "TEST"
)

// CancelReasonUnsubscribe marks a cancellation where the user merely turned
// off auto-renew. Benefits run until the matching EXPIRATION event.
const CancelReasonUnsubscribe = "UNSUBSCRIBE"

// AnonymousIDPrefix marks RevenueCat app user ids assigned before login.
const AnonymousIDPrefix = "$RCAnonymousID:"

// WebhookPayload is the envelope RevenueCat posts to the webhook endpoint.
type WebhookPayload struct {
	Event WebhookEvent `json:"event"`
}

// WebhookEvent carries one subscription lifecycle notification. ID is unique
// per event and serves as the idempotency key.
type WebhookEvent struct {
	ID                 string   `json:"id"`
	Type               string   `json:"type"`
	AppUserID          string   `json:"app_user_id"`
	Aliases            []string `json:"aliases"`
	ProductID          string   `json:"product_id"`
	TransactionID      string   `json:"transaction_id"`
	StoreTransactionID string   `json:"store_transaction_id"`
	Price              float64  `json:"price_in_purchased_currency"`
	Currency           string   `json:"currency"`
	EventTimestampMs   int64    `json:"event_timestamp_ms"`
	CancelReason       string   `json:"cancel_reason"`
}

// Timestamp converts the event's own millisecond timestamp. Payment rows are
// dated with this, not with processing time, so the audit trail keeps the
// provider's ordering. An event without a timestamp gets the receive time.
func (e WebhookEvent) Timestamp() time.Time {
	if e.EventTimestampMs == 0 {
		return time.Now().UTC()
	}
	return time.UnixMilli(e.EventTimestampMs).UTC()
}

// IsAnonymousAppUserID reports whether id is a pre-login placeholder identity.
func IsAnonymousAppUserID(id string) bool {
	return strings.HasPrefix(id, AnonymousIDPrefix)
}
