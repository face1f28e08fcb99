package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWebhookPayloadDecoding(t *testing.T) {
	raw := `{
		"api_version": "1.0",
		"event": {
			"id": "evt-abc",
			"type": "INITIAL_PURCHASE",
			"app_user_id": "$RCAnonymousID:3f2a",
			"aliases": ["$RCAnonymousID:3f2a", "user-42"],
			"product_id": "toonify_pro_monthly",
			"transaction_id": "200001234567890",
			"original_transaction_id": "200001234567890",
			"price_in_purchased_currency": 9.99,
			"currency": "TRY",
			"event_timestamp_ms": 1740000000000,
			"cancel_reason": null
		}
	}`

	var payload WebhookPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	event := payload.Event
	if event.ID != "evt-abc" || event.Type != EventTypeInitialPurchase {
		t.Fatalf("unexpected event identity: %+v", event)
	}
	if event.Price != 9.99 || event.Currency != "TRY" {
		t.Fatalf("unexpected price fields: %+v", event)
	}
	if len(event.Aliases) != 2 || event.Aliases[1] != "user-42" {
		t.Fatalf("unexpected aliases: %v", event.Aliases)
	}

	want := time.UnixMilli(1740000000000).UTC()
	if got := event.Timestamp(); !got.Equal(want) {
		t.Fatalf("Timestamp() = %v, want %v", got, want)
	}
}

func TestTimestampFallsBackToNow(t *testing.T) {
	before := time.Now().UTC()
	got := WebhookEvent{}.Timestamp()
	if got.Before(before.Add(-time.Second)) || got.After(time.Now().UTC().Add(time.Second)) {
		t.Fatalf("zero timestamp should fall back to now, got %v", got)
	}
}

func TestIsAnonymousAppUserID(t *testing.T) {
	if !IsAnonymousAppUserID("$RCAnonymousID:3f2a") {
		t.Fatalf("expected anonymous id to be detected")
	}
	if IsAnonymousAppUserID("user-42") {
		t.Fatalf("plain id flagged as anonymous")
	}
	if IsAnonymousAppUserID("") {
		t.Fatalf("empty id flagged as anonymous")
	}
}
