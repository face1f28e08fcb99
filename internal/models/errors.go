package models

import "errors"

var (
	// ErrInsufficientCredits means the spend gate refused: balance < cost.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrUserNotFound means no account row matches the resolved identifier.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEvent means a payment row already exists for the event id.
	// Treated as success by callers: the event was applied exactly once.
	ErrDuplicateEvent = errors.New("duplicate webhook event")

	// ErrMissingEventID means the event carries no idempotency key at all.
	ErrMissingEventID = errors.New("webhook event missing event id")
)
