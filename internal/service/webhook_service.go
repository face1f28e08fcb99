package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/leap-ai/toonify-backend/internal/models"
	"github.com/leap-ai/toonify-backend/internal/plans"
	"go.uber.org/zap"
)

// LedgerStore is the slice of the ledger repository the reconciler needs.
type LedgerStore interface {
	HasProcessedEvent(eventID string) (bool, error)
	ApplyEvent(effect models.LedgerEffect) error
}

// UserDirectory resolves account ids to user rows for notification lookups.
type UserDirectory interface {
	GetByID(id string) (*models.User, error)
}

// Mailer sends best-effort customer notifications.
type Mailer interface {
	SendBillingIssueEmail(email, fullName string) error
}

// WebhookOutcome classifies how an event was handled. Every outcome except a
// returned error is acknowledged to the provider with HTTP 200 so it stops
// redelivering.
type WebhookOutcome string

const (
	// OutcomeApplied: the event mutated the ledger exactly once.
	OutcomeApplied WebhookOutcome = "applied"
	// OutcomeDuplicate: a delivery of this event id was already applied.
	OutcomeDuplicate WebhookOutcome = "duplicate"
	// OutcomeIgnored: recognized but intentionally without effect (test
	// events, cancellations awaiting expiration, unknown products/types).
	OutcomeIgnored WebhookOutcome = "ignored"
	// OutcomeUnresolvable: no account can ever be resolved for this event.
	// Acknowledged to prevent a redelivery storm that could never succeed.
	OutcomeUnresolvable WebhookOutcome = "unresolvable"
)

type WebhookResult struct {
	Outcome WebhookOutcome
	Message string
}

// WebhookService reconciles RevenueCat subscription lifecycle events against
// the credit ledger: it resolves the event to a canonical account, classifies
// it, computes the ledger effect, and applies it atomically at most once per
// event id.
type WebhookService struct {
	store   LedgerStore
	users   UserDirectory
	catalog plans.Catalog
	mailer  Mailer
	log     *zap.Logger
}

func NewWebhookService(store LedgerStore, users UserDirectory, catalog plans.Catalog, mailer Mailer, log *zap.Logger) *WebhookService {
	return &WebhookService{
		store:   store,
		users:   users,
		catalog: catalog,
		mailer:  mailer,
		log:     log,
	}
}

// Process handles one authenticated webhook event. The returned error means
// "this attempt failed but a retry may succeed" (persistence failure); every
// permanent condition comes back as a non-error outcome instead.
func (s *WebhookService) Process(event models.WebhookEvent) (WebhookResult, error) {
	if event.Type == models.EventTypeTest {
		return WebhookResult{Outcome: OutcomeIgnored, Message: "test event"}, nil
	}

	if !isRelevantEventType(event.Type) {
		s.log.Info("ignoring unhandled webhook event type", zap.String("event_type", event.Type))
		return WebhookResult{Outcome: OutcomeIgnored, Message: "unhandled event type"}, nil
	}

	userID, ok := resolveAppUserID(event)
	if !ok {
		s.log.Warn("webhook event has no resolvable account",
			zap.String("event_id", event.ID),
			zap.String("app_user_id", event.AppUserID),
			zap.Strings("aliases", event.Aliases))
		return WebhookResult{Outcome: OutcomeUnresolvable, Message: "no resolvable account"}, nil
	}

	if event.ID == "" {
		return WebhookResult{}, models.ErrMissingEventID
	}
	if event.ProductID == "" {
		s.log.Warn("webhook event missing product id",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type))
		return WebhookResult{Outcome: OutcomeUnresolvable, Message: "missing essential data"}, nil
	}

	processed, err := s.store.HasProcessedEvent(event.ID)
	if err != nil {
		return WebhookResult{}, fmt.Errorf("idempotency check: %w", err)
	}
	if processed {
		s.log.Info("duplicate webhook event", zap.String("event_id", event.ID))
		return WebhookResult{Outcome: OutcomeDuplicate, Message: "duplicate event id"}, nil
	}

	effect, result := s.classify(event, userID)
	if effect == nil {
		return result, nil
	}

	if err := s.store.ApplyEvent(*effect); err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateEvent):
			// Lost the race against a concurrent delivery of the same event.
			return WebhookResult{Outcome: OutcomeDuplicate, Message: "duplicate event id"}, nil
		case errors.Is(err, models.ErrUserNotFound):
			s.log.Warn("webhook event for unknown user",
				zap.String("event_id", event.ID),
				zap.String("user_id", userID))
			return WebhookResult{Outcome: OutcomeUnresolvable, Message: "user not found"}, nil
		default:
			return WebhookResult{}, fmt.Errorf("apply webhook event %s: %w", event.ID, err)
		}
	}

	s.log.Info("webhook event applied",
		zap.String("event_id", event.ID),
		zap.String("event_type", event.Type),
		zap.String("user_id", userID),
		zap.Int("credits_delta", effect.CreditsDelta))

	if event.Type == models.EventTypeBillingIssue {
		go s.notifyBillingIssue(userID)
	}

	return WebhookResult{Outcome: OutcomeApplied}, nil
}

// classify maps an event to its ledger effect per the reconciliation table.
// A nil effect means the event is acknowledged without any mutation.
func (s *WebhookService) classify(event models.WebhookEvent, userID string) (*models.LedgerEffect, WebhookResult) {
	eventTime := event.Timestamp()

	switch event.Type {
	case models.EventTypeBillingIssue:
		// Payment retry in progress: benefits continue, balance and expiry
		// untouched, only the grace flag flips.
		payment := &models.Payment{
			ID:                 uuid.NewString(),
			UserID:             userID,
			Amount:             0,
			Currency:           currencyOrDefault(event.Currency),
			Status:             models.PaymentStatusBillingIssue,
			TransactionID:      event.ID,
			StoreTransactionID: storeTransactionID(event),
			ProductID:          event.ProductID,
			CreatedAt:          eventTime,
		}
		return &models.LedgerEffect{
			UserID: userID,
			Subscription: models.SubscriptionUpdate{
				SetGracePeriod: models.BoolPtr(true),
			},
			Payment: payment,
			Transaction: &models.CreditTransaction{
				ID:            uuid.NewString(),
				UserID:        userID,
				Amount:        0,
				Type:          models.TransactionTypeBillingIssue,
				PaymentID:     payment.ID,
				TransactionID: event.ID,
				ProductID:     event.ProductID,
			},
		}, WebhookResult{}

	case models.EventTypeCancellation:
		// The provider sends CANCELLATION the moment auto-renew is turned
		// off, potentially weeks before the paid term ends. Benefits keep
		// running until the matching EXPIRATION event.
		if event.CancelReason == models.CancelReasonUnsubscribe {
			s.log.Info("auto-renew disabled, benefits continue until expiration",
				zap.String("user_id", userID),
				zap.String("product_id", event.ProductID))
		}
		return nil, WebhookResult{Outcome: OutcomeIgnored, Message: "cancellation noted"}

	case models.EventTypeExpiration:
		// The term actually ended. If this arrives before the RENEWAL it
		// chronologically follows, the account wrongly goes non-pro until
		// the renewal lands; RevenueCat supplies no sequence number to
		// guard against that reordering.
		return &models.LedgerEffect{
			UserID: userID,
			Subscription: models.SubscriptionUpdate{
				SetProMember:   models.BoolPtr(false),
				ClearExpiresAt: true,
				SetGracePeriod: models.BoolPtr(false),
			},
		}, WebhookResult{}

	case models.EventTypeUncancellation:
		return &models.LedgerEffect{
			UserID: userID,
			Subscription: models.SubscriptionUpdate{
				SetProMember:   models.BoolPtr(true),
				SetGracePeriod: models.BoolPtr(false),
			},
		}, WebhookResult{}

	case models.EventTypeInitialPurchase, models.EventTypeRenewal, models.EventTypeProductChange:
		plan, ok := s.catalog.Lookup(event.ProductID)
		if !ok {
			s.log.Warn("unknown product id in purchase event",
				zap.String("event_id", event.ID),
				zap.String("product_id", event.ProductID))
			return nil, WebhookResult{Outcome: OutcomeIgnored, Message: "unknown product"}
		}

		expiresAt := eventTime.AddDate(0, 0, plan.DurationDays)
		payment := &models.Payment{
			ID:                 uuid.NewString(),
			UserID:             userID,
			Amount:             event.Price,
			Currency:           currencyOrDefault(event.Currency),
			Status:             models.PaymentStatusSuccess,
			TransactionID:      event.ID,
			StoreTransactionID: storeTransactionID(event),
			ProductID:          event.ProductID,
			CreatedAt:          eventTime,
		}
		return &models.LedgerEffect{
			UserID:       userID,
			CreditsDelta: plan.CreditsGranted,
			Subscription: models.SubscriptionUpdate{
				SetProMember:   models.BoolPtr(true),
				SetExpiresAt:   models.TimePtr(expiresAt),
				SetGracePeriod: models.BoolPtr(false),
			},
			Payment: payment,
			Transaction: &models.CreditTransaction{
				ID:            uuid.NewString(),
				UserID:        userID,
				Amount:        plan.CreditsGranted,
				Type:          models.TransactionTypePurchase,
				PaymentID:     payment.ID,
				TransactionID: event.ID,
				ProductID:     event.ProductID,
			},
		}, WebhookResult{}
	}

	return nil, WebhookResult{Outcome: OutcomeIgnored, Message: "unhandled event type"}
}

func (s *WebhookService) notifyBillingIssue(userID string) {
	if s.mailer == nil {
		return
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		s.log.Warn("billing issue notice: user lookup failed",
			zap.String("user_id", userID), zap.Error(err))
		return
	}
	if err := s.mailer.SendBillingIssueEmail(user.Email, user.FullName); err != nil {
		s.log.Warn("billing issue notice: send failed",
			zap.String("user_id", userID), zap.Error(err))
	}
}

// resolveAppUserID returns the canonical account id for an event. An
// anonymous app user id is replaced by the first non-anonymous alias; with
// no such alias there is no account to credit and the event is terminal.
func resolveAppUserID(event models.WebhookEvent) (string, bool) {
	if event.AppUserID == "" {
		return "", false
	}
	if !models.IsAnonymousAppUserID(event.AppUserID) {
		return event.AppUserID, true
	}
	for _, alias := range event.Aliases {
		if alias != "" && !models.IsAnonymousAppUserID(alias) {
			return alias, true
		}
	}
	return "", false
}

func isRelevantEventType(eventType string) bool {
	switch eventType {
	case models.EventTypeInitialPurchase,
		models.EventTypeRenewal,
		models.EventTypeProductChange,
		models.EventTypeExpiration,
		models.EventTypeCancellation,
		models.EventTypeUncancellation,
		models.EventTypeBillingIssue:
		return true
	}
	return false
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return "USD"
	}
	return currency
}

func storeTransactionID(event models.WebhookEvent) string {
	if event.StoreTransactionID != "" {
		return event.StoreTransactionID
	}
	return event.TransactionID
}
