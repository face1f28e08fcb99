package handler

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/leap-ai/toonify-backend/internal/models"
	"github.com/leap-ai/toonify-backend/internal/plans"
	"github.com/leap-ai/toonify-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testWebhookSecret = "whsec_test"

type stubLedgerStore struct {
	users     map[string]*models.User
	processed map[string]bool
	applied   []models.LedgerEffect
}

func (s *stubLedgerStore) HasProcessedEvent(eventID string) (bool, error) {
	return s.processed[eventID], nil
}

func (s *stubLedgerStore) ApplyEvent(effect models.LedgerEffect) error {
	if _, ok := s.users[effect.UserID]; !ok {
		return models.ErrUserNotFound
	}
	s.processed[effect.Payment.TransactionID] = true
	s.applied = append(s.applied, effect)
	return nil
}

func (s *stubLedgerStore) GetByID(id string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func newWebhookTestApp(t *testing.T) (*fiber.App, *stubLedgerStore) {
	t.Helper()

	store := &stubLedgerStore{
		users:     map[string]*models.User{"user-a": {ID: "user-a"}},
		processed: make(map[string]bool),
	}
	webhookService := service.NewWebhookService(store, store, plans.Default(), nil, zap.NewNop())
	handler := NewPaymentHandler(webhookService, nil, testWebhookSecret)

	app := fiber.New()
	app.Post("/api/payments/webhook", handler.HandleRevenueCatWebhook)
	return app, store
}

func postWebhook(t *testing.T, app *fiber.App, body, authorization string) (int, string) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/payments/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(responseBody)
}

func TestWebhookAuthorizedPurchase(t *testing.T) {
	app, store := newWebhookTestApp(t)

	body := `{"event":{"id":"evt1","type":"INITIAL_PURCHASE","app_user_id":"user-a","product_id":"toonify_pro_monthly","transaction_id":"tx1","price_in_purchased_currency":9.99,"currency":"USD","event_timestamp_ms":1740000000000}}`
	status, _ := postWebhook(t, app, body, testWebhookSecret)

	assert.Equal(t, fiber.StatusOK, status)
	require.Len(t, store.applied, 1)
	assert.Equal(t, "user-a", store.applied[0].UserID)
	assert.Equal(t, 200, store.applied[0].CreditsDelta)
}

func TestWebhookTestEventSkipsAuth(t *testing.T) {
	app, store := newWebhookTestApp(t)

	status, body := postWebhook(t, app, `{"event":{"id":"evt-test","type":"TEST"}}`, "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "test event")
	assert.Empty(t, store.applied)
}

func TestWebhookMissingAuthorization(t *testing.T) {
	app, store := newWebhookTestApp(t)

	body := `{"event":{"id":"evt1","type":"RENEWAL","app_user_id":"user-a","product_id":"toonify_pro_monthly"}}`
	status, _ := postWebhook(t, app, body, "")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Empty(t, store.applied)
}

func TestWebhookWrongSecret(t *testing.T) {
	app, store := newWebhookTestApp(t)

	body := `{"event":{"id":"evt1","type":"RENEWAL","app_user_id":"user-a","product_id":"toonify_pro_monthly"}}`
	status, _ := postWebhook(t, app, body, "whsec_wrong")

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Empty(t, store.applied)
}

func TestWebhookMissingBody(t *testing.T) {
	app, _ := newWebhookTestApp(t)

	status, _ := postWebhook(t, app, "", testWebhookSecret)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestWebhookInvalidJSON(t *testing.T) {
	app, _ := newWebhookTestApp(t)

	status, _ := postWebhook(t, app, "{not json", testWebhookSecret)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestWebhookMissingEventID(t *testing.T) {
	app, _ := newWebhookTestApp(t)

	body := `{"event":{"type":"RENEWAL","app_user_id":"user-a","product_id":"toonify_pro_monthly"}}`
	status, response := postWebhook(t, app, body, testWebhookSecret)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, response, "Missing event id")
}

func TestWebhookDuplicateAcknowledged(t *testing.T) {
	app, store := newWebhookTestApp(t)

	body := `{"event":{"id":"evt1","type":"RENEWAL","app_user_id":"user-a","product_id":"toonify_pro_monthly","event_timestamp_ms":1740000000000}}`
	status, _ := postWebhook(t, app, body, testWebhookSecret)
	require.Equal(t, fiber.StatusOK, status)

	status, response := postWebhook(t, app, body, testWebhookSecret)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, response, "duplicate")
	assert.Len(t, store.applied, 1)
}

func TestWebhookUnresolvableUserAcknowledged(t *testing.T) {
	app, store := newWebhookTestApp(t)

	body := `{"event":{"id":"evt1","type":"RENEWAL","app_user_id":"ghost","product_id":"toonify_pro_monthly"}}`
	status, response := postWebhook(t, app, body, testWebhookSecret)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, response, "user not found")
	assert.Empty(t, store.applied)
}
