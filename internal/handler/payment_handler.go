package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/leap-ai/toonify-backend/internal/models"
	"github.com/leap-ai/toonify-backend/internal/service"
)

type PaymentHandler struct {
	webhookService   *service.WebhookService
	paymentService   *service.PaymentService
	revenueCatSecret string
}

func NewPaymentHandler(webhookService *service.WebhookService, paymentService *service.PaymentService, revenueCatSecret string) *PaymentHandler {
	return &PaymentHandler{
		webhookService:   webhookService,
		paymentService:   paymentService,
		revenueCatSecret: revenueCatSecret,
	}
}

// HandleRevenueCatWebhook receives subscription lifecycle events. Response
// codes follow the provider's retry contract: 200 means "delivered, do not
// retry" and covers duplicates, unresolvable users and unknown products;
// 4xx means the request itself is broken; 5xx asks the provider to redeliver.
func (h *PaymentHandler) HandleRevenueCatWebhook(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Missing body"))
	}

	var payload models.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid JSON body"))
	}
	event := payload.Event

	// TEST events are acknowledged without an authentication check so the
	// provider dashboard's connectivity probe works before secrets are set.
	if event.Type != models.EventTypeTest {
		if h.revenueCatSecret == "" {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Webhook secret not configured"))
		}
		authorization := c.Get("Authorization")
		if authorization == "" {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Missing Authorization header"))
		}
		if subtle.ConstantTimeCompare([]byte(authorization), []byte(h.revenueCatSecret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid Authorization header"))
		}
	}

	result, err := h.webhookService.Process(event)
	if err != nil {
		if errors.Is(err, models.ErrMissingEventID) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Missing event id"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Webhook processing failed"))
	}

	message := "Webhook received successfully"
	if result.Message != "" {
		message = "Event processed (" + result.Message + ")"
	}
	return c.JSON(models.SuccessResponse(nil, message))
}

func (h *PaymentHandler) GetPaymentHistory(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(err.Error()))
	}

	payments, err := h.paymentService.GetUserPaymentHistory(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(payments, ""))
}
