package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/leap-ai/toonify-backend/internal/models"
	"github.com/leap-ai/toonify-backend/internal/service"
	"github.com/leap-ai/toonify-backend/pkg/utils"
)

type CreditHandler struct {
	creditService *service.CreditService
	validator     *utils.Validator
}

func NewCreditHandler(creditService *service.CreditService, validator *utils.Validator) *CreditHandler {
	return &CreditHandler{
		creditService: creditService,
		validator:     validator,
	}
}

func (h *CreditHandler) GetBalance(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(err.Error()))
	}

	balance, err := h.creditService.GetBalance(userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("User not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(fiber.Map{"credits_balance": balance}, ""))
}

func (h *CreditHandler) GetHistory(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(err.Error()))
	}

	transactions, err := h.creditService.GetHistory(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(transactions, ""))
}

func (h *CreditHandler) PurchaseCredits(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(err.Error()))
	}

	var req models.PurchaseCreditsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	transaction, err := h.creditService.PurchaseCredits(userID, req)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("User not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(transaction, ""))
}

func (h *CreditHandler) AddCredits(c *fiber.Ctx) error {
	if _, err := userIDFromContext(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(err.Error()))
	}

	var req models.AddCreditsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	transaction, err := h.creditService.AddCredits(req)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("User not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(transaction, ""))
}
