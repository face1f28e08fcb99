package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/leap-ai/toonify-backend/internal/models"
	"github.com/leap-ai/toonify-backend/internal/service"
	"github.com/leap-ai/toonify-backend/pkg/utils"
)

type GenerationHandler struct {
	generationService *service.GenerationService
	validator         *utils.Validator
}

func NewGenerationHandler(generationService *service.GenerationService, validator *utils.Validator) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		validator:         validator,
	}
}

func (h *GenerationHandler) CreateGeneration(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(err.Error()))
	}

	var req models.CreateGenerationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	generation, err := h.generationService.Create(c.Context(), userID, req)
	if err != nil {
		if errors.Is(err, models.ErrInsufficientCredits) {
			return c.Status(fiber.StatusPaymentRequired).JSON(models.ErrorResponse("Insufficient credits"))
		}
		if errors.Is(err, models.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("User not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Error generating cartoon image"))
	}

	return c.JSON(models.SuccessResponse(generation, ""))
}

func (h *GenerationHandler) GetGenerationHistory(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(err.Error()))
	}

	generations, err := h.generationService.GetUserGenerations(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(generations, ""))
}
