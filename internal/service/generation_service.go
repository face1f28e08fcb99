package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/leap-ai/toonify-backend/internal/models"
	"go.uber.org/zap"
)

// CreditsPerGeneration is the flat price of one stylization.
const CreditsPerGeneration = 1

// Stylizer is the external image-stylization capability.
type Stylizer interface {
	Cartoonify(ctx context.Context, imageURL string) (string, error)
}

// GenerationStore is the slice of the generation repository the service needs.
type GenerationStore interface {
	Create(generation *models.Generation) error
	Update(generation *models.Generation) error
	GetUserGenerations(userID string) ([]models.Generation, error)
}

type GenerationService struct {
	generationRepo GenerationStore
	credits        *CreditService
	stylizer       Stylizer
	log            *zap.Logger
}

func NewGenerationService(generationRepo GenerationStore, credits *CreditService, stylizer Stylizer, log *zap.Logger) *GenerationService {
	return &GenerationService{
		generationRepo: generationRepo,
		credits:        credits,
		stylizer:       stylizer,
		log:            log,
	}
}

// Create spends the credit first, then calls the stylization provider. The
// spend and its usage log are one atomic operation; the provider call runs
// outside any ledger transaction and after payment is secured, so a failed
// generation is recorded as failed rather than silently retried.
func (s *GenerationService) Create(ctx context.Context, userID string, req models.CreateGenerationRequest) (*models.Generation, error) {
	if _, err := s.credits.Spend(userID, CreditsPerGeneration); err != nil {
		if errors.Is(err, models.ErrInsufficientCredits) {
			return nil, models.ErrInsufficientCredits
		}
		return nil, err
	}

	variant := req.Variant
	if variant == "" {
		variant = "cartoon"
	}

	generation := &models.Generation{
		ID:               uuid.NewString(),
		UserID:           userID,
		OriginalImageURL: req.ImageURL,
		Variant:          variant,
		Status:           models.GenerationStatusPending,
		CreditsUsed:      CreditsPerGeneration,
	}
	if err := s.generationRepo.Create(generation); err != nil {
		return nil, err
	}

	toonURL, err := s.stylizer.Cartoonify(ctx, req.ImageURL)
	if err != nil {
		generation.Status = models.GenerationStatusFailed
		if updateErr := s.generationRepo.Update(generation); updateErr != nil {
			s.log.Error("failed to mark generation as failed",
				zap.String("generation_id", generation.ID), zap.Error(updateErr))
		}
		return nil, fmt.Errorf("stylize image: %w", err)
	}

	generation.ToonImageURL = toonURL
	generation.Status = models.GenerationStatusCompleted
	if err := s.generationRepo.Update(generation); err != nil {
		return nil, err
	}

	return generation, nil
}

func (s *GenerationService) GetUserGenerations(userID string) ([]models.Generation, error) {
	return s.generationRepo.GetUserGenerations(userID)
}
