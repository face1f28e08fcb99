package repository

import (
	"github.com/leap-ai/toonify-backend/internal/models"
	"gorm.io/gorm"
)

type GenerationRepository struct {
	db *gorm.DB
}

func NewGenerationRepository(db *gorm.DB) *GenerationRepository {
	return &GenerationRepository{
		db: db,
	}
}

func (r *GenerationRepository) Create(generation *models.Generation) error {
	return r.db.Create(generation).Error
}

func (r *GenerationRepository) Update(generation *models.Generation) error {
	return r.db.Save(generation).Error
}

func (r *GenerationRepository) GetUserGenerations(userID string) ([]models.Generation, error) {
	var generations []models.Generation
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&generations).Error
	return generations, err
}
