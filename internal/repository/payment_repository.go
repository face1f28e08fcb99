package repository

import (
	"github.com/leap-ai/toonify-backend/internal/models"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{
		db: db,
	}
}

func (r *PaymentRepository) GetUserPaymentHistory(userID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
