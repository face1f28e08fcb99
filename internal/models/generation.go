package models

import "time"

const (
	GenerationStatusPending   = "pending"
	GenerationStatusCompleted = "completed"
	GenerationStatusFailed    = "failed"
)

type Generation struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	UserID           string    `json:"user_id" gorm:"not null;index"`
	OriginalImageURL string    `json:"original_image_url" gorm:"not null"`
	ToonImageURL     string    `json:"toon_image_url"`
	Variant          string    `json:"variant" gorm:"not null;default:'cartoon'"`
	Status           string    `json:"status" gorm:"not null"`
	CreditsUsed      int       `json:"credits_used" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CreateGenerationRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
	Variant  string `json:"variant"`
}
