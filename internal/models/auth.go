package models

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type PurchaseCreditsRequest struct {
	Amount        int    `json:"amount" validate:"required,gt=0"`
	TransactionID string `json:"transaction_id"`
	ProductID     string `json:"product_id"`
}

type AddCreditsRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Amount int    `json:"amount" validate:"required,gt=0"`
}
