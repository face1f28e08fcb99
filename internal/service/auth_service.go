package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/leap-ai/toonify-backend/internal/models"
	"github.com/leap-ai/toonify-backend/internal/repository"
	"github.com/leap-ai/toonify-backend/pkg/bcrypt"
	"github.com/leap-ai/toonify-backend/pkg/email"
	"github.com/leap-ai/toonify-backend/pkg/jwt"
)

type AuthService struct {
	userRepo     *repository.UserRepository
	emailService *email.EmailService
	jwtSecret    []byte
}

func NewAuthService(userRepo *repository.UserRepository, emailService *email.EmailService, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
		jwtSecret:    []byte(jwtSecret),
	}
}

// Register creates the account at first successful authentication. New
// accounts start with the default credit balance from the user model.
func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:             uuid.NewString(),
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       hashedPassword,
		CreditsBalance: 5,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		go s.emailService.SendWelcomeEmail(user.Email, user.FullName)
	}

	token, err := jwt.GenerateToken(s.jwtSecret, user.Email, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, errors.New("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, err := jwt.GenerateToken(s.jwtSecret, user.Email, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}
