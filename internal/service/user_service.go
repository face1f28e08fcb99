package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/leap-ai/toonify-backend/internal/models"
	"github.com/leap-ai/toonify-backend/internal/repository"
	"github.com/leap-ai/toonify-backend/pkg/storage"
	"github.com/leap-ai/toonify-backend/pkg/utils"
)

// MaxAvatarSize caps profile picture uploads at 5 MB.
const MaxAvatarSize = 5 * 1024 * 1024

type UserService struct {
	userRepo *repository.UserRepository
	storage  storage.StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage storage.StorageService) *UserService {
	return &UserService{
		userRepo: userRepo,
		storage:  storage,
	}
}

func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *UserService) UploadAvatar(userID string, file *multipart.FileHeader) (string, error) {
	if file.Size > MaxAvatarSize {
		return "", errors.New("file too large (max 5MB)")
	}
	contentType := file.Header.Get("Content-Type")
	if !utils.IsSupportedImageType(contentType) {
		return "", errors.New("unsupported image type (jpeg, png, webp or heic)")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), filepath.Ext(file.Filename))
	if err := s.storage.Upload(key, src); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	avatarURL := s.storage.PublicURL(key)
	if err := s.userRepo.UpdateAvatarURL(userID, avatarURL); err != nil {
		return "", err
	}

	return avatarURL, nil
}
