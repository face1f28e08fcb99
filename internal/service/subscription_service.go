package service

import (
	"github.com/leap-ai/toonify-backend/internal/models"
	"github.com/leap-ai/toonify-backend/internal/plans"
	"github.com/leap-ai/toonify-backend/internal/repository"
)

type SubscriptionService struct {
	userRepo *repository.UserRepository
	catalog  plans.Catalog
}

func NewSubscriptionService(userRepo *repository.UserRepository, catalog plans.Catalog) *SubscriptionService {
	return &SubscriptionService{
		userRepo: userRepo,
		catalog:  catalog,
	}
}

// GetPlans lists the purchasable subscription plans for the store paywall.
func (s *SubscriptionService) GetPlans() []plans.Plan {
	return s.catalog.All()
}

func (s *SubscriptionService) GetProStatus(userID string) (*models.ProStatus, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return &models.ProStatus{
		CreditsBalance:            user.CreditsBalance,
		IsProMember:               user.IsProMember,
		ProMembershipExpiresAt:    user.ProMembershipExpiresAt,
		SubscriptionInGracePeriod: user.SubscriptionInGracePeriod,
	}, nil
}
