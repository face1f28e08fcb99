package service

import (
	"github.com/google/uuid"
	"github.com/leap-ai/toonify-backend/internal/models"
)

// CreditStore is the slice of the ledger repository the credit service needs.
type CreditStore interface {
	GetBalance(userID string) (int, error)
	TrySpend(userID string, cost int) (int, error)
	AddCredits(transaction *models.CreditTransaction) error
	FindTransactionByExternalID(transactionID string) (*models.CreditTransaction, error)
	ListTransactions(userID string) ([]models.CreditTransaction, error)
}

type CreditService struct {
	store CreditStore
}

func NewCreditService(store CreditStore) *CreditService {
	return &CreditService{
		store: store,
	}
}

func (s *CreditService) GetBalance(userID string) (int, error) {
	return s.store.GetBalance(userID)
}

func (s *CreditService) GetHistory(userID string) ([]models.CreditTransaction, error) {
	return s.store.ListTransactions(userID)
}

// Spend is the gate in front of every paid generation: it checks and
// decrements atomically, so concurrent requests can never overdraw the
// balance. Returns models.ErrInsufficientCredits without any mutation when
// the balance does not cover the cost.
func (s *CreditService) Spend(userID string, cost int) (int, error) {
	return s.store.TrySpend(userID, cost)
}

// PurchaseCredits credits a client-confirmed store purchase. Deduplicated by
// the store transaction id: replaying the same confirmation returns the
// already-recorded transaction instead of granting twice.
func (s *CreditService) PurchaseCredits(userID string, req models.PurchaseCreditsRequest) (*models.CreditTransaction, error) {
	if req.TransactionID != "" {
		existing, err := s.store.FindTransactionByExternalID(req.TransactionID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	transaction := &models.CreditTransaction{
		ID:            uuid.NewString(),
		UserID:        userID,
		Amount:        req.Amount,
		Type:          models.TransactionTypePurchase,
		PaymentID:     req.TransactionID,
		TransactionID: req.TransactionID,
		ProductID:     req.ProductID,
	}
	if err := s.store.AddCredits(transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

// AddCredits is the out-of-band admin grant.
func (s *CreditService) AddCredits(req models.AddCreditsRequest) (*models.CreditTransaction, error) {
	transaction := &models.CreditTransaction{
		ID:     uuid.NewString(),
		UserID: req.UserID,
		Amount: req.Amount,
		Type:   models.TransactionTypeAdminAdd,
	}
	if err := s.store.AddCredits(transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}
