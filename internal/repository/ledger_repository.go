package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/leap-ai/toonify-backend/internal/models"
	"gorm.io/gorm"
)

// LedgerRepository owns every balance-affecting write. All balance changes
// are relative deltas applied server-side, never read-modify-write from a
// value the caller holds, and each one is paired with its transaction-log
// insert in the same database transaction.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{
		db: db,
	}
}

// HasProcessedEvent checks whether a payment row already records the given
// webhook event id. A concurrent duplicate that slips past this check is
// stopped by the unique index in ApplyEvent.
func (r *LedgerRepository) HasProcessedEvent(eventID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Payment{}).
		Where("transaction_id = ?", eventID).
		Count(&count).Error
	return count > 0, err
}

// ApplyEvent applies one webhook event's effect atomically: payment insert,
// account update, transaction-log insert, all or nothing. The payment row is
// inserted first so its unique index on transaction_id serializes concurrent
// deliveries of the same event; a second delivery fails the insert and the
// whole transaction rolls back with ErrDuplicateEvent.
func (r *LedgerRepository) ApplyEvent(effect models.LedgerEffect) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if effect.Payment != nil {
			if err := tx.Create(effect.Payment).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return models.ErrDuplicateEvent
				}
				return err
			}
		}

		updates := map[string]interface{}{}
		if effect.CreditsDelta != 0 {
			updates["credits_balance"] = gorm.Expr("credits_balance + ?", effect.CreditsDelta)
		}
		if effect.Subscription.SetProMember != nil {
			updates["is_pro_member"] = *effect.Subscription.SetProMember
		}
		if effect.Subscription.SetExpiresAt != nil {
			updates["pro_membership_expires_at"] = *effect.Subscription.SetExpiresAt
		} else if effect.Subscription.ClearExpiresAt {
			updates["pro_membership_expires_at"] = gorm.Expr("NULL")
		}
		if effect.Subscription.SetGracePeriod != nil {
			updates["subscription_in_grace_period"] = *effect.Subscription.SetGracePeriod
		}

		if len(updates) > 0 {
			updates["updated_at"] = time.Now()
			res := tx.Model(&models.User{}).
				Where("id = ?", effect.UserID).
				Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return models.ErrUserNotFound
			}
		}

		if effect.Transaction != nil {
			if err := tx.Create(effect.Transaction).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// TrySpend decrements the balance by cost if and only if the balance covers
// it, and logs the usage transaction, atomically. The conditional UPDATE is
// what keeps the balance non-negative under concurrent spends: of N racing
// requests only those that still see a sufficient balance match the WHERE
// clause.
func (r *LedgerRepository) TrySpend(userID string, cost int) (int, error) {
	var remaining int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND credits_balance >= ?", userID, cost).
			Updates(map[string]interface{}{
				"credits_balance": gorm.Expr("credits_balance - ?", cost),
				"updated_at":      time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return models.ErrUserNotFound
			}
			return models.ErrInsufficientCredits
		}

		usage := &models.CreditTransaction{
			ID:     uuid.NewString(),
			UserID: userID,
			Amount: -cost,
			Type:   models.TransactionTypeUsage,
		}
		if err := tx.Create(usage).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.Select("credits_balance").First(&user, "id = ?", userID).Error; err != nil {
			return err
		}
		remaining = user.CreditsBalance
		return nil
	})
	return remaining, err
}

// AddCredits grants a positive amount and logs the supplied transaction row
// in one transaction. Used by the client-confirmed purchase path and admin
// grants; webhook grants go through ApplyEvent instead.
func (r *LedgerRepository) AddCredits(transaction *models.CreditTransaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", transaction.UserID).
			Updates(map[string]interface{}{
				"credits_balance": gorm.Expr("credits_balance + ?", transaction.Amount),
				"updated_at":      time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrUserNotFound
		}
		return tx.Create(transaction).Error
	})
}

func (r *LedgerRepository) GetBalance(userID string) (int, error) {
	var user models.User
	err := r.db.Select("credits_balance").First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, models.ErrUserNotFound
	}
	return user.CreditsBalance, err
}

func (r *LedgerRepository) FindTransactionByExternalID(transactionID string) (*models.CreditTransaction, error) {
	var transaction models.CreditTransaction
	err := r.db.Where("transaction_id = ?", transactionID).First(&transaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *LedgerRepository) ListTransactions(userID string) ([]models.CreditTransaction, error) {
	var transactions []models.CreditTransaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&transactions).Error
	return transactions, err
}
