package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/domain/entity"
	"github.com/payment-mindmap/backend/internal/integration/persistence/model"
)

// maintenanceRepository implements the adapter.MaintenanceRepository
// interface for the bulk restore and reset paths.
type maintenanceRepository struct {
	db *gorm.DB
}

// NewMaintenanceRepository creates a new maintenance repository instance.
func NewMaintenanceRepository(db *gorm.DB) adapter.MaintenanceRepository {
	return &maintenanceRepository{
		db: db,
	}
}

// RestoreBudget clears all recipients and transactions scoped to the budget
// and recreates them verbatim from the snapshot, in one database transaction.
// This is a trusted bulk-load path so no balance validation happens here.
func (r *maintenanceRepository) RestoreBudget(ctx context.Context, budgetID string, recipients []*entity.Recipient, transactions []*entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", budgetID).Delete(&model.TransactionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("budget_id = ?", budgetID).Delete(&model.RecipientModel{}).Error; err != nil {
			return err
		}
		for _, recipient := range recipients {
			if err := tx.Create(model.RecipientFromEntity(recipient)).Error; err != nil {
				return err
			}
		}
		for _, transaction := range transactions {
			if transaction.CreatedAt.IsZero() {
				transaction.CreatedAt = time.Now().UTC()
			}
			if err := tx.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ResetAll clears every ledger collection, resets the legacy initial payment
// to zero and drops the active-budget pointer, in one database transaction.
func (r *maintenanceRepository) ResetAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.TransactionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.RecipientModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.BudgetModel{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&model.SettingModel{}).Error
	})
}
