package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/domain/entity"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
	"github.com/payment-mindmap/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create inserts a new transaction. A zero CreatedAt is stamped at insertion
// time; a supplied one is kept so restore preserves original ordering.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now().UTC()
	}
	result := r.db.WithContext(ctx).Create(model.TransactionFromEntity(transaction))
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return domainerror.ErrTransactionIDExists
		}
		return result.Error
	}
	return nil
}

// CreateWithTotal inserts a transaction and applies the owning recipient's
// new total in one database transaction.
func (r *transactionRepository) CreateWithTotal(ctx context.Context, transaction *entity.Transaction, newTotal decimal.Decimal) error {
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
			if isDuplicateKey(err) {
				return domainerror.ErrTransactionIDExists
			}
			return err
		}
		return setRecipientTotal(tx, transaction.RecipientID, newTotal)
	})
}

// Update performs a full upsert; used to strip transfer links.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	// Save skips nil pointer columns, so clear transfer fields explicitly.
	return r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("id = ?", transaction.ID).
		Updates(map[string]interface{}{
			"recipient_id":    transaction.RecipientID,
			"budget_id":       transaction.BudgetID,
			"amount":          transaction.Amount,
			"description":     transaction.Description,
			"date":            transaction.Date,
			"transfer_id":     transaction.TransferID,
			"transfer_type":   string(transaction.TransferType),
			"is_consolidated": transaction.IsConsolidated,
		}).Error
}

// Delete removes a transaction. Deleting a missing id succeeds with no effect.
func (r *transactionRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	return result.Error
}

// DeleteWithTotal removes a transaction and applies the owning recipient's
// new total in one database transaction.
func (r *transactionRepository) DeleteWithTotal(ctx context.Context, id, recipientID string, newTotal decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.TransactionModel{}, "id = ?", id).Error; err != nil {
			return err
		}
		return setRecipientTotal(tx, recipientID, newTotal)
	})
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByBudget retrieves all transactions tagged with the budget.
func (r *transactionRepository) FindByBudget(ctx context.Context, budgetID string) ([]*entity.Transaction, error) {
	return r.findWhere(ctx, "budget_id = ?", budgetID)
}

// FindByRecipient retrieves all transactions owned by the recipient.
func (r *transactionRepository) FindByRecipient(ctx context.Context, recipientID string) ([]*entity.Transaction, error) {
	return r.findWhere(ctx, "recipient_id = ?", recipientID)
}

func (r *transactionRepository) findWhere(ctx context.Context, query string, arg interface{}) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where(query, arg).
		Order("created_at ASC, date ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// FindSibling retrieves the other leg of a transfer.
func (r *transactionRepository) FindSibling(ctx context.Context, transferID, excludeID string) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("transfer_id = ?", transferID).
		Where("id <> ?", excludeID).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// CountByRecipient counts the transactions owned by the recipient.
func (r *transactionRepository) CountByRecipient(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("recipient_id = ?", recipientID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// SumByBudget returns the sum of all transaction amounts in the budget.
func (r *transactionRepository) SumByBudget(ctx context.Context, budgetID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("budget_id = ?", budgetID).
		Select("COALESCE(SUM(amount), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// CreateTransferPair inserts both transfer legs and applies both recipients'
// new totals in one database transaction. When newRecipient is non-nil it is
// created first within the same transaction.
func (r *transactionRepository) CreateTransferPair(
	ctx context.Context,
	outgoing, incoming *entity.Transaction,
	fromTotal, toTotal decimal.Decimal,
	newRecipient *entity.Recipient,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if newRecipient != nil {
			if err := tx.Create(model.RecipientFromEntity(newRecipient)).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(model.TransactionFromEntity(outgoing)).Error; err != nil {
			return err
		}
		if err := tx.Create(model.TransactionFromEntity(incoming)).Error; err != nil {
			return err
		}
		if err := setRecipientTotal(tx, outgoing.RecipientID, fromTotal); err != nil {
			return err
		}
		return setRecipientTotal(tx, incoming.RecipientID, toTotal)
	})
}

// DeleteTransferPair removes both transfer legs and decrements each owning
// recipient's total by its leg amount, in one database transaction. A
// recipient left without transactions is deleted: a recipient with zero
// transactions does not exist.
func (r *transactionRepository) DeleteTransferPair(ctx context.Context, legA, legB *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, leg := range []*entity.Transaction{legA, legB} {
			if err := tx.Delete(&model.TransactionModel{}, "id = ?", leg.ID).Error; err != nil {
				return err
			}
		}
		for _, leg := range []*entity.Transaction{legA, legB} {
			if err := settleOwnerAfterLegRemoval(tx, leg); err != nil {
				return err
			}
		}
		return nil
	})
}

// settleOwnerAfterLegRemoval decrements the owner's total by the removed leg
// amount, or deletes the owner when no transactions remain. A missing owner
// is skipped, matching the tolerant behavior of the delete path.
func settleOwnerAfterLegRemoval(tx *gorm.DB, leg *entity.Transaction) error {
	var ownerModel model.RecipientModel
	if err := tx.Where("id = ?", leg.RecipientID).First(&ownerModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	var remaining int64
	if err := tx.Model(&model.TransactionModel{}).
		Where("recipient_id = ?", leg.RecipientID).
		Count(&remaining).Error; err != nil {
		return err
	}
	if remaining == 0 {
		return tx.Delete(&model.RecipientModel{}, "id = ?", leg.RecipientID).Error
	}

	return setRecipientTotal(tx, leg.RecipientID, ownerModel.TotalAmount.Sub(leg.Amount))
}

// Consolidate replaces the listed transactions with the single consolidated
// one and re-asserts the owning recipient's total, in one database
// transaction.
func (r *transactionRepository) Consolidate(ctx context.Context, consolidated *entity.Transaction, replacedIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.TransactionModel{}, "id IN ?", replacedIDs).Error; err != nil {
			return err
		}
		if err := tx.Create(model.TransactionFromEntity(consolidated)).Error; err != nil {
			return err
		}
		return setRecipientTotal(tx, consolidated.RecipientID, consolidated.Amount)
	})
}

// setRecipientTotal applies an authoritative total inside a transaction.
func setRecipientTotal(tx *gorm.DB, recipientID string, newTotal decimal.Decimal) error {
	result := tx.Model(&model.RecipientModel{}).
		Where("id = ?", recipientID).
		Updates(map[string]interface{}{
			"total_amount": newTotal,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecipientNotFound
	}
	return nil
}
