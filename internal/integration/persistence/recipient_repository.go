package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/domain/entity"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
	"github.com/payment-mindmap/backend/internal/integration/persistence/model"
)

// recipientRepository implements the adapter.RecipientRepository interface.
type recipientRepository struct {
	db *gorm.DB
}

// NewRecipientRepository creates a new recipient repository instance.
func NewRecipientRepository(db *gorm.DB) adapter.RecipientRepository {
	return &recipientRepository{
		db: db,
	}
}

// Create persists a new recipient.
func (r *recipientRepository) Create(ctx context.Context, recipient *entity.Recipient) error {
	recipientModel := model.RecipientFromEntity(recipient)
	result := r.db.WithContext(ctx).Create(recipientModel)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return domainerror.ErrRecipientNameExists
		}
		return result.Error
	}
	return nil
}

// CreateWithTransaction persists a recipient and its initial transaction in
// one database transaction.
func (r *recipientRepository) CreateWithTransaction(ctx context.Context, recipient *entity.Recipient, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.RecipientFromEntity(recipient)).Error; err != nil {
			return err
		}
		if err := tx.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
			return err
		}
		return nil
	})
}

// FindByID retrieves a recipient by its ID.
func (r *recipientRepository) FindByID(ctx context.Context, id string) (*entity.Recipient, error) {
	var recipientModel model.RecipientModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&recipientModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecipientNotFound
		}
		return nil, result.Error
	}
	return recipientModel.ToEntity(), nil
}

// FindByBudget retrieves all recipients belonging to a budget.
func (r *recipientRepository) FindByBudget(ctx context.Context, budgetID string) ([]*entity.Recipient, error) {
	var recipientModels []model.RecipientModel
	result := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("created_at ASC").
		Find(&recipientModels)
	if result.Error != nil {
		return nil, result.Error
	}

	recipients := make([]*entity.Recipient, len(recipientModels))
	for i, rm := range recipientModels {
		recipients[i] = rm.ToEntity()
	}
	return recipients, nil
}

// ExistsByNameAndBudget checks case-insensitive name uniqueness within a budget.
func (r *recipientRepository) ExistsByNameAndBudget(ctx context.Context, name, budgetID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.RecipientModel{}).
		Where("budget_id = ?", budgetID).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// UpdateTotal sets the recipient's total to the supplied authoritative value.
func (r *recipientRepository) UpdateTotal(ctx context.Context, id string, newTotal decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&model.RecipientModel{}).
		Where("id = ?", id).
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

// Update performs a full upsert of the recipient.
func (r *recipientRepository) Update(ctx context.Context, recipient *entity.Recipient) error {
	recipient.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).Save(model.RecipientFromEntity(recipient))
	return result.Error
}

// Delete removes the recipient and all of its transactions in one database
// transaction; either both succeed or neither is applied.
func (r *recipientRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipient_id = ?", id).Delete(&model.TransactionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&model.RecipientModel{}).Error; err != nil {
			return err
		}
		return nil
	})
}
