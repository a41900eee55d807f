package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/integration/persistence/model"
)

// settingsRepository implements the adapter.SettingsRepository interface on
// top of the settings key-value table.
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository instance.
func NewSettingsRepository(db *gorm.DB) adapter.SettingsRepository {
	return &settingsRepository{
		db: db,
	}
}

// GetActiveBudgetID returns the persisted active-budget pointer, or the
// empty string when none is set.
func (r *settingsRepository) GetActiveBudgetID(ctx context.Context) (string, error) {
	value, err := r.get(ctx, model.SettingActiveBudgetID)
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetActiveBudgetID persists the active-budget pointer.
func (r *settingsRepository) SetActiveBudgetID(ctx context.Context, budgetID string) error {
	return r.set(ctx, model.SettingActiveBudgetID, budgetID)
}

// ClearActiveBudgetID removes the active-budget pointer.
func (r *settingsRepository) ClearActiveBudgetID(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Delete(&model.SettingModel{}, "key = ?", model.SettingActiveBudgetID).Error
}

// GetInitialPayment returns the legacy singleton initial payment, or zero
// when never set.
func (r *settingsRepository) GetInitialPayment(ctx context.Context) (decimal.Decimal, error) {
	value, err := r.get(ctx, model.SettingInitialPayment)
	if err != nil {
		return decimal.Zero, err
	}
	if value == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// SetInitialPayment updates the legacy singleton initial payment.
func (r *settingsRepository) SetInitialPayment(ctx context.Context, amount decimal.Decimal) error {
	return r.set(ctx, model.SettingInitialPayment, amount.String())
}

func (r *settingsRepository) get(ctx context.Context, key string) (string, error) {
	var settingModel model.SettingModel
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&settingModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}
	return settingModel.Value, nil
}

func (r *settingsRepository) set(ctx context.Context, key, value string) error {
	setting := model.SettingModel{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
}
