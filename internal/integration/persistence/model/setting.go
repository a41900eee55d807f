package model

import "time"

// Setting keys for state persisted outside the ledger collections.
const (
	SettingActiveBudgetID = "active_budget_id"
	SettingInitialPayment = "initial_payment_amount"
)

// SettingModel represents the settings key-value table.
type SettingModel struct {
	Key       string    `gorm:"type:varchar(64);primaryKey"`
	Value     string    `gorm:"type:varchar(255);not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the SettingModel.
func (SettingModel) TableName() string {
	return "settings"
}
