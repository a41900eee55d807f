package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID             string          `gorm:"type:varchar(64);primaryKey"`
	RecipientID    string          `gorm:"type:varchar(64);not null;index"`
	BudgetID       string          `gorm:"type:varchar(64);not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description    string          `gorm:"type:varchar(255);not null"`
	Date           time.Time       `gorm:"not null"`
	CreatedAt      time.Time       `gorm:"not null"`
	TransferID     *string         `gorm:"type:varchar(64);index"`
	TransferType   string          `gorm:"type:varchar(10)"`
	IsConsolidated bool            `gorm:"default:false"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:             m.ID,
		RecipientID:    m.RecipientID,
		BudgetID:       m.BudgetID,
		Amount:         m.Amount,
		Description:    m.Description,
		Date:           m.Date,
		CreatedAt:      m.CreatedAt,
		TransferID:     m.TransferID,
		TransferType:   entity.TransferType(m.TransferType),
		IsConsolidated: m.IsConsolidated,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:             transaction.ID,
		RecipientID:    transaction.RecipientID,
		BudgetID:       transaction.BudgetID,
		Amount:         transaction.Amount,
		Description:    transaction.Description,
		Date:           transaction.Date,
		CreatedAt:      transaction.CreatedAt,
		TransferID:     transaction.TransferID,
		TransferType:   string(transaction.TransferType),
		IsConsolidated: transaction.IsConsolidated,
	}
}
