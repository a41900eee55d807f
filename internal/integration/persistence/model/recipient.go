package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/internal/domain/entity"
)

// RecipientModel represents the recipients table in the database.
type RecipientModel struct {
	ID          string          `gorm:"type:varchar(64);primaryKey"`
	Name        string          `gorm:"type:varchar(255);not null;index"`
	BudgetID    string          `gorm:"type:varchar(64);not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PositionX   float64         `gorm:"not null"`
	PositionY   float64         `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the RecipientModel.
func (RecipientModel) TableName() string {
	return "recipients"
}

// ToEntity converts a RecipientModel to a domain Recipient entity.
func (m *RecipientModel) ToEntity() *entity.Recipient {
	return &entity.Recipient{
		ID:          m.ID,
		Name:        m.Name,
		BudgetID:    m.BudgetID,
		TotalAmount: m.TotalAmount,
		Position:    entity.Position{X: m.PositionX, Y: m.PositionY},
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// RecipientFromEntity creates a RecipientModel from a domain Recipient entity.
func RecipientFromEntity(recipient *entity.Recipient) *RecipientModel {
	return &RecipientModel{
		ID:          recipient.ID,
		Name:        recipient.Name,
		BudgetID:    recipient.BudgetID,
		TotalAmount: recipient.TotalAmount,
		PositionX:   recipient.Position.X,
		PositionY:   recipient.Position.Y,
		CreatedAt:   recipient.CreatedAt,
		UpdatedAt:   recipient.UpdatedAt,
	}
}
