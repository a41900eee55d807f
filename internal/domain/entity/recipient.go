package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is a recipient's location on the mindmap canvas.
type Position struct {
	X float64
	Y float64
}

// Recipient is a named party who has received money from a budget.
// TotalAmount is a materialized cache of the sum of the recipient's
// transaction amounts; every mutation path that touches a transaction must
// update it in the same storage transaction. A recipient with zero
// transactions does not exist.
type Recipient struct {
	ID          string
	Name        string
	BudgetID    string
	TotalAmount decimal.Decimal
	Position    Position
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRecipient creates a new Recipient entity.
func NewRecipient(id, name, budgetID string, totalAmount decimal.Decimal, position Position) *Recipient {
	now := time.Now().UTC()

	return &Recipient{
		ID:          id,
		Name:        name,
		BudgetID:    budgetID,
		TotalAmount: totalAmount,
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// RecipientWithTransactions pairs a recipient with its transactions,
// sorted chronologically, as exposed by the load-data snapshot.
type RecipientWithTransactions struct {
	Recipient    *Recipient
	Transactions []*Transaction
}
