// Package entity defines the core business entities for the payment mindmap ledger.
package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a named container with an initial funding amount, scoping a set
// of recipients and transactions. Exactly one budget is active at a time;
// the active pointer lives in settings, not on the budget itself.
type Budget struct {
	ID             string
	Name           string
	InitialPayment decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewBudget creates a new Budget entity with a trimmed name.
func NewBudget(id, name string, initialPayment decimal.Decimal) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:             id,
		Name:           strings.TrimSpace(name),
		InitialPayment: initialPayment,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// NameEquals reports whether the budget name matches the given name under the
// uniqueness rule (case-insensitive, trimmed).
func (b *Budget) NameEquals(name string) bool {
	return strings.EqualFold(strings.TrimSpace(b.Name), strings.TrimSpace(name))
}
