package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// SettingsRepository persists the small amount of process-wide state that
// lives outside the ledger collections: the active-budget pointer and the
// legacy initial-payment singleton used when no budget id is supplied.
type SettingsRepository interface {
	// GetActiveBudgetID returns the persisted active-budget pointer, or the
	// empty string when none is set.
	GetActiveBudgetID(ctx context.Context) (string, error)

	// SetActiveBudgetID persists the active-budget pointer.
	SetActiveBudgetID(ctx context.Context, budgetID string) error

	// ClearActiveBudgetID removes the active-budget pointer.
	ClearActiveBudgetID(ctx context.Context) error

	// GetInitialPayment returns the legacy singleton initial payment,
	// or zero when never set.
	GetInitialPayment(ctx context.Context) (decimal.Decimal, error)

	// SetInitialPayment updates the legacy singleton initial payment.
	SetInitialPayment(ctx context.Context, amount decimal.Decimal) error
}
