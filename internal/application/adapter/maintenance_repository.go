package adapter

import (
	"context"

	"github.com/payment-mindmap/backend/internal/domain/entity"
)

// MaintenanceRepository covers the bulk restore/reset paths that rewrite
// whole collections at once.
type MaintenanceRepository interface {
	// RestoreBudget clears all recipients and transactions scoped to the
	// budget and recreates them verbatim from the snapshot, in one storage
	// transaction. A trusted bulk-load path: no balance validation.
	RestoreBudget(ctx context.Context, budgetID string, recipients []*entity.Recipient, transactions []*entity.Transaction) error

	// ResetAll clears budgets, recipients and transactions, resets the
	// legacy initial payment to zero and drops the active-budget pointer.
	ResetAll(ctx context.Context) error
}
