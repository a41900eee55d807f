// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/payment-mindmap/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the store.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id string) (*entity.Budget, error)

	// FindByName retrieves a budget by name (case-insensitive, trimmed).
	FindByName(ctx context.Context, name string) (*entity.Budget, error)

	// FindAll retrieves all budgets ordered by creation time.
	FindAll(ctx context.Context) ([]*entity.Budget, error)

	// Update updates an existing budget.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete removes the budget record only; dependent recipients and
	// transactions are not cascaded here.
	Delete(ctx context.Context, id string) error
}
