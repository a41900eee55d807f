package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/internal/domain/entity"
)

// RecipientRepository defines the interface for recipient persistence
// operations. Name-uniqueness validation is the orchestrator's job, not the
// repository's, so bulk/restore paths can skip it.
type RecipientRepository interface {
	// Create persists a new recipient.
	Create(ctx context.Context, recipient *entity.Recipient) error

	// CreateWithTransaction persists a recipient and its initial transaction
	// in one storage transaction; neither is visible unless both succeed.
	CreateWithTransaction(ctx context.Context, recipient *entity.Recipient, transaction *entity.Transaction) error

	// FindByID retrieves a recipient by its ID.
	FindByID(ctx context.Context, id string) (*entity.Recipient, error)

	// FindByBudget retrieves all recipients belonging to a budget.
	FindByBudget(ctx context.Context, budgetID string) ([]*entity.Recipient, error)

	// ExistsByNameAndBudget checks whether a recipient with the given name
	// (case-insensitive) already exists within the budget.
	ExistsByNameAndBudget(ctx context.Context, name, budgetID string) (bool, error)

	// UpdateTotal sets the recipient's total to the supplied authoritative
	// value and bumps updated_at. It never recomputes from transactions.
	UpdateTotal(ctx context.Context, id string, newTotal decimal.Decimal) error

	// Update performs a full upsert of the recipient.
	Update(ctx context.Context, recipient *entity.Recipient) error

	// Delete removes the recipient and cascades deletion of all its
	// transactions in one storage transaction.
	Delete(ctx context.Context, id string) error
}
