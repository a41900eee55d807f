package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence
// operations, including the composite atomic operations the orchestrator
// relies on to keep recipient totals consistent with transaction history.
type TransactionRepository interface {
	// Create inserts a new transaction. The created_at timestamp is kept
	// when already supplied so restore paths preserve original ordering.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// CreateWithTotal inserts a transaction and sets the owning recipient's
	// total to newTotal in one storage transaction.
	CreateWithTotal(ctx context.Context, transaction *entity.Transaction, newTotal decimal.Decimal) error

	// Update performs a full upsert; used to strip transfer links.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction. Deleting a missing id is a no-op success.
	Delete(ctx context.Context, id string) error

	// DeleteWithTotal removes a transaction and sets the owning recipient's
	// total to newTotal in one storage transaction.
	DeleteWithTotal(ctx context.Context, id, recipientID string, newTotal decimal.Decimal) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id string) (*entity.Transaction, error)

	// FindByBudget retrieves all transactions tagged with the budget.
	FindByBudget(ctx context.Context, budgetID string) ([]*entity.Transaction, error)

	// FindByRecipient retrieves all transactions owned by the recipient.
	FindByRecipient(ctx context.Context, recipientID string) ([]*entity.Transaction, error)

	// FindSibling retrieves the other leg of a transfer: same transfer id,
	// different transaction id.
	FindSibling(ctx context.Context, transferID, excludeID string) (*entity.Transaction, error)

	// CountByRecipient counts the transactions owned by the recipient.
	CountByRecipient(ctx context.Context, recipientID string) (int64, error)

	// SumByBudget returns the sum of all transaction amounts in the budget.
	SumByBudget(ctx context.Context, budgetID string) (decimal.Decimal, error)

	// CreateTransferPair inserts both transfer legs and applies both
	// recipients' new totals in one storage transaction. When newRecipient
	// is non-nil it is created first within the same transaction (transfer
	// to a recipient created on the fly).
	CreateTransferPair(
		ctx context.Context,
		outgoing, incoming *entity.Transaction,
		fromTotal, toTotal decimal.Decimal,
		newRecipient *entity.Recipient,
	) error

	// DeleteTransferPair removes both transfer legs and decrements each
	// owning recipient's total by its leg amount in one storage transaction.
	// An owner left with zero transactions is deleted outright.
	DeleteTransferPair(ctx context.Context, legA, legB *entity.Transaction) error

	// Consolidate replaces the listed transactions with the single
	// consolidated one and re-asserts the owning recipient's total to the
	// consolidated amount, all in one storage transaction.
	Consolidate(ctx context.Context, consolidated *entity.Transaction, replacedIDs []string) error
}
