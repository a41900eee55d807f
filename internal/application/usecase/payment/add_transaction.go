package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/domain/entity"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
)

// AddTransactionInput represents the input for adding a transaction to an
// existing recipient. Negative amounts record money returned.
type AddTransactionInput struct {
	RecipientID string
	Amount      decimal.Decimal
	Description string
	BudgetID    string
}

// AddTransactionOutput represents the output of adding a transaction.
type AddTransactionOutput struct {
	Transaction *entity.Transaction
	NewTotal    decimal.Decimal
}

// AddTransactionUseCase handles adding a transaction to a recipient.
type AddTransactionUseCase struct {
	resolver        *budgetResolver
	recipientRepo   adapter.RecipientRepository
	transactionRepo adapter.TransactionRepository
}

// NewAddTransactionUseCase creates a new AddTransactionUseCase instance.
func NewAddTransactionUseCase(
	budgetRepo adapter.BudgetRepository,
	settingsRepo adapter.SettingsRepository,
	recipientRepo adapter.RecipientRepository,
	transactionRepo adapter.TransactionRepository,
) *AddTransactionUseCase {
	return &AddTransactionUseCase{
		resolver:        &budgetResolver{budgetRepo: budgetRepo, settingsRepo: settingsRepo},
		recipientRepo:   recipientRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction creation and total update atomically.
func (uc *AddTransactionUseCase) Execute(ctx context.Context, input AddTransactionInput) (*AddTransactionOutput, error) {
	budget, err := uc.resolver.Resolve(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}

	recipient, err := uc.recipientRepo.FindByID(ctx, input.RecipientID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecipientNotFound) {
			return nil, domainerror.NewRecipientError(
				domainerror.ErrCodeRecipientNotFound,
				"recipient not found",
				domainerror.ErrRecipientNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find recipient: %w", err)
	}

	if input.Amount.IsPositive() {
		available, err := availableBalance(ctx, uc.transactionRepo, budget)
		if err != nil {
			return nil, err
		}
		if input.Amount.GreaterThan(available) {
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodeInsufficientBalance,
				fmt.Sprintf("insufficient balance, available: %s", available.StringFixed(2)),
				domainerror.ErrInsufficientBalance,
			)
		}
	}

	transaction := entity.NewTransaction(
		newID("payment"),
		recipient.ID,
		budget.ID,
		input.Amount,
		input.Description,
		todayDateOnly(),
	)
	newTotal := recipient.TotalAmount.Add(input.Amount)

	if err := uc.transactionRepo.CreateWithTotal(ctx, transaction, newTotal); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &AddTransactionOutput{
		Transaction: transaction,
		NewTotal:    newTotal,
	}, nil
}
