package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/domain/entity"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
)

// ConsolidateRecipientInput represents the input for collapsing a
// recipient's transaction history into a single transaction.
type ConsolidateRecipientInput struct {
	RecipientID string
	Description string
	BudgetID    string
}

// ConsolidateRecipientOutput represents the output of a consolidation.
type ConsolidateRecipientOutput struct {
	Transaction *entity.Transaction
	NewTotal    decimal.Decimal
}

// ConsolidateRecipientUseCase replaces a recipient's transactions with one
// consolidated transaction carrying their summed amount. The recipient total
// is unchanged by construction; the history granularity is what goes.
type ConsolidateRecipientUseCase struct {
	resolver        *budgetResolver
	recipientRepo   adapter.RecipientRepository
	transactionRepo adapter.TransactionRepository
}

// NewConsolidateRecipientUseCase creates a new ConsolidateRecipientUseCase instance.
func NewConsolidateRecipientUseCase(
	budgetRepo adapter.BudgetRepository,
	settingsRepo adapter.SettingsRepository,
	recipientRepo adapter.RecipientRepository,
	transactionRepo adapter.TransactionRepository,
) *ConsolidateRecipientUseCase {
	return &ConsolidateRecipientUseCase{
		resolver:        &budgetResolver{budgetRepo: budgetRepo, settingsRepo: settingsRepo},
		recipientRepo:   recipientRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the consolidation.
func (uc *ConsolidateRecipientUseCase) Execute(ctx context.Context, input ConsolidateRecipientInput) (*ConsolidateRecipientOutput, error) {
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

	transactions, err := uc.transactionRepo.FindByRecipient(ctx, recipient.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipient transactions: %w", err)
	}

	// Only this budget's slice of the history is collapsed.
	inBudget := transactions[:0]
	for _, t := range transactions {
		if t.BudgetID == budget.ID {
			inBudget = append(inBudget, t)
		}
	}

	if len(inBudget) <= 1 {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeTooFewTransactions,
			"recipient must have more than one transaction to consolidate",
			domainerror.ErrTooFewTransactions,
		)
	}

	total := decimal.Zero
	replacedIDs := make([]string, len(inBudget))
	for i, t := range inBudget {
		total = total.Add(t.Amount)
		replacedIDs[i] = t.ID
	}

	consolidated := &entity.Transaction{
		ID:             newID("transaction"),
		RecipientID:    recipient.ID,
		BudgetID:       budget.ID,
		Amount:         total,
		Description:    input.Description,
		Date:           todayDateOnly(),
		CreatedAt:      time.Now().UTC(),
		IsConsolidated: true,
	}

	if err := uc.transactionRepo.Consolidate(ctx, consolidated, replacedIDs); err != nil {
		return nil, fmt.Errorf("failed to consolidate transactions: %w", err)
	}

	return &ConsolidateRecipientOutput{
		Transaction: consolidated,
		NewTotal:    total,
	}, nil
}
