package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/domain/entity"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
)

// AddRecipientInput represents the input for recipient creation. Amount and
// Description describe the recipient's initial transaction; BudgetID is
// optional and defaults to the active budget.
type AddRecipientInput struct {
	Name        string
	Amount      decimal.Decimal
	Description string
	BudgetID    string
}

// AddRecipientOutput represents the output of recipient creation.
type AddRecipientOutput struct {
	Recipient   *entity.Recipient
	Transaction *entity.Transaction
}

// AddRecipientUseCase handles recipient creation with its initial
// transaction. A recipient never exists without at least one transaction.
type AddRecipientUseCase struct {
	resolver        *budgetResolver
	recipientRepo   adapter.RecipientRepository
	transactionRepo adapter.TransactionRepository
}

// NewAddRecipientUseCase creates a new AddRecipientUseCase instance.
func NewAddRecipientUseCase(
	budgetRepo adapter.BudgetRepository,
	settingsRepo adapter.SettingsRepository,
	recipientRepo adapter.RecipientRepository,
	transactionRepo adapter.TransactionRepository,
) *AddRecipientUseCase {
	return &AddRecipientUseCase{
		resolver:        &budgetResolver{budgetRepo: budgetRepo, settingsRepo: settingsRepo},
		recipientRepo:   recipientRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the recipient creation.
func (uc *AddRecipientUseCase) Execute(ctx context.Context, input AddRecipientInput) (*AddRecipientOutput, error) {
	budget, err := uc.resolver.Resolve(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	exists, err := uc.recipientRepo.ExistsByNameAndBudget(ctx, name, budget.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check recipient name: %w", err)
	}
	if exists {
		return nil, domainerror.NewRecipientError(
			domainerror.ErrCodeRecipientNameExists,
			fmt.Sprintf("recipient %q already exists in this budget", name),
			domainerror.ErrRecipientNameExists,
		)
	}

	// Positive amounts draw from the available balance; negative amounts
	// are returns and always pass.
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

	siblings, err := uc.recipientRepo.FindByBudget(ctx, budget.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget recipients: %w", err)
	}

	recipient := entity.NewRecipient(
		newID("payment"),
		name,
		budget.ID,
		input.Amount,
		nextPosition(positionsOf(siblings), len(siblings)),
	)
	transaction := entity.NewTransaction(
		newID("payment"),
		recipient.ID,
		budget.ID,
		input.Amount,
		input.Description,
		todayDateOnly(),
	)

	if err := uc.recipientRepo.CreateWithTransaction(ctx, recipient, transaction); err != nil {
		return nil, fmt.Errorf("failed to create recipient: %w", err)
	}

	return &AddRecipientOutput{
		Recipient:   recipient,
		Transaction: transaction,
	}, nil
}
