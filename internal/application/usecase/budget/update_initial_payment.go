package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
)

// UpdateInitialPaymentInput represents the input for an initial payment
// update. An empty BudgetID targets the legacy settings singleton instead of
// a budget record.
type UpdateInitialPaymentInput struct {
	Amount   decimal.Decimal
	BudgetID string
}

// UpdateInitialPaymentOutput represents the output of an initial payment update.
type UpdateInitialPaymentOutput struct {
	Amount decimal.Decimal
}

// UpdateInitialPaymentUseCase handles initial payment updates. Lowering the
// amount below what is already distributed is allowed; the available balance
// simply goes negative until payments are removed.
type UpdateInitialPaymentUseCase struct {
	budgetRepo   adapter.BudgetRepository
	settingsRepo adapter.SettingsRepository
}

// NewUpdateInitialPaymentUseCase creates a new UpdateInitialPaymentUseCase instance.
func NewUpdateInitialPaymentUseCase(budgetRepo adapter.BudgetRepository, settingsRepo adapter.SettingsRepository) *UpdateInitialPaymentUseCase {
	return &UpdateInitialPaymentUseCase{
		budgetRepo:   budgetRepo,
		settingsRepo: settingsRepo,
	}
}

// Execute performs the initial payment update.
func (uc *UpdateInitialPaymentUseCase) Execute(ctx context.Context, input UpdateInitialPaymentInput) (*UpdateInitialPaymentOutput, error) {
	if input.Amount.IsNegative() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeNegativeInitialPayment,
			"initial payment cannot be negative",
			domainerror.ErrNegativeInitialPayment,
		)
	}

	if input.BudgetID == "" {
		if err := uc.settingsRepo.SetInitialPayment(ctx, input.Amount); err != nil {
			return nil, fmt.Errorf("failed to update initial payment: %w", err)
		}
		return &UpdateInitialPaymentOutput{Amount: input.Amount}, nil
	}

	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	budget.InitialPayment = input.Amount
	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return &UpdateInitialPaymentOutput{Amount: input.Amount}, nil
}
