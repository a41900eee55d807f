package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/domain/entity"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
)

// SetActiveBudgetInput represents the input for setting the active budget.
type SetActiveBudgetInput struct {
	BudgetID string
}

// SetActiveBudgetOutput represents the output of setting the active budget.
type SetActiveBudgetOutput struct {
	Budget *entity.Budget
}

// SetActiveBudgetUseCase handles switching the active budget.
type SetActiveBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	settingsRepo adapter.SettingsRepository
}

// NewSetActiveBudgetUseCase creates a new SetActiveBudgetUseCase instance.
func NewSetActiveBudgetUseCase(budgetRepo adapter.BudgetRepository, settingsRepo adapter.SettingsRepository) *SetActiveBudgetUseCase {
	return &SetActiveBudgetUseCase{
		budgetRepo:   budgetRepo,
		settingsRepo: settingsRepo,
	}
}

// Execute points the active-budget pointer at an existing budget.
func (uc *SetActiveBudgetUseCase) Execute(ctx context.Context, input SetActiveBudgetInput) (*SetActiveBudgetOutput, error) {
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

	if err := uc.settingsRepo.SetActiveBudgetID(ctx, budget.ID); err != nil {
		return nil, fmt.Errorf("failed to persist active budget pointer: %w", err)
	}

	return &SetActiveBudgetOutput{
		Budget: budget,
	}, nil
}
