package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/domain/entity"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
)

// DeleteBudgetInput represents the input for budget deletion.
type DeleteBudgetInput struct {
	BudgetID string
}

// DeleteBudgetOutput represents the output of budget deletion. Success is
// false when the budget was already gone but a stale active pointer to it was
// repaired. SwitchedToBudget is the budget promoted to active, if any.
type DeleteBudgetOutput struct {
	Success          bool
	SwitchedToBudget *entity.Budget
}

// DeleteBudgetUseCase handles budget deletion and active-pointer repair.
type DeleteBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	settingsRepo adapter.SettingsRepository
}

// NewDeleteBudgetUseCase creates a new DeleteBudgetUseCase instance.
func NewDeleteBudgetUseCase(budgetRepo adapter.BudgetRepository, settingsRepo adapter.SettingsRepository) *DeleteBudgetUseCase {
	return &DeleteBudgetUseCase{
		budgetRepo:   budgetRepo,
		settingsRepo: settingsRepo,
	}
}

// Execute performs the budget deletion. Recipients and transactions scoped to
// the budget are intentionally left in place; only the budget record and the
// active pointer are touched.
func (uc *DeleteBudgetUseCase) Execute(ctx context.Context, input DeleteBudgetInput) (*DeleteBudgetOutput, error) {
	activeID, err := uc.settingsRepo.GetActiveBudgetID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read active budget pointer: %w", err)
	}

	_, err = uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, fmt.Errorf("failed to find budget: %w", err)
		}

		// The budget is already gone. When the active pointer still names
		// it, repair the pointer instead of failing.
		if activeID != input.BudgetID {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
			)
		}
		switched, err := uc.switchAway(ctx)
		if err != nil {
			return nil, err
		}
		return &DeleteBudgetOutput{
			Success:          false,
			SwitchedToBudget: switched,
		}, nil
	}

	if err := uc.budgetRepo.Delete(ctx, input.BudgetID); err != nil {
		return nil, fmt.Errorf("failed to delete budget: %w", err)
	}

	output := &DeleteBudgetOutput{Success: true}
	if activeID == input.BudgetID {
		switched, err := uc.switchAway(ctx)
		if err != nil {
			return nil, err
		}
		output.SwitchedToBudget = switched
	}
	return output, nil
}

// switchAway points the active pointer at any remaining budget, or clears it
// when none are left. Returns the promoted budget, if any.
func (uc *DeleteBudgetUseCase) switchAway(ctx context.Context) (*entity.Budget, error) {
	budgets, err := uc.budgetRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if len(budgets) == 0 {
		if err := uc.settingsRepo.ClearActiveBudgetID(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear active budget pointer: %w", err)
		}
		return nil, nil
	}

	first := budgets[0]
	if err := uc.settingsRepo.SetActiveBudgetID(ctx, first.ID); err != nil {
		return nil, fmt.Errorf("failed to persist active budget pointer: %w", err)
	}
	return first, nil
}
