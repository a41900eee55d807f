package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/domain/entity"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
)

// GetActiveBudgetOutput represents the output of the active-budget lookup.
// Budget is nil when no budget exists at all.
type GetActiveBudgetOutput struct {
	Budget *entity.Budget
}

// GetActiveBudgetUseCase resolves the active budget, repairing a stale
// pointer along the way. It never fails because the pointer is stale; a
// dangling pointer is cleared and the first available budget is promoted.
type GetActiveBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	settingsRepo adapter.SettingsRepository
}

// NewGetActiveBudgetUseCase creates a new GetActiveBudgetUseCase instance.
func NewGetActiveBudgetUseCase(budgetRepo adapter.BudgetRepository, settingsRepo adapter.SettingsRepository) *GetActiveBudgetUseCase {
	return &GetActiveBudgetUseCase{
		budgetRepo:   budgetRepo,
		settingsRepo: settingsRepo,
	}
}

// Execute resolves the active budget.
func (uc *GetActiveBudgetUseCase) Execute(ctx context.Context) (*GetActiveBudgetOutput, error) {
	activeID, err := uc.settingsRepo.GetActiveBudgetID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read active budget pointer: %w", err)
	}

	if activeID != "" {
		budget, err := uc.budgetRepo.FindByID(ctx, activeID)
		if err == nil {
			return &GetActiveBudgetOutput{Budget: budget}, nil
		}
		if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, fmt.Errorf("failed to find active budget: %w", err)
		}

		// Stale pointer: the budget it named is gone.
		if err := uc.settingsRepo.ClearActiveBudgetID(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear stale active budget pointer: %w", err)
		}
	}

	return uc.promoteFirstAvailable(ctx)
}

// promoteFirstAvailable selects the oldest budget as active, persisting the
// pointer, or reports no budget when none exist.
func (uc *GetActiveBudgetUseCase) promoteFirstAvailable(ctx context.Context) (*GetActiveBudgetOutput, error) {
	budgets, err := uc.budgetRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if len(budgets) == 0 {
		return &GetActiveBudgetOutput{Budget: nil}, nil
	}

	first := budgets[0]
	if err := uc.settingsRepo.SetActiveBudgetID(ctx, first.ID); err != nil {
		return nil, fmt.Errorf("failed to persist active budget pointer: %w", err)
	}

	return &GetActiveBudgetOutput{Budget: first}, nil
}
