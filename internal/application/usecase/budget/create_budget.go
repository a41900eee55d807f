// Package budget contains budget registry use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/domain/entity"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
)

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	Name           string
	InitialPayment decimal.Decimal
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *entity.Budget
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(budgetRepo adapter.BudgetRepository) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	name := strings.TrimSpace(input.Name)

	// Name uniqueness is case-insensitive over the trimmed name.
	_, err := uc.budgetRepo.FindByName(ctx, name)
	if err == nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNameExists,
			"a budget with this name already exists",
			domainerror.ErrBudgetNameExists,
		)
	}
	if !errors.Is(err, domainerror.ErrBudgetNotFound) {
		return nil, fmt.Errorf("failed to check budget name: %w", err)
	}

	budget := entity.NewBudget(newBudgetID(), name, input.InitialPayment)

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		if errors.Is(err, domainerror.ErrBudgetNameExists) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNameExists,
				"a budget with this name already exists",
				domainerror.ErrBudgetNameExists,
			)
		}
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &CreateBudgetOutput{
		Budget: budget,
	}, nil
}

// newBudgetID generates a budget id from the creation instant.
func newBudgetID() string {
	return fmt.Sprintf("budget-%d", time.Now().UnixMilli())
}
