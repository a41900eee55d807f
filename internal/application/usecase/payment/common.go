// Package payment contains payment orchestration use cases: everything that
// moves money between a budget and its recipients.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/domain/entity"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
)

// budgetResolver resolves an optional budget id to a concrete budget. An
// explicit id must exist; an omitted one falls back to the active budget,
// repairing a stale pointer the same way the registry does.
type budgetResolver struct {
	budgetRepo   adapter.BudgetRepository
	settingsRepo adapter.SettingsRepository
}

// Resolve returns the budget the operation should run against.
func (r *budgetResolver) Resolve(ctx context.Context, budgetID string) (*entity.Budget, error) {
	if budgetID != "" {
		budget, err := r.budgetRepo.FindByID(ctx, budgetID)
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
		return budget, nil
	}

	activeID, err := r.settingsRepo.GetActiveBudgetID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read active budget pointer: %w", err)
	}

	if activeID != "" {
		budget, err := r.budgetRepo.FindByID(ctx, activeID)
		if err == nil {
			return budget, nil
		}
		if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, fmt.Errorf("failed to find active budget: %w", err)
		}
		if err := r.settingsRepo.ClearActiveBudgetID(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear stale active budget pointer: %w", err)
		}
	}

	budgets, err := r.budgetRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if len(budgets) == 0 {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeNoActiveBudget,
			"no active budget found",
			domainerror.ErrNoActiveBudget,
		)
	}

	first := budgets[0]
	if err := r.settingsRepo.SetActiveBudgetID(ctx, first.ID); err != nil {
		return nil, fmt.Errorf("failed to persist active budget pointer: %w", err)
	}
	return first, nil
}

// availableBalance returns the budget's initial payment minus everything
// already distributed.
func availableBalance(ctx context.Context, transactionRepo adapter.TransactionRepository, budget *entity.Budget) (decimal.Decimal, error) {
	distributed, err := transactionRepo.SumByBudget(ctx, budget.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum budget transactions: %w", err)
	}
	return budget.InitialPayment.Sub(distributed), nil
}

// newID generates an entity id with the given prefix.
func newID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), randomSuffix(6))
}

// newTransferID generates the shared id linking both legs of a transfer.
func newTransferID() string {
	return fmt.Sprintf("transfer_%d_%s", time.Now().UnixMilli(), randomSuffix(7))
}

// newTransferLegID generates a transfer leg id. Side is "out" or "in".
func newTransferLegID(side string) string {
	return fmt.Sprintf("txn_%d_%s_%s", time.Now().UnixMilli(), side, randomSuffix(7))
}

func randomSuffix(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

// todayDateOnly returns the current date with the time component zeroed.
// Transaction dates are day-granular; ordering within a day uses created_at.
func todayDateOnly() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
