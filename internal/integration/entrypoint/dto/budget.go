package dto

import (
	"time"

	"github.com/payment-mindmap/backend/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	InitialPayment float64 `json:"initialPayment" binding:"omitempty,gte=0"`
}

// SetActiveBudgetRequest represents the request body for switching budgets.
type SetActiveBudgetRequest struct {
	BudgetID string `json:"budgetId" binding:"required"`
}

// UpdateInitialPaymentRequest represents the request body for an initial
// payment update. An empty budgetId targets the legacy singleton.
type UpdateInitialPaymentRequest struct {
	Amount   float64 `json:"amount"`
	BudgetID string  `json:"budgetId,omitempty"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	InitialPayment float64   `json:"initialPayment"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ActiveBudgetResponse represents the active-budget lookup response.
// Budget is null when no budget exists.
type ActiveBudgetResponse struct {
	Budget *BudgetResponse `json:"budget"`
}

// DeleteBudgetResponse represents the budget deletion response. Success is
// false when only a stale active pointer was repaired.
type DeleteBudgetResponse struct {
	Success          bool            `json:"success"`
	SwitchedToBudget *BudgetResponse `json:"switchedToBudget,omitempty"`
}

// UpdateInitialPaymentResponse represents the initial payment update response.
type UpdateInitialPaymentResponse struct {
	Amount float64 `json:"amount"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(budget *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:             budget.ID,
		Name:           budget.Name,
		InitialPayment: budget.InitialPayment.InexactFloat64(),
		CreatedAt:      budget.CreatedAt,
		UpdatedAt:      budget.UpdatedAt,
	}
}

// ToBudgetListResponse converts a list of budgets to a BudgetListResponse.
func ToBudgetListResponse(budgets []*entity.Budget) BudgetListResponse {
	responses := make([]BudgetResponse, len(budgets))
	for i, budget := range budgets {
		responses[i] = ToBudgetResponse(budget)
	}
	return BudgetListResponse{
		Budgets: responses,
	}
}
