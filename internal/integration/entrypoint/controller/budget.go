package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/internal/application/usecase/budget"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
	"github.com/payment-mindmap/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles budget registry endpoints.
type BudgetController struct {
	createUseCase               *budget.CreateBudgetUseCase
	listUseCase                 *budget.ListBudgetsUseCase
	getActiveUseCase            *budget.GetActiveBudgetUseCase
	setActiveUseCase            *budget.SetActiveBudgetUseCase
	deleteUseCase               *budget.DeleteBudgetUseCase
	updateInitialPaymentUseCase *budget.UpdateInitialPaymentUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	createUseCase *budget.CreateBudgetUseCase,
	listUseCase *budget.ListBudgetsUseCase,
	getActiveUseCase *budget.GetActiveBudgetUseCase,
	setActiveUseCase *budget.SetActiveBudgetUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
	updateInitialPaymentUseCase *budget.UpdateInitialPaymentUseCase,
) *BudgetController {
	return &BudgetController{
		createUseCase:               createUseCase,
		listUseCase:                 listUseCase,
		getActiveUseCase:            getActiveUseCase,
		setActiveUseCase:            setActiveUseCase,
		deleteUseCase:               deleteUseCase,
		updateInitialPaymentUseCase: updateInitialPaymentUseCase,
	}
}

// Create handles POST /budgets requests.
func (c *BudgetController) Create(ctx *gin.Context) {
	var req dto.CreateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := budget.CreateBudgetInput{
		Name:           req.Name,
		InitialPayment: decimal.NewFromFloat(req.InitialPayment),
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetResponse(output.Budget))
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Budgets))
}

// GetActive handles GET /budgets/active requests. A missing active budget is
// not an error; the response carries a null budget.
func (c *BudgetController) GetActive(ctx *gin.Context) {
	output, err := c.getActiveUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	response := dto.ActiveBudgetResponse{}
	if output.Budget != nil {
		budgetResponse := dto.ToBudgetResponse(output.Budget)
		response.Budget = &budgetResponse
	}
	ctx.JSON(http.StatusOK, response)
}

// SetActive handles PUT /budgets/active requests.
func (c *BudgetController) SetActive(ctx *gin.Context) {
	var req dto.SetActiveBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.setActiveUseCase.Execute(ctx.Request.Context(), budget.SetActiveBudgetInput{
		BudgetID: req.BudgetID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// Delete handles DELETE /budgets/:id requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{
		BudgetID: ctx.Param("id"),
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	response := dto.DeleteBudgetResponse{Success: output.Success}
	if output.SwitchedToBudget != nil {
		budgetResponse := dto.ToBudgetResponse(output.SwitchedToBudget)
		response.SwitchedToBudget = &budgetResponse
	}
	ctx.JSON(http.StatusOK, response)
}

// UpdateInitialPayment handles PUT /budgets/initial-payment requests.
func (c *BudgetController) UpdateInitialPayment(ctx *gin.Context) {
	var req dto.UpdateInitialPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.updateInitialPaymentUseCase.Execute(ctx.Request.Context(), budget.UpdateInitialPaymentInput{
		Amount:   decimal.NewFromFloat(req.Amount),
		BudgetID: req.BudgetID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UpdateInitialPaymentResponse{
		Amount: output.Amount.InexactFloat64(),
	})
}

func (c *BudgetController) handleBudgetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		ctx.JSON(c.statusCodeForBudgetError(budgetErr.Code), dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func (c *BudgetController) statusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeBudgetNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeBudgetNameExists:
		return http.StatusConflict
	case domainerror.ErrCodeNegativeInitialPayment:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
