package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/internal/application/usecase/payment"
	"github.com/payment-mindmap/backend/internal/domain/entity"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
	"github.com/payment-mindmap/backend/internal/integration/entrypoint/dto"
)

// MindmapController handles the payment mindmap endpoints: the snapshot
// read, recipient and transaction mutations, transfers, and the bulk
// restore/reset/export paths.
type MindmapController struct {
	loadDataUseCase       *payment.LoadDataUseCase
	addRecipientUseCase   *payment.AddRecipientUseCase
	removeRecipientUC     *payment.RemoveRecipientUseCase
	addTransactionUseCase *payment.AddTransactionUseCase
	removeTransactionUC   *payment.RemoveTransactionUseCase
	transferUseCase       *payment.TransferAmountUseCase
	consolidateUseCase    *payment.ConsolidateRecipientUseCase
	restoreUseCase        *payment.RestoreDataUseCase
	resetUseCase          *payment.ResetStorageUseCase
}

// NewMindmapController creates a new mindmap controller instance.
func NewMindmapController(
	loadDataUseCase *payment.LoadDataUseCase,
	addRecipientUseCase *payment.AddRecipientUseCase,
	removeRecipientUC *payment.RemoveRecipientUseCase,
	addTransactionUseCase *payment.AddTransactionUseCase,
	removeTransactionUC *payment.RemoveTransactionUseCase,
	transferUseCase *payment.TransferAmountUseCase,
	consolidateUseCase *payment.ConsolidateRecipientUseCase,
	restoreUseCase *payment.RestoreDataUseCase,
	resetUseCase *payment.ResetStorageUseCase,
) *MindmapController {
	return &MindmapController{
		loadDataUseCase:       loadDataUseCase,
		addRecipientUseCase:   addRecipientUseCase,
		removeRecipientUC:     removeRecipientUC,
		addTransactionUseCase: addTransactionUseCase,
		removeTransactionUC:   removeTransactionUC,
		transferUseCase:       transferUseCase,
		consolidateUseCase:    consolidateUseCase,
		restoreUseCase:        restoreUseCase,
		resetUseCase:          resetUseCase,
	}
}

// Load handles GET /mindmap requests.
func (c *MindmapController) Load(ctx *gin.Context) {
	output, err := c.loadDataUseCase.Execute(ctx.Request.Context(), payment.LoadDataInput{
		BudgetID: ctx.Query("budgetId"),
	})
	if err != nil {
		c.handleMindmapError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMindmapResponse(output.Snapshot))
}

// Export handles GET /mindmap/export requests. The payload is the snapshot
// plus backup metadata the restore path ignores.
func (c *MindmapController) Export(ctx *gin.Context) {
	output, err := c.loadDataUseCase.Execute(ctx.Request.Context(), payment.LoadDataInput{
		BudgetID: ctx.Query("budgetId"),
	})
	if err != nil {
		c.handleMindmapError(ctx, err)
		return
	}

	response := dto.ExportResponse{
		MindmapResponse: dto.ToMindmapResponse(output.Snapshot),
		ExportDate:      time.Now().UTC().Format(time.RFC3339),
	}
	if output.Budget != nil {
		response.BudgetName = output.Budget.Name
	}
	ctx.JSON(http.StatusOK, response)
}

// AddRecipient handles POST /recipients requests.
func (c *MindmapController) AddRecipient(ctx *gin.Context) {
	var req dto.AddRecipientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.addRecipientUseCase.Execute(ctx.Request.Context(), payment.AddRecipientInput{
		Name:        req.Name,
		Amount:      decimal.NewFromFloat(req.Amount),
		Description: req.Description,
		BudgetID:    req.BudgetID,
	})
	if err != nil {
		c.handleMindmapError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecipientResponse(output.Recipient, []*entity.Transaction{output.Transaction}))
}

// RemoveRecipient handles DELETE /recipients/:id requests.
func (c *MindmapController) RemoveRecipient(ctx *gin.Context) {
	err := c.removeRecipientUC.Execute(ctx.Request.Context(), payment.RemoveRecipientInput{
		RecipientID: ctx.Param("id"),
	})
	if err != nil {
		c.handleMindmapError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// AddTransaction handles POST /recipients/:id/transactions requests.
func (c *MindmapController) AddTransaction(ctx *gin.Context) {
	var req dto.AddTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.addTransactionUseCase.Execute(ctx.Request.Context(), payment.AddTransactionInput{
		RecipientID: ctx.Param("id"),
		Amount:      decimal.NewFromFloat(req.Amount),
		Description: req.Description,
		BudgetID:    req.BudgetID,
	})
	if err != nil {
		c.handleMindmapError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AddTransactionResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		NewTotal:    output.NewTotal.InexactFloat64(),
	})
}

// RemoveTransaction handles DELETE /transactions/:id requests.
func (c *MindmapController) RemoveTransaction(ctx *gin.Context) {
	output, err := c.removeTransactionUC.Execute(ctx.Request.Context(), payment.RemoveTransactionInput{
		TransactionID: ctx.Param("id"),
		RecipientID:   ctx.Query("recipientId"),
	})
	if err != nil {
		c.handleMindmapError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RemoveTransactionResponse{
		Success:            true,
		RecipientDeleted:   output.RecipientDeleted,
		TransferLinkBroken: output.TransferLinkBroken,
	})
}

// Transfer handles POST /transfers requests.
func (c *MindmapController) Transfer(ctx *gin.Context) {
	var req dto.TransferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.transferUseCase.Execute(ctx.Request.Context(), payment.TransferAmountInput{
		FromRecipientID:  req.From,
		ToRecipientID:    req.To,
		Amount:           decimal.NewFromFloat(req.Amount),
		Description:      req.Description,
		NewRecipientName: req.NewRecipientName,
		BudgetID:         req.BudgetID,
	})
	if err != nil {
		c.handleMindmapError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.TransferResponse{
		TransferID:  output.TransferID,
		Outgoing:    dto.ToTransactionResponse(output.Outgoing),
		Incoming:    dto.ToTransactionResponse(output.Incoming),
		ToRecipient: dto.ToRecipientResponse(output.ToRecipient, nil),
	})
}

// Consolidate handles POST /recipients/:id/consolidate requests.
func (c *MindmapController) Consolidate(ctx *gin.Context) {
	var req dto.ConsolidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.consolidateUseCase.Execute(ctx.Request.Context(), payment.ConsolidateRecipientInput{
		RecipientID: ctx.Param("id"),
		Description: req.Description,
		BudgetID:    req.BudgetID,
	})
	if err != nil {
		c.handleMindmapError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AddTransactionResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		NewTotal:    output.NewTotal.InexactFloat64(),
	})
}

// Restore handles POST /mindmap/restore requests.
func (c *MindmapController) Restore(ctx *gin.Context) {
	var req dto.RestoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	recipients, transactions := dto.ToRestoreEntities(req)
	output, err := c.restoreUseCase.Execute(ctx.Request.Context(), payment.RestoreDataInput{
		BudgetID:             req.BudgetID,
		Recipients:           recipients,
		Transactions:         transactions,
		InitialPaymentAmount: decimal.NewFromFloat(req.InitialPaymentAmount),
	})
	if err != nil {
		c.handleMindmapError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RestoreResponse{
		Success:          true,
		RecipientCount:   output.RecipientCount,
		TransactionCount: output.TransactionCount,
	})
}

// Reset handles POST /mindmap/reset requests.
func (c *MindmapController) Reset(ctx *gin.Context) {
	if err := c.resetUseCase.Execute(ctx.Request.Context()); err != nil {
		c.handleMindmapError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// handleMindmapError maps domain errors from any payment path to an HTTP
// status with the error code in the payload.
func (c *MindmapController) handleMindmapError(ctx *gin.Context, err error) {
	var paymentErr *domainerror.PaymentError
	if errors.As(err, &paymentErr) {
		ctx.JSON(statusCodeForPaymentError(paymentErr.Code), dto.ErrorResponse{
			Error: paymentErr.Message,
			Code:  string(paymentErr.Code),
		})
		return
	}

	var recipientErr *domainerror.RecipientError
	if errors.As(err, &recipientErr) {
		status := http.StatusConflict
		if recipientErr.Code == domainerror.ErrCodeRecipientNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: recipientErr.Message,
			Code:  string(recipientErr.Code),
		})
		return
	}

	var transactionErr *domainerror.TransactionError
	if errors.As(err, &transactionErr) {
		status := http.StatusConflict
		if transactionErr.Code == domainerror.ErrCodeTransactionNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: transactionErr.Message,
			Code:  string(transactionErr.Code),
		})
		return
	}

	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		status := http.StatusBadRequest
		if budgetErr.Code == domainerror.ErrCodeBudgetNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeStorage),
	})
}

func statusCodeForPaymentError(code domainerror.PaymentErrorCode) int {
	switch code {
	case domainerror.ErrCodeInsufficientBalance,
		domainerror.ErrCodeInsufficientSenderTotal,
		domainerror.ErrCodeTooFewTransactions,
		domainerror.ErrCodeMissingNewRecipientName:
		return http.StatusBadRequest
	case domainerror.ErrCodeNoActiveBudget:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
