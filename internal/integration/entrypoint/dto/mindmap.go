package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/internal/domain/entity"
)

const transactionDateLayout = "2006-01-02"

// PositionDTO is a recipient's canvas position.
type PositionDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID             string    `json:"id"`
	Amount         float64   `json:"amount"`
	Date           string    `json:"date"`
	Description    string    `json:"description"`
	RecipientID    string    `json:"recipientId"`
	BudgetID       string    `json:"budgetId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	TransferID     *string   `json:"transferId,omitempty"`
	TransferType   string    `json:"transferType,omitempty"`
	IsConsolidated bool      `json:"isConsolidated,omitempty"`
}

// RecipientResponse represents a recipient with its transaction history.
type RecipientResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	TotalAmount  float64               `json:"totalAmount"`
	Position     PositionDTO           `json:"position"`
	Transactions []TransactionResponse `json:"transactions"`
}

// MindmapResponse represents the full mindmap snapshot.
type MindmapResponse struct {
	Recipients           []RecipientResponse `json:"recipients"`
	TotalDistributed     float64             `json:"totalDistributed"`
	InitialPaymentAmount float64             `json:"initialPaymentAmount"`
	AvailableBalance     float64             `json:"availableBalance"`
	BudgetID             string              `json:"budgetId,omitempty"`
}

// ExportResponse is the mindmap snapshot plus backup metadata.
type ExportResponse struct {
	MindmapResponse
	ExportDate string `json:"exportDate"`
	BudgetName string `json:"budgetName,omitempty"`
}

// AddRecipientRequest represents the request body for recipient creation.
type AddRecipientRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	BudgetID    string  `json:"budgetId,omitempty"`
}

// AddTransactionRequest represents the request body for adding a transaction.
type AddTransactionRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	BudgetID    string  `json:"budgetId,omitempty"`
}

// AddTransactionResponse represents the response for adding a transaction.
type AddTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	NewTotal    float64             `json:"newTotal"`
}

// TransferRequest represents the request body for a transfer. To may be the
// literal "create_new" to create the destination on the fly.
type TransferRequest struct {
	From             string  `json:"from" binding:"required"`
	To               string  `json:"to" binding:"required"`
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	Description      string  `json:"description"`
	NewRecipientName string  `json:"newRecipientName,omitempty"`
	BudgetID         string  `json:"budgetId,omitempty"`
}

// TransferResponse represents the response for a transfer.
type TransferResponse struct {
	TransferID  string              `json:"transferId"`
	Outgoing    TransactionResponse `json:"outgoing"`
	Incoming    TransactionResponse `json:"incoming"`
	ToRecipient RecipientResponse   `json:"toRecipient"`
}

// ConsolidateRequest represents the request body for a consolidation.
type ConsolidateRequest struct {
	Description string `json:"description" binding:"required"`
	BudgetID    string `json:"budgetId,omitempty"`
}

// RemoveTransactionResponse represents the response for a transaction removal.
type RemoveTransactionResponse struct {
	Success            bool `json:"success"`
	RecipientDeleted   bool `json:"recipientDeleted,omitempty"`
	TransferLinkBroken bool `json:"transferLinkBroken,omitempty"`
}

// RestoreTransaction is a transaction inside a restore payload.
type RestoreTransaction struct {
	ID             string  `json:"id" binding:"required"`
	Amount         float64 `json:"amount"`
	Date           string  `json:"date"`
	Description    string  `json:"description"`
	RecipientID    string  `json:"recipientId"`
	BudgetID       string  `json:"budgetId,omitempty"`
	CreatedAt      string  `json:"createdAt,omitempty"`
	TransferID     *string `json:"transferId,omitempty"`
	TransferType   string  `json:"transferType,omitempty"`
	IsConsolidated bool    `json:"isConsolidated,omitempty"`
}

// RestoreRecipient is a recipient inside a restore payload.
type RestoreRecipient struct {
	ID           string               `json:"id" binding:"required"`
	Name         string               `json:"name" binding:"required"`
	TotalAmount  float64              `json:"totalAmount"`
	Position     PositionDTO          `json:"position"`
	Transactions []RestoreTransaction `json:"transactions"`
}

// RestoreRequest represents the request body for a snapshot restore. The
// exportDate and budgetName fields a backup carries are import-only metadata
// and intentionally have no binding here.
type RestoreRequest struct {
	Recipients           []RestoreRecipient `json:"recipients"`
	TotalDistributed     float64            `json:"totalDistributed"`
	InitialPaymentAmount float64            `json:"initialPaymentAmount"`
	BudgetID             string             `json:"budgetId,omitempty"`
}

// RestoreResponse represents the response for a snapshot restore.
type RestoreResponse struct {
	Success          bool `json:"success"`
	RecipientCount   int  `json:"recipientCount"`
	TransactionCount int  `json:"transactionCount"`
}

// ToTransactionResponse converts a domain Transaction to its DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             t.ID,
		Amount:         t.Amount.InexactFloat64(),
		Date:           t.Date.Format(transactionDateLayout),
		Description:    t.Description,
		RecipientID:    t.RecipientID,
		BudgetID:       t.BudgetID,
		CreatedAt:      t.CreatedAt,
		TransferID:     t.TransferID,
		TransferType:   string(t.TransferType),
		IsConsolidated: t.IsConsolidated,
	}
}

// ToRecipientResponse converts a recipient and its transactions to a DTO.
func ToRecipientResponse(r *entity.Recipient, transactions []*entity.Transaction) RecipientResponse {
	transactionResponses := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		transactionResponses[i] = ToTransactionResponse(t)
	}
	return RecipientResponse{
		ID:           r.ID,
		Name:         r.Name,
		TotalAmount:  r.TotalAmount.InexactFloat64(),
		Position:     PositionDTO{X: r.Position.X, Y: r.Position.Y},
		Transactions: transactionResponses,
	}
}

// ToMindmapResponse converts a snapshot to the mindmap DTO.
func ToMindmapResponse(snapshot *entity.MindmapSnapshot) MindmapResponse {
	recipients := make([]RecipientResponse, len(snapshot.Recipients))
	for i, rwt := range snapshot.Recipients {
		recipients[i] = ToRecipientResponse(rwt.Recipient, rwt.Transactions)
	}
	return MindmapResponse{
		Recipients:           recipients,
		TotalDistributed:     snapshot.TotalDistributed.InexactFloat64(),
		InitialPaymentAmount: snapshot.InitialPaymentAmount.InexactFloat64(),
		AvailableBalance:     snapshot.AvailableBalance().InexactFloat64(),
		BudgetID:             snapshot.BudgetID,
	}
}

// ToRestoreEntities converts a restore payload to domain entities. Ids and
// created_at timestamps are preserved; a malformed or absent created_at is
// left zero so the store stamps it on insert.
func ToRestoreEntities(req RestoreRequest) ([]*entity.Recipient, []*entity.Transaction) {
	recipients := make([]*entity.Recipient, 0, len(req.Recipients))
	var transactions []*entity.Transaction

	now := time.Now().UTC()
	for _, r := range req.Recipients {
		recipients = append(recipients, &entity.Recipient{
			ID:          r.ID,
			Name:        r.Name,
			BudgetID:    req.BudgetID,
			TotalAmount: decimal.NewFromFloat(r.TotalAmount),
			Position:    entity.Position{X: r.Position.X, Y: r.Position.Y},
			CreatedAt:   now,
			UpdatedAt:   now,
		})

		for _, t := range r.Transactions {
			recipientID := t.RecipientID
			if recipientID == "" {
				recipientID = r.ID
			}
			transactions = append(transactions, &entity.Transaction{
				ID:             t.ID,
				RecipientID:    recipientID,
				BudgetID:       t.BudgetID,
				Amount:         decimal.NewFromFloat(t.Amount),
				Description:    t.Description,
				Date:           parseTransactionDate(t.Date),
				CreatedAt:      parseTimestamp(t.CreatedAt),
				TransferID:     t.TransferID,
				TransferType:   entity.TransferType(t.TransferType),
				IsConsolidated: t.IsConsolidated,
			})
		}
	}
	return recipients, transactions
}

func parseTransactionDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if date, err := time.Parse(transactionDateLayout, value); err == nil {
		return date
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts
	}
	return time.Time{}
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts
	}
	return time.Time{}
}
