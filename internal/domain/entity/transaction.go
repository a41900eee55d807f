package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferType tags the side of a transfer a transaction belongs to.
type TransferType string

const (
	TransferTypeOutgoing TransferType = "outgoing"
	TransferTypeIncoming TransferType = "incoming"
)

// TransactionKind classifies a transaction by how it was produced.
type TransactionKind string

const (
	TransactionKindRegular      TransactionKind = "regular"
	TransactionKindTransferLeg  TransactionKind = "transfer_leg"
	TransactionKindConsolidated TransactionKind = "consolidated"
)

// Transaction is a signed monetary event against a recipient. Positive
// amounts are payments in, negative amounts are returns or outgoing
// transfers. A transfer produces exactly two transactions sharing one
// TransferID with opposite-signed amounts; they are deleted together unless
// the link is explicitly broken.
type Transaction struct {
	ID             string
	RecipientID    string
	BudgetID       string
	Amount         decimal.Decimal
	Description    string
	Date           time.Time
	CreatedAt      time.Time
	TransferID     *string
	TransferType   TransferType
	IsConsolidated bool
}

// NewTransaction creates a regular Transaction entity stamped now.
func NewTransaction(id, recipientID, budgetID string, amount decimal.Decimal, description string, date time.Time) *Transaction {
	return &Transaction{
		ID:          id,
		RecipientID: recipientID,
		BudgetID:    budgetID,
		Amount:      amount,
		Description: description,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}
}

// Kind reports how the transaction was produced.
func (t *Transaction) Kind() TransactionKind {
	switch {
	case t.TransferID != nil:
		return TransactionKindTransferLeg
	case t.IsConsolidated:
		return TransactionKindConsolidated
	default:
		return TransactionKindRegular
	}
}

// BreakTransferLink strips the transfer tagging from a transaction whose
// sibling no longer exists, annotating the description. The amount and its
// effect on the recipient total are left intact.
func (t *Transaction) BreakTransferLink() {
	t.TransferID = nil
	t.TransferType = ""
	t.Description += " [Transfer link removed]"
}
