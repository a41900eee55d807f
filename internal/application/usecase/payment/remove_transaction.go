package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/domain/entity"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
)

// RemoveTransactionInput represents the input for transaction removal.
// RecipientID is optional; when supplied it scopes the removal to that
// recipient's transactions.
type RemoveTransactionInput struct {
	TransactionID string
	RecipientID   string
}

// RemoveTransactionOutput reports what the removal cascaded into.
type RemoveTransactionOutput struct {
	// RecipientDeleted is true when the owning recipient went with its last
	// transaction (or with its transfer leg).
	RecipientDeleted bool
	// TransferLinkBroken is true when the transaction was an orphaned
	// transfer leg and was kept with its link stripped instead of deleted.
	TransferLinkBroken bool
}

// RemoveTransactionUseCase handles transaction removal. Transfer legs are
// removed pairwise while both exist; an orphaned leg is converted into a
// regular transaction rather than deleted, so the money movement it already
// applied stays accounted for.
type RemoveTransactionUseCase struct {
	recipientRepo   adapter.RecipientRepository
	transactionRepo adapter.TransactionRepository
}

// NewRemoveTransactionUseCase creates a new RemoveTransactionUseCase instance.
func NewRemoveTransactionUseCase(
	recipientRepo adapter.RecipientRepository,
	transactionRepo adapter.TransactionRepository,
) *RemoveTransactionUseCase {
	return &RemoveTransactionUseCase{
		recipientRepo:   recipientRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction removal.
func (uc *RemoveTransactionUseCase) Execute(ctx context.Context, input RemoveTransactionInput) (*RemoveTransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if input.RecipientID != "" && input.RecipientID != transaction.RecipientID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found for recipient",
			domainerror.ErrTransactionNotFound,
		)
	}

	if transaction.TransferID != nil {
		return uc.removeTransferLeg(ctx, transaction)
	}
	return uc.removeRegular(ctx, transaction)
}

func (uc *RemoveTransactionUseCase) removeTransferLeg(ctx context.Context, transaction *entity.Transaction) (*RemoveTransactionOutput, error) {
	sibling, err := uc.transactionRepo.FindSibling(ctx, *transaction.TransferID, transaction.ID)
	if err != nil {
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, fmt.Errorf("failed to find transfer sibling: %w", err)
		}

		// The other leg is gone. Keep this one as a regular transaction
		// with the link stripped; its amount already moved money.
		transaction.BreakTransferLink()
		if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
			return nil, fmt.Errorf("failed to strip transfer link: %w", err)
		}
		return &RemoveTransactionOutput{TransferLinkBroken: true}, nil
	}

	if err := uc.transactionRepo.DeleteTransferPair(ctx, transaction, sibling); err != nil {
		return nil, fmt.Errorf("failed to delete transfer pair: %w", err)
	}
	return &RemoveTransactionOutput{}, nil
}

func (uc *RemoveTransactionUseCase) removeRegular(ctx context.Context, transaction *entity.Transaction) (*RemoveTransactionOutput, error) {
	count, err := uc.transactionRepo.CountByRecipient(ctx, transaction.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to count recipient transactions: %w", err)
	}

	// A recipient with zero transactions does not exist, so removing the
	// last transaction removes the recipient.
	if count <= 1 {
		if err := uc.recipientRepo.Delete(ctx, transaction.RecipientID); err != nil {
			return nil, fmt.Errorf("failed to delete recipient: %w", err)
		}
		return &RemoveTransactionOutput{RecipientDeleted: true}, nil
	}

	recipient, err := uc.recipientRepo.FindByID(ctx, transaction.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to find recipient: %w", err)
	}
	newTotal := recipient.TotalAmount.Sub(transaction.Amount)

	if err := uc.transactionRepo.DeleteWithTotal(ctx, transaction.ID, recipient.ID, newTotal); err != nil {
		return nil, fmt.Errorf("failed to delete transaction: %w", err)
	}
	return &RemoveTransactionOutput{}, nil
}
