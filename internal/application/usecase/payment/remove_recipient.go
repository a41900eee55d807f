package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
)

// RemoveRecipientInput represents the input for recipient removal.
type RemoveRecipientInput struct {
	RecipientID string
}

// RemoveRecipientUseCase handles recipient removal with cascade deletion of
// its transactions.
type RemoveRecipientUseCase struct {
	recipientRepo adapter.RecipientRepository
}

// NewRemoveRecipientUseCase creates a new RemoveRecipientUseCase instance.
func NewRemoveRecipientUseCase(recipientRepo adapter.RecipientRepository) *RemoveRecipientUseCase {
	return &RemoveRecipientUseCase{
		recipientRepo: recipientRepo,
	}
}

// Execute performs the recipient removal.
func (uc *RemoveRecipientUseCase) Execute(ctx context.Context, input RemoveRecipientInput) error {
	if _, err := uc.recipientRepo.FindByID(ctx, input.RecipientID); err != nil {
		if errors.Is(err, domainerror.ErrRecipientNotFound) {
			return domainerror.NewRecipientError(
				domainerror.ErrCodeRecipientNotFound,
				"recipient not found",
				domainerror.ErrRecipientNotFound,
			)
		}
		return fmt.Errorf("failed to find recipient: %w", err)
	}

	if err := uc.recipientRepo.Delete(ctx, input.RecipientID); err != nil {
		return fmt.Errorf("failed to delete recipient: %w", err)
	}
	return nil
}
