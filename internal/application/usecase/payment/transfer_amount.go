package payment

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

// CreateNewRecipientID is the sentinel destination id requesting that the
// transfer target be created on the fly.
const CreateNewRecipientID = "create_new"

// TransferAmountInput represents the input for a transfer between two
// recipients of the same budget.
type TransferAmountInput struct {
	FromRecipientID  string
	ToRecipientID    string
	Amount           decimal.Decimal
	Description      string
	NewRecipientName string
	BudgetID         string
}

// TransferAmountOutput represents the output of a transfer.
type TransferAmountOutput struct {
	TransferID  string
	Outgoing    *entity.Transaction
	Incoming    *entity.Transaction
	ToRecipient *entity.Recipient
}

// TransferAmountUseCase handles transfers. A transfer produces two linked
// transactions sharing one transfer id, created with both recipients' total
// updates in a single storage transaction.
type TransferAmountUseCase struct {
	resolver        *budgetResolver
	recipientRepo   adapter.RecipientRepository
	transactionRepo adapter.TransactionRepository
}

// NewTransferAmountUseCase creates a new TransferAmountUseCase instance.
func NewTransferAmountUseCase(
	budgetRepo adapter.BudgetRepository,
	settingsRepo adapter.SettingsRepository,
	recipientRepo adapter.RecipientRepository,
	transactionRepo adapter.TransactionRepository,
) *TransferAmountUseCase {
	return &TransferAmountUseCase{
		resolver:        &budgetResolver{budgetRepo: budgetRepo, settingsRepo: settingsRepo},
		recipientRepo:   recipientRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transfer.
func (uc *TransferAmountUseCase) Execute(ctx context.Context, input TransferAmountInput) (*TransferAmountOutput, error) {
	budget, err := uc.resolver.Resolve(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}

	from, err := uc.recipientRepo.FindByID(ctx, input.FromRecipientID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecipientNotFound) {
			return nil, domainerror.NewRecipientError(
				domainerror.ErrCodeRecipientNotFound,
				"sender recipient not found",
				domainerror.ErrRecipientNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find sender: %w", err)
	}

	// Both sides must resolve before any balance verdict.
	var to *entity.Recipient
	if input.ToRecipientID != CreateNewRecipientID {
		if to, err = uc.findDestination(ctx, input.ToRecipientID); err != nil {
			return nil, err
		}
	}

	// The transfer is bounded by what the sender holds, not by the budget's
	// available balance; it moves money, it does not distribute more.
	if from.TotalAmount.LessThan(input.Amount) {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInsufficientSenderTotal,
			fmt.Sprintf("insufficient balance in sender account, available: %s", from.TotalAmount.StringFixed(2)),
			domainerror.ErrInsufficientSenderTotal,
		)
	}

	var newRecipient *entity.Recipient
	if to == nil {
		if to, newRecipient, err = uc.newDestination(ctx, input, budget); err != nil {
			return nil, err
		}
	}

	transferID := newTransferID()
	now := time.Now().UTC()
	date := todayDateOnly()

	outgoing := &entity.Transaction{
		ID:           newTransferLegID("out"),
		RecipientID:  from.ID,
		BudgetID:     budget.ID,
		Amount:       input.Amount.Neg(),
		Description:  transferDescription("Sent to "+to.Name, input.Description),
		Date:         date,
		CreatedAt:    now,
		TransferID:   &transferID,
		TransferType: entity.TransferTypeOutgoing,
	}
	incoming := &entity.Transaction{
		ID:           newTransferLegID("in"),
		RecipientID:  to.ID,
		BudgetID:     budget.ID,
		Amount:       input.Amount,
		Description:  transferDescription("Received from "+from.Name, input.Description),
		Date:         date,
		CreatedAt:    now,
		TransferID:   &transferID,
		TransferType: entity.TransferTypeIncoming,
	}

	fromTotal := from.TotalAmount.Sub(input.Amount)
	toTotal := to.TotalAmount.Add(input.Amount)

	if err := uc.transactionRepo.CreateTransferPair(ctx, outgoing, incoming, fromTotal, toTotal, newRecipient); err != nil {
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}

	to.TotalAmount = toTotal
	return &TransferAmountOutput{
		TransferID:  transferID,
		Outgoing:    outgoing,
		Incoming:    incoming,
		ToRecipient: to,
	}, nil
}

// findDestination resolves an existing transfer target by id.
func (uc *TransferAmountUseCase) findDestination(ctx context.Context, id string) (*entity.Recipient, error) {
	to, err := uc.recipientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecipientNotFound) {
			return nil, domainerror.NewRecipientError(
				domainerror.ErrCodeRecipientNotFound,
				"destination recipient not found",
				domainerror.ErrRecipientNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find destination: %w", err)
	}
	return to, nil
}

// newDestination builds the create_new target: a fresh zero-total recipient
// that the repository will persist inside the transfer transaction;
// newRecipient aliases to so the caller knows to pass it along.
func (uc *TransferAmountUseCase) newDestination(ctx context.Context, input TransferAmountInput, budget *entity.Budget) (to, newRecipient *entity.Recipient, err error) {
	name := strings.TrimSpace(input.NewRecipientName)
	if name == "" {
		return nil, nil, domainerror.NewPaymentError(
			domainerror.ErrCodeMissingNewRecipientName,
			"new recipient name is required",
			domainerror.ErrMissingNewRecipientName,
		)
	}

	exists, err := uc.recipientRepo.ExistsByNameAndBudget(ctx, name, budget.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check recipient name: %w", err)
	}
	if exists {
		return nil, nil, domainerror.NewRecipientError(
			domainerror.ErrCodeRecipientNameExists,
			fmt.Sprintf("recipient %q already exists in this budget", name),
			domainerror.ErrRecipientNameExists,
		)
	}

	siblings, err := uc.recipientRepo.FindByBudget(ctx, budget.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load budget recipients: %w", err)
	}

	newRecipient = entity.NewRecipient(
		newID("payment"),
		name,
		budget.ID,
		decimal.Zero,
		nextPosition(positionsOf(siblings), len(siblings)),
	)
	return newRecipient, newRecipient, nil
}

func transferDescription(base, detail string) string {
	if detail == "" {
		return base
	}
	return base + " - " + detail
}
