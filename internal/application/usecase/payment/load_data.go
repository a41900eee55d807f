package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/domain/entity"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
)

// LoadDataInput represents the input for the mindmap snapshot read.
type LoadDataInput struct {
	BudgetID string
}

// LoadDataOutput represents the snapshot the presentation layer renders.
// Budget is nil when no budget exists yet.
type LoadDataOutput struct {
	Snapshot *entity.MindmapSnapshot
	Budget   *entity.Budget
}

// LoadDataUseCase assembles the read-model: recipients with their
// transactions in chronological order, plus the budget aggregates. Read-only.
type LoadDataUseCase struct {
	resolver        *budgetResolver
	settingsRepo    adapter.SettingsRepository
	recipientRepo   adapter.RecipientRepository
	transactionRepo adapter.TransactionRepository
}

// NewLoadDataUseCase creates a new LoadDataUseCase instance.
func NewLoadDataUseCase(
	budgetRepo adapter.BudgetRepository,
	settingsRepo adapter.SettingsRepository,
	recipientRepo adapter.RecipientRepository,
	transactionRepo adapter.TransactionRepository,
) *LoadDataUseCase {
	return &LoadDataUseCase{
		resolver:        &budgetResolver{budgetRepo: budgetRepo, settingsRepo: settingsRepo},
		settingsRepo:    settingsRepo,
		recipientRepo:   recipientRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute assembles the snapshot.
func (uc *LoadDataUseCase) Execute(ctx context.Context, input LoadDataInput) (*LoadDataOutput, error) {
	budget, err := uc.resolver.Resolve(ctx, input.BudgetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNoActiveBudget) {
			return uc.emptySnapshot(ctx)
		}
		return nil, err
	}

	recipients, err := uc.recipientRepo.FindByBudget(ctx, budget.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipients: %w", err)
	}
	transactions, err := uc.transactionRepo.FindByBudget(ctx, budget.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	// The repository orders by created_at with date as tiebreaker, so
	// grouping preserves chronological order per recipient.
	byRecipient := make(map[string][]*entity.Transaction, len(recipients))
	for _, t := range transactions {
		byRecipient[t.RecipientID] = append(byRecipient[t.RecipientID], t)
	}

	withTransactions := make([]*entity.RecipientWithTransactions, len(recipients))
	for i, r := range recipients {
		withTransactions[i] = &entity.RecipientWithTransactions{
			Recipient:    r,
			Transactions: byRecipient[r.ID],
		}
	}

	totalDistributed, err := uc.transactionRepo.SumByBudget(ctx, budget.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum budget transactions: %w", err)
	}

	return &LoadDataOutput{
		Snapshot: &entity.MindmapSnapshot{
			BudgetID:             budget.ID,
			Recipients:           withTransactions,
			TotalDistributed:     totalDistributed,
			InitialPaymentAmount: budget.InitialPayment,
		},
		Budget: budget,
	}, nil
}

// emptySnapshot is what renders before any budget exists. The legacy
// initial-payment singleton still applies so a pre-budget installation shows
// its configured amount.
func (uc *LoadDataUseCase) emptySnapshot(ctx context.Context) (*LoadDataOutput, error) {
	legacyAmount, err := uc.settingsRepo.GetInitialPayment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read initial payment: %w", err)
	}

	return &LoadDataOutput{
		Snapshot: &entity.MindmapSnapshot{
			Recipients:           []*entity.RecipientWithTransactions{},
			TotalDistributed:     decimal.Zero,
			InitialPaymentAmount: legacyAmount,
		},
	}, nil
}
