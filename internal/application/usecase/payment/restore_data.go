package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/domain/entity"
)

// RestoreDataInput represents the input for a snapshot restore. Entity ids
// and created_at timestamps are preserved as supplied so a backup round-trips
// exactly.
type RestoreDataInput struct {
	BudgetID             string
	Recipients           []*entity.Recipient
	Transactions         []*entity.Transaction
	InitialPaymentAmount decimal.Decimal
}

// RestoreDataOutput represents the output of a snapshot restore.
type RestoreDataOutput struct {
	RecipientCount   int
	TransactionCount int
}

// RestoreDataUseCase replaces the budget's ledger content with a snapshot.
// This is a trusted bulk path: no balance or uniqueness validation runs.
type RestoreDataUseCase struct {
	resolver        *budgetResolver
	budgetRepo      adapter.BudgetRepository
	maintenanceRepo adapter.MaintenanceRepository
}

// NewRestoreDataUseCase creates a new RestoreDataUseCase instance.
func NewRestoreDataUseCase(
	budgetRepo adapter.BudgetRepository,
	settingsRepo adapter.SettingsRepository,
	maintenanceRepo adapter.MaintenanceRepository,
) *RestoreDataUseCase {
	return &RestoreDataUseCase{
		resolver:        &budgetResolver{budgetRepo: budgetRepo, settingsRepo: settingsRepo},
		budgetRepo:      budgetRepo,
		maintenanceRepo: maintenanceRepo,
	}
}

// Execute performs the restore.
func (uc *RestoreDataUseCase) Execute(ctx context.Context, input RestoreDataInput) (*RestoreDataOutput, error) {
	budget, err := uc.resolver.Resolve(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}

	// Imported rows land in the target budget regardless of what budget the
	// snapshot was exported from.
	for _, r := range input.Recipients {
		r.BudgetID = budget.ID
	}
	for _, t := range input.Transactions {
		t.BudgetID = budget.ID
	}

	if err := uc.maintenanceRepo.RestoreBudget(ctx, budget.ID, input.Recipients, input.Transactions); err != nil {
		return nil, fmt.Errorf("failed to restore budget data: %w", err)
	}

	// A zero amount in the snapshot means "not exported", not "reset to
	// zero", so the budget's current amount survives.
	if !input.InitialPaymentAmount.IsZero() {
		budget.InitialPayment = input.InitialPaymentAmount
		if err := uc.budgetRepo.Update(ctx, budget); err != nil {
			return nil, fmt.Errorf("failed to update initial payment: %w", err)
		}
	}

	return &RestoreDataOutput{
		RecipientCount:   len(input.Recipients),
		TransactionCount: len(input.Transactions),
	}, nil
}
