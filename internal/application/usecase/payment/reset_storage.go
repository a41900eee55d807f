package payment

import (
	"context"
	"fmt"

	"github.com/payment-mindmap/backend/internal/application/adapter"
)

// ResetStorageUseCase wipes the whole ledger: budgets, recipients,
// transactions, the active-budget pointer and the legacy initial payment.
type ResetStorageUseCase struct {
	maintenanceRepo adapter.MaintenanceRepository
}

// NewResetStorageUseCase creates a new ResetStorageUseCase instance.
func NewResetStorageUseCase(maintenanceRepo adapter.MaintenanceRepository) *ResetStorageUseCase {
	return &ResetStorageUseCase{
		maintenanceRepo: maintenanceRepo,
	}
}

// Execute performs the reset.
func (uc *ResetStorageUseCase) Execute(ctx context.Context) error {
	if err := uc.maintenanceRepo.ResetAll(ctx); err != nil {
		return fmt.Errorf("failed to reset storage: %w", err)
	}
	return nil
}
