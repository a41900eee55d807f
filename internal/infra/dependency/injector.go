// Package dependency provides dependency injection for the application.
package dependency

import (
	"gorm.io/gorm"

	"github.com/payment-mindmap/backend/config"
	"github.com/payment-mindmap/backend/internal/application/usecase/budget"
	"github.com/payment-mindmap/backend/internal/application/usecase/payment"
	"github.com/payment-mindmap/backend/internal/infra/server/router"
	"github.com/payment-mindmap/backend/internal/integration/entrypoint/controller"
	"github.com/payment-mindmap/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// dbHealthChecker feeds the health endpoint and may be nil.
func NewInjector(cfg *config.Config, db *gorm.DB, dbHealthChecker func() bool) *Injector {
	// Create repositories
	budgetRepo := persistence.NewBudgetRepository(db)
	recipientRepo := persistence.NewRecipientRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	settingsRepo := persistence.NewSettingsRepository(db)
	maintenanceRepo := persistence.NewMaintenanceRepository(db)

	// Create budget registry use cases
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
	getActiveBudgetUseCase := budget.NewGetActiveBudgetUseCase(budgetRepo, settingsRepo)
	setActiveBudgetUseCase := budget.NewSetActiveBudgetUseCase(budgetRepo, settingsRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo, settingsRepo)
	updateInitialPaymentUseCase := budget.NewUpdateInitialPaymentUseCase(budgetRepo, settingsRepo)

	// Create payment orchestration use cases
	loadDataUseCase := payment.NewLoadDataUseCase(budgetRepo, settingsRepo, recipientRepo, transactionRepo)
	addRecipientUseCase := payment.NewAddRecipientUseCase(budgetRepo, settingsRepo, recipientRepo, transactionRepo)
	removeRecipientUseCase := payment.NewRemoveRecipientUseCase(recipientRepo)
	addTransactionUseCase := payment.NewAddTransactionUseCase(budgetRepo, settingsRepo, recipientRepo, transactionRepo)
	removeTransactionUseCase := payment.NewRemoveTransactionUseCase(recipientRepo, transactionRepo)
	transferAmountUseCase := payment.NewTransferAmountUseCase(budgetRepo, settingsRepo, recipientRepo, transactionRepo)
	consolidateUseCase := payment.NewConsolidateRecipientUseCase(budgetRepo, settingsRepo, recipientRepo, transactionRepo)
	restoreDataUseCase := payment.NewRestoreDataUseCase(budgetRepo, settingsRepo, maintenanceRepo)
	resetStorageUseCase := payment.NewResetStorageUseCase(maintenanceRepo)

	// Create controllers
	healthController := controller.NewHealthController(dbHealthChecker)
	budgetController := controller.NewBudgetController(
		createBudgetUseCase,
		listBudgetsUseCase,
		getActiveBudgetUseCase,
		setActiveBudgetUseCase,
		deleteBudgetUseCase,
		updateInitialPaymentUseCase,
	)
	mindmapController := controller.NewMindmapController(
		loadDataUseCase,
		addRecipientUseCase,
		removeRecipientUseCase,
		addTransactionUseCase,
		removeTransactionUseCase,
		transferAmountUseCase,
		consolidateUseCase,
		restoreDataUseCase,
		resetStorageUseCase,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: router.NewRouter(healthController, budgetController, mindmapController, cfg.Server.CORSOrigin),
	}
}
