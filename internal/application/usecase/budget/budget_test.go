package budget

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/payment-mindmap/backend/internal/application/adapter"
	"github.com/payment-mindmap/backend/internal/domain/entity"
	domainerror "github.com/payment-mindmap/backend/internal/domain/error"
	"github.com/payment-mindmap/backend/internal/integration/persistence"
	"github.com/payment-mindmap/backend/internal/integration/persistence/model"
)

type testRepos struct {
	budgets  adapter.BudgetRepository
	settings adapter.SettingsRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.BudgetModel{},
		&model.RecipientModel{},
		&model.TransactionModel{},
		&model.SettingModel{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testRepos{
		budgets:  persistence.NewBudgetRepository(db),
		settings: persistence.NewSettingsRepository(db),
	}
}

func seedBudget(t *testing.T, repos testRepos, id, name string, createdAt time.Time) *entity.Budget {
	t.Helper()

	budget := entity.NewBudget(id, name, decimal.NewFromInt(1000))
	budget.CreatedAt = createdAt
	if err := repos.budgets.Create(context.Background(), budget); err != nil {
		t.Fatalf("failed to seed budget: %v", err)
	}
	return budget
}

func assertBudgetErrorCode(t *testing.T, err error, code domainerror.BudgetErrorCode) {
	t.Helper()

	var budgetErr *domainerror.BudgetError
	if !errors.As(err, &budgetErr) {
		t.Fatalf("expected BudgetError, got %v", err)
	}
	if budgetErr.Code != code {
		t.Errorf("expected code %s, got %s", code, budgetErr.Code)
	}
}

func TestCreateBudgetUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a budget with trimmed name", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewCreateBudgetUseCase(repos.budgets)

		output, err := uc.Execute(ctx, CreateBudgetInput{
			Name:           "  Household  ",
			InitialPayment: decimal.NewFromInt(1000),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Budget.Name != "Household" {
			t.Errorf("expected trimmed name, got %q", output.Budget.Name)
		}
		if output.Budget.ID == "" {
			t.Error("expected a generated id")
		}
		if !output.Budget.InitialPayment.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected initial payment 1000, got %s", output.Budget.InitialPayment)
		}
	})

	t.Run("rejects a duplicate name regardless of case", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewCreateBudgetUseCase(repos.budgets)
		seedBudget(t, repos, "budget-1", "Household", time.Now().UTC())

		_, err := uc.Execute(ctx, CreateBudgetInput{Name: "HOUSEHOLD"})
		assertBudgetErrorCode(t, err, domainerror.ErrCodeBudgetNameExists)
	})
}

func TestGetActiveBudgetUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("returns nil budget when none exist", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewGetActiveBudgetUseCase(repos.budgets, repos.settings)

		output, err := uc.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Budget != nil {
			t.Errorf("expected nil budget, got %+v", output.Budget)
		}
	})

	t.Run("returns the budget the pointer names", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewGetActiveBudgetUseCase(repos.budgets, repos.settings)
		seedBudget(t, repos, "budget-1", "First", time.Now().UTC().Add(-time.Hour))
		seedBudget(t, repos, "budget-2", "Second", time.Now().UTC())
		if err := repos.settings.SetActiveBudgetID(ctx, "budget-2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output, err := uc.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Budget == nil || output.Budget.ID != "budget-2" {
			t.Errorf("expected budget-2, got %+v", output.Budget)
		}
	})

	t.Run("repairs a stale pointer by promoting the oldest budget", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewGetActiveBudgetUseCase(repos.budgets, repos.settings)
		seedBudget(t, repos, "budget-old", "Oldest", time.Now().UTC().Add(-time.Hour))
		seedBudget(t, repos, "budget-new", "Newest", time.Now().UTC())
		if err := repos.settings.SetActiveBudgetID(ctx, "budget-gone"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output, err := uc.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Budget == nil || output.Budget.ID != "budget-old" {
			t.Errorf("expected budget-old promoted, got %+v", output.Budget)
		}

		// The repair is persisted.
		id, err := repos.settings.GetActiveBudgetID(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "budget-old" {
			t.Errorf("expected pointer persisted as budget-old, got %q", id)
		}
	})

	t.Run("promotes the oldest budget when no pointer is set", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewGetActiveBudgetUseCase(repos.budgets, repos.settings)
		seedBudget(t, repos, "budget-1", "Only", time.Now().UTC())

		output, err := uc.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Budget == nil || output.Budget.ID != "budget-1" {
			t.Errorf("expected budget-1, got %+v", output.Budget)
		}
	})
}

func TestSetActiveBudgetUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the pointer for an existing budget", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewSetActiveBudgetUseCase(repos.budgets, repos.settings)
		seedBudget(t, repos, "budget-1", "Household", time.Now().UTC())

		output, err := uc.Execute(ctx, SetActiveBudgetInput{BudgetID: "budget-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Budget.ID != "budget-1" {
			t.Errorf("expected budget-1, got %s", output.Budget.ID)
		}

		id, _ := repos.settings.GetActiveBudgetID(ctx)
		if id != "budget-1" {
			t.Errorf("expected pointer budget-1, got %q", id)
		}
	})

	t.Run("rejects an unknown budget id", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewSetActiveBudgetUseCase(repos.budgets, repos.settings)

		_, err := uc.Execute(ctx, SetActiveBudgetInput{BudgetID: "budget-missing"})
		assertBudgetErrorCode(t, err, domainerror.ErrCodeBudgetNotFound)
	})
}

func TestDeleteBudgetUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an inactive budget without touching the pointer", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewDeleteBudgetUseCase(repos.budgets, repos.settings)
		seedBudget(t, repos, "budget-1", "Keep", time.Now().UTC().Add(-time.Hour))
		seedBudget(t, repos, "budget-2", "Drop", time.Now().UTC())
		if err := repos.settings.SetActiveBudgetID(ctx, "budget-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output, err := uc.Execute(ctx, DeleteBudgetInput{BudgetID: "budget-2"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Success || output.SwitchedToBudget != nil {
			t.Errorf("expected plain success, got %+v", output)
		}

		id, _ := repos.settings.GetActiveBudgetID(ctx)
		if id != "budget-1" {
			t.Errorf("expected pointer unchanged, got %q", id)
		}
	})

	t.Run("switches to the oldest remaining budget when deleting the active one", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewDeleteBudgetUseCase(repos.budgets, repos.settings)
		seedBudget(t, repos, "budget-1", "Active", time.Now().UTC().Add(-2*time.Hour))
		seedBudget(t, repos, "budget-2", "Next", time.Now().UTC().Add(-time.Hour))
		if err := repos.settings.SetActiveBudgetID(ctx, "budget-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output, err := uc.Execute(ctx, DeleteBudgetInput{BudgetID: "budget-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Success {
			t.Error("expected success")
		}
		if output.SwitchedToBudget == nil || output.SwitchedToBudget.ID != "budget-2" {
			t.Errorf("expected switch to budget-2, got %+v", output.SwitchedToBudget)
		}
	})

	t.Run("clears the pointer when deleting the last budget", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewDeleteBudgetUseCase(repos.budgets, repos.settings)
		seedBudget(t, repos, "budget-1", "Last", time.Now().UTC())
		if err := repos.settings.SetActiveBudgetID(ctx, "budget-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output, err := uc.Execute(ctx, DeleteBudgetInput{BudgetID: "budget-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Success || output.SwitchedToBudget != nil {
			t.Errorf("expected success with no switch target, got %+v", output)
		}

		id, _ := repos.settings.GetActiveBudgetID(ctx)
		if id != "" {
			t.Errorf("expected pointer cleared, got %q", id)
		}
	})

	t.Run("repairs a stale active pointer instead of failing", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewDeleteBudgetUseCase(repos.budgets, repos.settings)
		seedBudget(t, repos, "budget-1", "Survivor", time.Now().UTC())
		if err := repos.settings.SetActiveBudgetID(ctx, "budget-gone"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output, err := uc.Execute(ctx, DeleteBudgetInput{BudgetID: "budget-gone"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Success {
			t.Error("expected success false for an already-gone budget")
		}
		if output.SwitchedToBudget == nil || output.SwitchedToBudget.ID != "budget-1" {
			t.Errorf("expected switch to budget-1, got %+v", output.SwitchedToBudget)
		}
	})

	t.Run("rejects an unknown inactive budget id", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewDeleteBudgetUseCase(repos.budgets, repos.settings)
		seedBudget(t, repos, "budget-1", "Active", time.Now().UTC())
		if err := repos.settings.SetActiveBudgetID(ctx, "budget-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := uc.Execute(ctx, DeleteBudgetInput{BudgetID: "budget-missing"})
		assertBudgetErrorCode(t, err, domainerror.ErrCodeBudgetNotFound)
	})
}

func TestUpdateInitialPaymentUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a negative amount", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewUpdateInitialPaymentUseCase(repos.budgets, repos.settings)

		_, err := uc.Execute(ctx, UpdateInitialPaymentInput{Amount: decimal.NewFromInt(-1)})
		assertBudgetErrorCode(t, err, domainerror.ErrCodeNegativeInitialPayment)
	})

	t.Run("updates a budget's initial payment", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewUpdateInitialPaymentUseCase(repos.budgets, repos.settings)
		seedBudget(t, repos, "budget-1", "Household", time.Now().UTC())

		output, err := uc.Execute(ctx, UpdateInitialPaymentInput{
			Amount:   decimal.NewFromInt(2500),
			BudgetID: "budget-1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Amount.Equal(decimal.NewFromInt(2500)) {
			t.Errorf("expected 2500, got %s", output.Amount)
		}

		budget, err := repos.budgets.FindByID(ctx, "budget-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !budget.InitialPayment.Equal(decimal.NewFromInt(2500)) {
			t.Errorf("expected persisted 2500, got %s", budget.InitialPayment)
		}
	})

	t.Run("writes the legacy singleton when no budget id is given", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewUpdateInitialPaymentUseCase(repos.budgets, repos.settings)

		_, err := uc.Execute(ctx, UpdateInitialPaymentInput{Amount: decimal.NewFromInt(750)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		amount, err := repos.settings.GetInitialPayment(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !amount.Equal(decimal.NewFromInt(750)) {
			t.Errorf("expected 750, got %s", amount)
		}
	})

	t.Run("rejects an unknown budget id", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewUpdateInitialPaymentUseCase(repos.budgets, repos.settings)

		_, err := uc.Execute(ctx, UpdateInitialPaymentInput{
			Amount:   decimal.NewFromInt(100),
			BudgetID: "budget-missing",
		})
		assertBudgetErrorCode(t, err, domainerror.ErrCodeBudgetNotFound)
	})
}
