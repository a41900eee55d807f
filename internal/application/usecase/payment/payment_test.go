package payment

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
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

// testEnv wires the real repositories over a throwaway database so the use
// cases run against the same storage behavior production sees.
type testEnv struct {
	budgets      adapter.BudgetRepository
	recipients   adapter.RecipientRepository
	transactions adapter.TransactionRepository
	settings     adapter.SettingsRepository
	maintenance  adapter.MaintenanceRepository

	load        *LoadDataUseCase
	addRec      *AddRecipientUseCase
	removeRec   *RemoveRecipientUseCase
	addTxn      *AddTransactionUseCase
	removeTxn   *RemoveTransactionUseCase
	transfer    *TransferAmountUseCase
	consolidate *ConsolidateRecipientUseCase
	restore     *RestoreDataUseCase
	reset       *ResetStorageUseCase
}

func newTestEnv(t *testing.T) *testEnv {
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

	env := &testEnv{
		budgets:      persistence.NewBudgetRepository(db),
		recipients:   persistence.NewRecipientRepository(db),
		transactions: persistence.NewTransactionRepository(db),
		settings:     persistence.NewSettingsRepository(db),
		maintenance:  persistence.NewMaintenanceRepository(db),
	}
	env.load = NewLoadDataUseCase(env.budgets, env.settings, env.recipients, env.transactions)
	env.addRec = NewAddRecipientUseCase(env.budgets, env.settings, env.recipients, env.transactions)
	env.removeRec = NewRemoveRecipientUseCase(env.recipients)
	env.addTxn = NewAddTransactionUseCase(env.budgets, env.settings, env.recipients, env.transactions)
	env.removeTxn = NewRemoveTransactionUseCase(env.recipients, env.transactions)
	env.transfer = NewTransferAmountUseCase(env.budgets, env.settings, env.recipients, env.transactions)
	env.consolidate = NewConsolidateRecipientUseCase(env.budgets, env.settings, env.recipients, env.transactions)
	env.restore = NewRestoreDataUseCase(env.budgets, env.settings, env.maintenance)
	env.reset = NewResetStorageUseCase(env.maintenance)
	return env
}

// withBudget seeds an active budget with the given initial payment.
func (env *testEnv) withBudget(t *testing.T, initialPayment int64) *entity.Budget {
	t.Helper()

	budget := entity.NewBudget("budget-1", "Household", decimal.NewFromInt(initialPayment))
	if err := env.budgets.Create(context.Background(), budget); err != nil {
		t.Fatalf("failed to seed budget: %v", err)
	}
	if err := env.settings.SetActiveBudgetID(context.Background(), budget.ID); err != nil {
		t.Fatalf("failed to activate budget: %v", err)
	}
	return budget
}

func (env *testEnv) addRecipient(t *testing.T, name string, amount int64) *AddRecipientOutput {
	t.Helper()

	output, err := env.addRec.Execute(context.Background(), AddRecipientInput{
		Name:        name,
		Amount:      decimal.NewFromInt(amount),
		Description: "initial payment",
	})
	if err != nil {
		t.Fatalf("failed to add recipient %s: %v", name, err)
	}
	return output
}

func assertPaymentErrorCode(t *testing.T, err error, code domainerror.PaymentErrorCode) {
	t.Helper()

	var paymentErr *domainerror.PaymentError
	if !errors.As(err, &paymentErr) {
		t.Fatalf("expected PaymentError, got %v", err)
	}
	if paymentErr.Code != code {
		t.Errorf("expected code %s, got %s", code, paymentErr.Code)
	}
}

func TestAddRecipientUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("reduces the available balance by the initial amount", func(t *testing.T) {
		env := newTestEnv(t)
		budget := env.withBudget(t, 1000)

		output := env.addRecipient(t, "Alice", 400)
		if !output.Recipient.TotalAmount.Equal(decimal.NewFromInt(400)) {
			t.Errorf("expected total 400, got %s", output.Recipient.TotalAmount)
		}
		if !output.Transaction.Amount.Equal(decimal.NewFromInt(400)) {
			t.Errorf("expected transaction amount 400, got %s", output.Transaction.Amount)
		}

		available, err := availableBalance(ctx, env.transactions, budget)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !available.Equal(decimal.NewFromInt(600)) {
			t.Errorf("expected available 600, got %s", available)
		}
	})

	t.Run("allows distributing exactly the available balance", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)

		output := env.addRecipient(t, "Alice", 1000)
		if !output.Recipient.TotalAmount.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected total 1000, got %s", output.Recipient.TotalAmount)
		}
	})

	t.Run("rejects an amount above the available balance", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)

		_, err := env.addRec.Execute(ctx, AddRecipientInput{
			Name:   "Alice",
			Amount: decimal.RequireFromString("1000.01"),
		})
		assertPaymentErrorCode(t, err, domainerror.ErrCodeInsufficientBalance)
	})

	t.Run("accepts a negative initial amount regardless of balance", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 0)

		output := env.addRecipient(t, "Alice", -50)
		if !output.Recipient.TotalAmount.Equal(decimal.NewFromInt(-50)) {
			t.Errorf("expected total -50, got %s", output.Recipient.TotalAmount)
		}
	})

	t.Run("rejects a duplicate name within the budget", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		env.addRecipient(t, "Alice", 100)

		_, err := env.addRec.Execute(ctx, AddRecipientInput{Name: "alice", Amount: decimal.NewFromInt(10)})
		var recipientErr *domainerror.RecipientError
		if !errors.As(err, &recipientErr) || recipientErr.Code != domainerror.ErrCodeRecipientNameExists {
			t.Errorf("expected recipient name conflict, got %v", err)
		}
	})

	t.Run("fails when no budget exists", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.addRec.Execute(ctx, AddRecipientInput{Name: "Alice", Amount: decimal.NewFromInt(10)})
		assertPaymentErrorCode(t, err, domainerror.ErrCodeNoActiveBudget)
	})

	t.Run("spaces recipients apart on the canvas", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)

		first := env.addRecipient(t, "Alice", 10).Recipient
		second := env.addRecipient(t, "Bob", 10).Recipient

		dx := first.Position.X - second.Position.X
		dy := first.Position.Y - second.Position.Y
		if dx*dx+dy*dy < minNodeDistance*minNodeDistance {
			t.Errorf("expected positions at least %v apart, got %+v and %+v", minNodeDistance, first.Position, second.Position)
		}
	})
}

func TestAddTransactionUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("a negative transaction returns money to the budget", func(t *testing.T) {
		env := newTestEnv(t)
		budget := env.withBudget(t, 1000)
		alice := env.addRecipient(t, "Alice", 400).Recipient

		output, err := env.addTxn.Execute(ctx, AddTransactionInput{
			RecipientID: alice.ID,
			Amount:      decimal.NewFromInt(-400),
			Description: "refund",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.NewTotal.IsZero() {
			t.Errorf("expected new total 0, got %s", output.NewTotal)
		}

		available, err := availableBalance(ctx, env.transactions, budget)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !available.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected available back to 1000, got %s", available)
		}
	})

	t.Run("rejects a positive amount above the available balance", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		alice := env.addRecipient(t, "Alice", 900).Recipient

		_, err := env.addTxn.Execute(ctx, AddTransactionInput{
			RecipientID: alice.ID,
			Amount:      decimal.NewFromInt(101),
		})
		assertPaymentErrorCode(t, err, domainerror.ErrCodeInsufficientBalance)
	})

	t.Run("rejects an unknown recipient", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)

		_, err := env.addTxn.Execute(ctx, AddTransactionInput{
			RecipientID: "payment-missing",
			Amount:      decimal.NewFromInt(10),
		})
		var recipientErr *domainerror.RecipientError
		if !errors.As(err, &recipientErr) || recipientErr.Code != domainerror.ErrCodeRecipientNotFound {
			t.Errorf("expected recipient not found, got %v", err)
		}
	})
}

func TestRemoveTransactionUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("removing the last transaction removes the recipient", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		added := env.addRecipient(t, "Alice", 400)

		refund, err := env.addTxn.Execute(ctx, AddTransactionInput{
			RecipientID: added.Recipient.ID,
			Amount:      decimal.NewFromInt(-400),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Removing one of two keeps the recipient with an adjusted total.
		output, err := env.removeTxn.Execute(ctx, RemoveTransactionInput{TransactionID: refund.Transaction.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.RecipientDeleted {
			t.Error("expected recipient kept while a transaction remains")
		}
		alice, err := env.recipients.FindByID(ctx, added.Recipient.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !alice.TotalAmount.Equal(decimal.NewFromInt(400)) {
			t.Errorf("expected total 400 after refund removal, got %s", alice.TotalAmount)
		}

		// Removing the only remaining transaction deletes the recipient.
		output, err = env.removeTxn.Execute(ctx, RemoveTransactionInput{TransactionID: added.Transaction.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.RecipientDeleted {
			t.Error("expected recipient deleted with its last transaction")
		}
		if _, err := env.recipients.FindByID(ctx, added.Recipient.ID); !errors.Is(err, domainerror.ErrRecipientNotFound) {
			t.Errorf("expected recipient gone, got %v", err)
		}
	})

	t.Run("removing a transfer leg removes both legs", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		alice := env.addRecipient(t, "Alice", 500).Recipient
		bob := env.addRecipient(t, "Bob", 100).Recipient

		transfer, err := env.transfer.Execute(ctx, TransferAmountInput{
			FromRecipientID: alice.ID,
			ToRecipientID:   bob.ID,
			Amount:          decimal.NewFromInt(200),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output, err := env.removeTxn.Execute(ctx, RemoveTransactionInput{TransactionID: transfer.Outgoing.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.TransferLinkBroken {
			t.Error("expected pairwise removal, not link break")
		}

		if _, err := env.transactions.FindByID(ctx, transfer.Incoming.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected sibling leg gone, got %v", err)
		}
		aliceAfter, _ := env.recipients.FindByID(ctx, alice.ID)
		if !aliceAfter.TotalAmount.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected Alice back to 500, got %s", aliceAfter.TotalAmount)
		}
		bobAfter, _ := env.recipients.FindByID(ctx, bob.ID)
		if !bobAfter.TotalAmount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected Bob back to 100, got %s", bobAfter.TotalAmount)
		}
	})

	t.Run("an orphaned transfer leg is kept with its link stripped", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		alice := env.addRecipient(t, "Alice", 500).Recipient
		bob := env.addRecipient(t, "Bob", 100).Recipient

		transfer, err := env.transfer.Execute(ctx, TransferAmountInput{
			FromRecipientID: alice.ID,
			ToRecipientID:   bob.ID,
			Amount:          decimal.NewFromInt(200),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Drop the incoming leg behind the use case's back.
		if err := env.transactions.Delete(ctx, transfer.Incoming.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output, err := env.removeTxn.Execute(ctx, RemoveTransactionInput{TransactionID: transfer.Outgoing.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.TransferLinkBroken {
			t.Error("expected transfer link break")
		}
		if output.RecipientDeleted {
			t.Error("expected recipient kept")
		}

		kept, err := env.transactions.FindByID(ctx, transfer.Outgoing.ID)
		if err != nil {
			t.Fatalf("expected leg kept, got %v", err)
		}
		if kept.TransferID != nil || kept.TransferType != "" {
			t.Errorf("expected transfer link stripped, got %+v", kept)
		}
		if !strings.HasSuffix(kept.Description, " [Transfer link removed]") {
			t.Errorf("expected link-removed marker in description, got %q", kept.Description)
		}
		if !kept.Amount.Equal(decimal.NewFromInt(-200)) {
			t.Errorf("expected amount unchanged, got %s", kept.Amount)
		}
	})

	t.Run("rejects an unknown transaction", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)

		_, err := env.removeTxn.Execute(ctx, RemoveTransactionInput{TransactionID: "payment-missing"})
		var transactionErr *domainerror.TransactionError
		if !errors.As(err, &transactionErr) || transactionErr.Code != domainerror.ErrCodeTransactionNotFound {
			t.Errorf("expected transaction not found, got %v", err)
		}
	})

	t.Run("scopes the removal to the supplied recipient", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		alice := env.addRecipient(t, "Alice", 400)
		bob := env.addRecipient(t, "Bob", 100)

		_, err := env.removeTxn.Execute(ctx, RemoveTransactionInput{
			TransactionID: alice.Transaction.ID,
			RecipientID:   bob.Recipient.ID,
		})
		var transactionErr *domainerror.TransactionError
		if !errors.As(err, &transactionErr) || transactionErr.Code != domainerror.ErrCodeTransactionNotFound {
			t.Errorf("expected transaction not found, got %v", err)
		}

		output, err := env.removeTxn.Execute(ctx, RemoveTransactionInput{
			TransactionID: alice.Transaction.ID,
			RecipientID:   alice.Recipient.ID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.RecipientDeleted {
			t.Error("expected recipient deleted with its last transaction")
		}
	})
}

func TestTransferAmountUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the amount and links both legs", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		alice := env.addRecipient(t, "Alice", 500).Recipient
		bob := env.addRecipient(t, "Bob", 0).Recipient

		output, err := env.transfer.Execute(ctx, TransferAmountInput{
			FromRecipientID: alice.ID,
			ToRecipientID:   bob.ID,
			Amount:          decimal.NewFromInt(200),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !output.Outgoing.Amount.Equal(decimal.NewFromInt(-200)) {
			t.Errorf("expected outgoing -200, got %s", output.Outgoing.Amount)
		}
		if !output.Incoming.Amount.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected incoming 200, got %s", output.Incoming.Amount)
		}
		if output.Outgoing.TransferID == nil || output.Incoming.TransferID == nil ||
			*output.Outgoing.TransferID != *output.Incoming.TransferID {
			t.Error("expected both legs to share one transfer id")
		}
		if *output.Outgoing.TransferID != output.TransferID {
			t.Errorf("expected transfer id %s on legs, got %s", output.TransferID, *output.Outgoing.TransferID)
		}
		if output.Outgoing.TransferType != entity.TransferTypeOutgoing ||
			output.Incoming.TransferType != entity.TransferTypeIncoming {
			t.Errorf("expected out/in leg types, got %s and %s", output.Outgoing.TransferType, output.Incoming.TransferType)
		}
		if !output.Outgoing.CreatedAt.Equal(output.Incoming.CreatedAt) {
			t.Error("expected both legs to share one creation instant")
		}
		if !strings.Contains(output.Outgoing.Description, "Sent to Bob") {
			t.Errorf("unexpected outgoing description %q", output.Outgoing.Description)
		}
		if !strings.Contains(output.Incoming.Description, "Received from Alice") {
			t.Errorf("unexpected incoming description %q", output.Incoming.Description)
		}

		aliceAfter, _ := env.recipients.FindByID(ctx, alice.ID)
		if !aliceAfter.TotalAmount.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected Alice total 300, got %s", aliceAfter.TotalAmount)
		}
		bobAfter, _ := env.recipients.FindByID(ctx, bob.ID)
		if !bobAfter.TotalAmount.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected Bob total 200, got %s", bobAfter.TotalAmount)
		}
	})

	t.Run("a transfer does not change the budget's distributed sum", func(t *testing.T) {
		env := newTestEnv(t)
		budget := env.withBudget(t, 1000)
		alice := env.addRecipient(t, "Alice", 500).Recipient
		bob := env.addRecipient(t, "Bob", 0).Recipient

		if _, err := env.transfer.Execute(ctx, TransferAmountInput{
			FromRecipientID: alice.ID,
			ToRecipientID:   bob.ID,
			Amount:          decimal.NewFromInt(200),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		sum, err := env.transactions.SumByBudget(ctx, budget.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sum.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected distributed sum 500, got %s", sum)
		}
	})

	t.Run("rejects an amount above the sender's total", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		alice := env.addRecipient(t, "Alice", 100).Recipient
		bob := env.addRecipient(t, "Bob", 0).Recipient

		_, err := env.transfer.Execute(ctx, TransferAmountInput{
			FromRecipientID: alice.ID,
			ToRecipientID:   bob.ID,
			Amount:          decimal.NewFromInt(101),
		})
		assertPaymentErrorCode(t, err, domainerror.ErrCodeInsufficientSenderTotal)
	})

	t.Run("creates the destination on the fly for the create_new sentinel", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		alice := env.addRecipient(t, "Alice", 500).Recipient

		output, err := env.transfer.Execute(ctx, TransferAmountInput{
			FromRecipientID:  alice.ID,
			ToRecipientID:    CreateNewRecipientID,
			Amount:           decimal.NewFromInt(200),
			NewRecipientName: "Bob",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.ToRecipient.Name != "Bob" {
			t.Errorf("expected Bob, got %s", output.ToRecipient.Name)
		}
		if !output.ToRecipient.TotalAmount.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected new recipient total 200, got %s", output.ToRecipient.TotalAmount)
		}

		persisted, err := env.recipients.FindByID(ctx, output.ToRecipient.ID)
		if err != nil {
			t.Fatalf("expected new recipient persisted, got %v", err)
		}
		if !persisted.TotalAmount.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected persisted total 200, got %s", persisted.TotalAmount)
		}
	})

	t.Run("rejects the sentinel without a name", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		alice := env.addRecipient(t, "Alice", 500).Recipient

		_, err := env.transfer.Execute(ctx, TransferAmountInput{
			FromRecipientID: alice.ID,
			ToRecipientID:   CreateNewRecipientID,
			Amount:          decimal.NewFromInt(50),
		})
		assertPaymentErrorCode(t, err, domainerror.ErrCodeMissingNewRecipientName)
	})

	t.Run("rejects an unknown destination", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		alice := env.addRecipient(t, "Alice", 500).Recipient

		_, err := env.transfer.Execute(ctx, TransferAmountInput{
			FromRecipientID: alice.ID,
			ToRecipientID:   "payment-missing",
			Amount:          decimal.NewFromInt(50),
		})
		var recipientErr *domainerror.RecipientError
		if !errors.As(err, &recipientErr) || recipientErr.Code != domainerror.ErrCodeRecipientNotFound {
			t.Errorf("expected destination not found, got %v", err)
		}
	})

	t.Run("reports a missing destination before the sender's balance", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		alice := env.addRecipient(t, "Alice", 100).Recipient

		// The sender cannot cover the amount either; the unknown destination
		// must still win.
		_, err := env.transfer.Execute(ctx, TransferAmountInput{
			FromRecipientID: alice.ID,
			ToRecipientID:   "payment-missing",
			Amount:          decimal.NewFromInt(500),
		})
		var recipientErr *domainerror.RecipientError
		if !errors.As(err, &recipientErr) || recipientErr.Code != domainerror.ErrCodeRecipientNotFound {
			t.Errorf("expected destination not found, got %v", err)
		}
	})
}

func TestConsolidateRecipientUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("collapses the history into one transaction with the summed amount", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		alice := env.addRecipient(t, "Alice", 100).Recipient
		for _, amount := range []int64{75, -25} {
			if _, err := env.addTxn.Execute(ctx, AddTransactionInput{
				RecipientID: alice.ID,
				Amount:      decimal.NewFromInt(amount),
			}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		output, err := env.consolidate.Execute(ctx, ConsolidateRecipientInput{
			RecipientID: alice.ID,
			Description: "Consolidated balance",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.NewTotal.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected total 150, got %s", output.NewTotal)
		}
		if !output.Transaction.IsConsolidated {
			t.Error("expected consolidated flag set")
		}
		if !strings.HasPrefix(output.Transaction.ID, "transaction-") {
			t.Errorf("expected transaction id prefix, got %s", output.Transaction.ID)
		}

		remaining, err := env.transactions.FindByRecipient(ctx, alice.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(remaining) != 1 || remaining[0].ID != output.Transaction.ID {
			t.Errorf("expected exactly the consolidated transaction, got %+v", remaining)
		}

		aliceAfter, _ := env.recipients.FindByID(ctx, alice.ID)
		if !aliceAfter.TotalAmount.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected recipient total 150, got %s", aliceAfter.TotalAmount)
		}
	})

	t.Run("rejects a single-transaction history", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		alice := env.addRecipient(t, "Alice", 100).Recipient

		_, err := env.consolidate.Execute(ctx, ConsolidateRecipientInput{
			RecipientID: alice.ID,
			Description: "Consolidated balance",
		})
		assertPaymentErrorCode(t, err, domainerror.ErrCodeTooFewTransactions)
	})
}

func TestLoadDataUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("returns an empty snapshot with the legacy amount when no budget exists", func(t *testing.T) {
		env := newTestEnv(t)
		if err := env.settings.SetInitialPayment(ctx, decimal.NewFromInt(500)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output, err := env.load.Execute(ctx, LoadDataInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Budget != nil {
			t.Errorf("expected no budget, got %+v", output.Budget)
		}
		if len(output.Snapshot.Recipients) != 0 {
			t.Errorf("expected no recipients, got %d", len(output.Snapshot.Recipients))
		}
		if !output.Snapshot.InitialPaymentAmount.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected legacy amount 500, got %s", output.Snapshot.InitialPaymentAmount)
		}
	})

	t.Run("groups transactions under their recipients in creation order", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		alice := env.addRecipient(t, "Alice", 100).Recipient
		time.Sleep(5 * time.Millisecond)
		for _, amount := range []int64{50, -20} {
			if _, err := env.addTxn.Execute(ctx, AddTransactionInput{
				RecipientID: alice.ID,
				Amount:      decimal.NewFromInt(amount),
			}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			time.Sleep(5 * time.Millisecond)
		}

		output, err := env.load.Execute(ctx, LoadDataInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Budget == nil || output.Budget.ID != "budget-1" {
			t.Fatalf("expected budget-1, got %+v", output.Budget)
		}
		if !output.Snapshot.TotalDistributed.Equal(decimal.NewFromInt(130)) {
			t.Errorf("expected distributed 130, got %s", output.Snapshot.TotalDistributed)
		}
		if len(output.Snapshot.Recipients) != 1 {
			t.Fatalf("expected one recipient, got %d", len(output.Snapshot.Recipients))
		}

		transactions := output.Snapshot.Recipients[0].Transactions
		if len(transactions) != 3 {
			t.Fatalf("expected three transactions, got %d", len(transactions))
		}
		amounts := []int64{100, 50, -20}
		for i, want := range amounts {
			if !transactions[i].Amount.Equal(decimal.NewFromInt(want)) {
				t.Errorf("expected amount %d at index %d, got %s", want, i, transactions[i].Amount)
			}
		}
	})
}

func TestRestoreDataUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips a snapshot preserving ids and timestamps", func(t *testing.T) {
		env := newTestEnv(t)
		budget := env.withBudget(t, 1000)
		env.addRecipient(t, "Stale", 10)

		createdAt := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
		recipient := entity.NewRecipient("payment-restored", "Alice", "", decimal.NewFromInt(400), entity.Position{X: 600, Y: 300})
		transaction := entity.NewTransaction("payment-restored-t", "payment-restored", "", decimal.NewFromInt(400), "restored", createdAt)
		transaction.CreatedAt = createdAt

		output, err := env.restore.Execute(ctx, RestoreDataInput{
			Recipients:           []*entity.Recipient{recipient},
			Transactions:         []*entity.Transaction{transaction},
			InitialPaymentAmount: decimal.NewFromInt(2000),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.RecipientCount != 1 || output.TransactionCount != 1 {
			t.Errorf("expected counts 1/1, got %d/%d", output.RecipientCount, output.TransactionCount)
		}

		restored, err := env.transactions.FindByID(ctx, "payment-restored-t")
		if err != nil {
			t.Fatalf("expected restored transaction, got %v", err)
		}
		if !restored.CreatedAt.Equal(createdAt) {
			t.Errorf("expected created_at preserved, got %v", restored.CreatedAt)
		}
		if restored.BudgetID != budget.ID {
			t.Errorf("expected row landed in %s, got %s", budget.ID, restored.BudgetID)
		}

		// The pre-restore content is gone.
		recipients, err := env.recipients.FindByBudget(ctx, budget.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(recipients) != 1 || recipients[0].ID != "payment-restored" {
			t.Errorf("expected only the restored recipient, got %+v", recipients)
		}

		budgetAfter, _ := env.budgets.FindByID(ctx, budget.ID)
		if !budgetAfter.InitialPayment.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("expected initial payment 2000, got %s", budgetAfter.InitialPayment)
		}
	})

	t.Run("a zero snapshot amount keeps the budget's current initial payment", func(t *testing.T) {
		env := newTestEnv(t)
		budget := env.withBudget(t, 1000)

		if _, err := env.restore.Execute(ctx, RestoreDataInput{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		budgetAfter, _ := env.budgets.FindByID(ctx, budget.ID)
		if !budgetAfter.InitialPayment.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected initial payment kept at 1000, got %s", budgetAfter.InitialPayment)
		}
	})
}

func TestResetStorageUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("wipes every budget, recipient and transaction", func(t *testing.T) {
		env := newTestEnv(t)
		env.withBudget(t, 1000)
		env.addRecipient(t, "Alice", 100)

		if err := env.reset.Execute(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		budgets, err := env.budgets.FindAll(ctx)
		if err != nil || len(budgets) != 0 {
			t.Errorf("expected no budgets, got %d err=%v", len(budgets), err)
		}
		id, _ := env.settings.GetActiveBudgetID(ctx)
		if id != "" {
			t.Errorf("expected pointer cleared, got %q", id)
		}
	})
}
