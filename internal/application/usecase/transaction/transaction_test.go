package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/domain/valueobject"
	"github.com/pocketledger/backend/internal/integration/persistence"
	"github.com/pocketledger/backend/internal/integration/persistence/persistencetest"
)

type fixture struct {
	t        *testing.T
	ctx      context.Context
	uow      adapter.UnitOfWork
	repos    adapter.Repositories
	userID   uuid.UUID
	wallet   *entity.Wallet
	category *entity.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := persistencetest.NewDB(t)
	f := &fixture{
		t:      t,
		ctx:    context.Background(),
		uow:    persistence.NewUnitOfWork(db),
		repos:  persistence.NewRepositories(db),
		userID: uuid.New(),
	}
	f.wallet = f.newWallet(f.userID, "Main", 100000)
	f.category = f.newCategory(f.userID, "Groceries")
	return f
}

func (f *fixture) newWallet(userID uuid.UUID, name string, balance int64) *entity.Wallet {
	f.t.Helper()

	w := entity.NewWallet(userID, name, entity.WalletCategoryBank, balance)
	if err := f.repos.Wallets.Create(f.ctx, w); err != nil {
		f.t.Fatalf("failed to create wallet: %v", err)
	}
	return w
}

func (f *fixture) newCategory(userID uuid.UUID, name string) *entity.Category {
	f.t.Helper()

	c := entity.NewCategory(userID, name, entity.CategoryApplicabilityBoth)
	if err := f.repos.Categories.Create(f.ctx, c); err != nil {
		f.t.Fatalf("failed to create category: %v", err)
	}
	return c
}

func (f *fixture) balance(walletID uuid.UUID) int64 {
	f.t.Helper()

	w, err := f.repos.Wallets.FindByID(f.ctx, walletID)
	if err != nil {
		f.t.Fatalf("failed to load wallet: %v", err)
	}
	return w.Balance
}

func (f *fixture) create(input CreateTransactionInput) (*entity.Transaction, error) {
	if input.UserID == uuid.Nil {
		input.UserID = f.userID
	}
	if input.WalletID == uuid.Nil {
		input.WalletID = f.wallet.ID
	}
	if input.CategoryID == uuid.Nil {
		input.CategoryID = f.category.ID
	}
	if input.Date.IsZero() {
		input.Date = time.Now().UTC()
	}
	out, err := NewCreateTransactionUseCase(f.uow).Execute(f.ctx, input)
	if err != nil {
		return nil, err
	}
	return out.Transaction, nil
}

func errorCode(err error) string {
	var coded domainerror.CodedError
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return ""
}

func TestCreateTransaction(t *testing.T) {
	t.Run("expense and income move the wallet balance", func(t *testing.T) {
		f := newFixture(t)

		if _, err := f.create(CreateTransactionInput{Name: "Rent", Type: entity.TransactionTypeExpense, Amount: 30000}); err != nil {
			t.Fatalf("expense: %v", err)
		}
		if got := f.balance(f.wallet.ID); got != 70000 {
			t.Errorf("balance after expense = %d, want 70000", got)
		}

		if _, err := f.create(CreateTransactionInput{Name: "Salary", Type: entity.TransactionTypeIncome, Amount: 50000}); err != nil {
			t.Fatalf("income: %v", err)
		}
		if got := f.balance(f.wallet.ID); got != 120000 {
			t.Errorf("balance after income = %d, want 120000", got)
		}
	})

	t.Run("expense may overdraw the wallet", func(t *testing.T) {
		f := newFixture(t)
		if _, err := f.create(CreateTransactionInput{Name: "Laptop", Type: entity.TransactionTypeExpense, Amount: 250000}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := f.balance(f.wallet.ID); got != -150000 {
			t.Errorf("balance = %d, want -150000", got)
		}
	})

	t.Run("recurring template keeps its frequency", func(t *testing.T) {
		f := newFixture(t)
		monthly := valueobject.FrequencyMonthly
		tx, err := f.create(CreateTransactionInput{
			Name: "Gym", Type: entity.TransactionTypeExpense, Amount: 4000, IsRecurring: true, Frequency: &monthly,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !tx.IsTemplate() {
			t.Error("expected a recurring template")
		}
	})

	t.Run("one-off transaction drops the frequency", func(t *testing.T) {
		f := newFixture(t)
		weekly := valueobject.FrequencyWeekly
		tx, err := f.create(CreateTransactionInput{
			Name: "Coffee", Type: entity.TransactionTypeExpense, Amount: 300, Frequency: &weekly,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tx.Frequency != nil {
			t.Errorf("frequency = %v, want nil", *tx.Frequency)
		}
	})

	other := uuid.New()
	bogus := valueobject.Frequency("fortnightly")
	tests := []struct {
		name  string
		input func(f *fixture) CreateTransactionInput
		code  domainerror.TransactionErrorCode
	}{
		{
			name: "zero amount",
			input: func(*fixture) CreateTransactionInput {
				return CreateTransactionInput{Name: "A", Type: entity.TransactionTypeExpense}
			},
			code: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name: "unknown type",
			input: func(*fixture) CreateTransactionInput {
				return CreateTransactionInput{Name: "A", Type: "transfer", Amount: 1}
			},
			code: domainerror.ErrCodeInvalidTransactionType,
		},
		{
			name: "blank name",
			input: func(*fixture) CreateTransactionInput {
				return CreateTransactionInput{Name: "  ", Type: entity.TransactionTypeIncome, Amount: 1}
			},
			code: domainerror.ErrCodeInvalidTransactionName,
		},
		{
			name: "recurring without frequency",
			input: func(*fixture) CreateTransactionInput {
				return CreateTransactionInput{Name: "A", Type: entity.TransactionTypeIncome, Amount: 1, IsRecurring: true}
			},
			code: domainerror.ErrCodeInvalidFrequency,
		},
		{
			name: "recurring with unknown frequency",
			input: func(*fixture) CreateTransactionInput {
				return CreateTransactionInput{Name: "A", Type: entity.TransactionTypeIncome, Amount: 1, IsRecurring: true, Frequency: &bogus}
			},
			code: domainerror.ErrCodeInvalidFrequency,
		},
		{
			name: "someone else's wallet",
			input: func(f *fixture) CreateTransactionInput {
				w := f.newWallet(other, "Theirs", 0)
				return CreateTransactionInput{Name: "A", Type: entity.TransactionTypeIncome, Amount: 1, WalletID: w.ID}
			},
			code: domainerror.ErrCodeTxnWalletNotOwned,
		},
		{
			name: "someone else's category",
			input: func(f *fixture) CreateTransactionInput {
				c := f.newCategory(other, "Theirs")
				return CreateTransactionInput{Name: "A", Type: entity.TransactionTypeIncome, Amount: 1, CategoryID: c.ID}
			},
			code: domainerror.ErrCodeTxnCategoryNotOwned,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.create(tt.input(f))
			if errorCode(err) != string(tt.code) {
				t.Fatalf("got %v, want %s", err, tt.code)
			}
			if domainerror.KindOf(err) != domainerror.KindValidation {
				t.Errorf("kind = %s, want validation", domainerror.KindOf(err))
			}
			if got := f.balance(f.wallet.ID); got != 100000 {
				t.Errorf("rejected create changed the balance to %d", got)
			}
		})
	}
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("amount and type changes rebalance the wallet", func(t *testing.T) {
		f := newFixture(t)
		tx, err := f.create(CreateTransactionInput{Name: "Dinner", Type: entity.TransactionTypeExpense, Amount: 5000})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		amount := int64(8000)
		income := entity.TransactionTypeIncome
		uc := NewUpdateTransactionUseCase(f.uow)

		if _, err := uc.Execute(f.ctx, UpdateTransactionInput{UserID: f.userID, TransactionID: tx.ID, Amount: &amount}); err != nil {
			t.Fatalf("update amount: %v", err)
		}
		if got := f.balance(f.wallet.ID); got != 92000 {
			t.Errorf("balance = %d, want 92000", got)
		}

		if _, err := uc.Execute(f.ctx, UpdateTransactionInput{UserID: f.userID, TransactionID: tx.ID, Type: &income}); err != nil {
			t.Fatalf("update type: %v", err)
		}
		if got := f.balance(f.wallet.ID); got != 108000 {
			t.Errorf("balance = %d, want 108000", got)
		}
	})

	t.Run("moving to another wallet moves the effect", func(t *testing.T) {
		f := newFixture(t)
		savings := f.newWallet(f.userID, "Savings", 20000)
		tx, err := f.create(CreateTransactionInput{Name: "Bonus", Type: entity.TransactionTypeIncome, Amount: 7000})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		out, err := NewUpdateTransactionUseCase(f.uow).Execute(f.ctx, UpdateTransactionInput{
			UserID: f.userID, TransactionID: tx.ID, WalletID: &savings.ID,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if out.Transaction.WalletID != savings.ID {
			t.Errorf("wallet = %s, want %s", out.Transaction.WalletID, savings.ID)
		}
		if f.balance(f.wallet.ID) != 100000 || f.balance(savings.ID) != 27000 {
			t.Errorf("balances = %d/%d, want 100000/27000", f.balance(f.wallet.ID), f.balance(savings.ID))
		}
	})

	t.Run("turning recurrence off clears the frequency", func(t *testing.T) {
		f := newFixture(t)
		daily := valueobject.FrequencyDaily
		tx, err := f.create(CreateTransactionInput{Name: "Lunch", Type: entity.TransactionTypeExpense, Amount: 900, IsRecurring: true, Frequency: &daily})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		off := false
		out, err := NewUpdateTransactionUseCase(f.uow).Execute(f.ctx, UpdateTransactionInput{
			UserID: f.userID, TransactionID: tx.ID, IsRecurring: &off,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if out.Transaction.IsRecurring || out.Transaction.Frequency != nil {
			t.Errorf("recurrence not cleared: %+v", out.Transaction)
		}
	})

	t.Run("errors leave the balance untouched", func(t *testing.T) {
		f := newFixture(t)
		tx, err := f.create(CreateTransactionInput{Name: "Dinner", Type: entity.TransactionTypeExpense, Amount: 5000})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		theirs := f.newWallet(uuid.New(), "Theirs", 0)
		zero := int64(0)

		tests := []struct {
			name  string
			input UpdateTransactionInput
			code  domainerror.TransactionErrorCode
		}{
			{name: "empty patch", input: UpdateTransactionInput{UserID: f.userID, TransactionID: tx.ID}, code: domainerror.ErrCodeMissingTransactionFields},
			{name: "zero amount", input: UpdateTransactionInput{UserID: f.userID, TransactionID: tx.ID, Amount: &zero}, code: domainerror.ErrCodeInvalidTransactionAmount},
			{name: "foreign wallet", input: UpdateTransactionInput{UserID: f.userID, TransactionID: tx.ID, WalletID: &theirs.ID}, code: domainerror.ErrCodeTxnWalletNotOwned},
			{name: "other user", input: UpdateTransactionInput{UserID: uuid.New(), TransactionID: tx.ID, Amount: &zero}, code: domainerror.ErrCodeTransactionNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewUpdateTransactionUseCase(f.uow).Execute(f.ctx, tt.input)
				if errorCode(err) != string(tt.code) {
					t.Errorf("got %v, want %s", err, tt.code)
				}
				if got := f.balance(f.wallet.ID); got != 95000 {
					t.Errorf("balance = %d, want 95000", got)
				}
			})
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	f := newFixture(t)
	tx, err := f.create(CreateTransactionInput{Name: "Refund", Type: entity.TransactionTypeIncome, Amount: 2500})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	uc := NewDeleteTransactionUseCase(f.uow)
	if err := uc.Execute(f.ctx, DeleteTransactionInput{UserID: uuid.New(), TransactionID: tx.ID}); errorCode(err) != string(domainerror.ErrCodeTransactionNotFound) {
		t.Errorf("other user delete: got %v", err)
	}

	if err := uc.Execute(f.ctx, DeleteTransactionInput{UserID: f.userID, TransactionID: tx.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := f.balance(f.wallet.ID); got != 100000 {
		t.Errorf("balance = %d, want 100000", got)
	}

	err = uc.Execute(f.ctx, DeleteTransactionInput{UserID: f.userID, TransactionID: tx.ID})
	if domainerror.KindOf(err) != domainerror.KindNotFound {
		t.Errorf("second delete: got %v, want not found", err)
	}
}

func TestBalanceConservation(t *testing.T) {
	f := newFixture(t)
	second := f.newWallet(f.userID, "Cash", 0)

	var ids []uuid.UUID
	inputs := []CreateTransactionInput{
		{Name: "Salary", Type: entity.TransactionTypeIncome, Amount: 300000},
		{Name: "Rent", Type: entity.TransactionTypeExpense, Amount: 120000},
		{Name: "Market", Type: entity.TransactionTypeExpense, Amount: 8000, WalletID: second.ID},
		{Name: "Gift", Type: entity.TransactionTypeIncome, Amount: 15000, WalletID: second.ID},
	}
	for _, in := range inputs {
		tx, err := f.create(in)
		if err != nil {
			t.Fatalf("create %s: %v", in.Name, err)
		}
		ids = append(ids, tx.ID)
	}

	update := NewUpdateTransactionUseCase(f.uow)
	amount := int64(130000)
	if _, err := update.Execute(f.ctx, UpdateTransactionInput{UserID: f.userID, TransactionID: ids[1], Amount: &amount, WalletID: &second.ID}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := NewDeleteTransactionUseCase(f.uow).Execute(f.ctx, DeleteTransactionInput{UserID: f.userID, TransactionID: ids[2]}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	list, err := NewListTransactionsUseCase(f.repos.Transactions).Execute(f.ctx, ListTransactionsInput{UserID: f.userID, Limit: MaxPageSize})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	effects := map[uuid.UUID]int64{}
	for _, item := range list.Transactions {
		effects[item.Transaction.WalletID] += item.Transaction.Effect()
	}

	if got, want := f.balance(f.wallet.ID), 100000+effects[f.wallet.ID]; got != want {
		t.Errorf("main balance = %d, want %d", got, want)
	}
	if got, want := f.balance(second.ID), effects[second.ID]; got != want {
		t.Errorf("cash balance = %d, want %d", got, want)
	}
}

func TestListTransactions(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		typ := entity.TransactionTypeExpense
		if i%5 == 0 {
			typ = entity.TransactionTypeIncome
		}
		if _, err := f.create(CreateTransactionInput{Name: "Item", Type: typ, Amount: int64(100 + i), Date: base.AddDate(0, 0, i)}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	uc := NewListTransactionsUseCase(f.repos.Transactions)

	t.Run("default page size", func(t *testing.T) {
		out, err := uc.Execute(f.ctx, ListTransactionsInput{UserID: f.userID})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if out.Total != 25 || len(out.Transactions) != DefaultPageSize || out.TotalPages != 2 || out.Page != 1 {
			t.Errorf("got total=%d len=%d pages=%d page=%d", out.Total, len(out.Transactions), out.TotalPages, out.Page)
		}
		if out.Transactions[0].Wallet == nil || out.Transactions[0].Category == nil {
			t.Error("expected wallet and category to be attached")
		}
	})

	t.Run("type filter", func(t *testing.T) {
		income := entity.TransactionTypeIncome
		out, err := uc.Execute(f.ctx, ListTransactionsInput{UserID: f.userID, Type: &income})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if out.Total != 5 {
			t.Errorf("total = %d, want 5", out.Total)
		}
	})

	t.Run("date range", func(t *testing.T) {
		start := base.AddDate(0, 0, 5)
		end := base.AddDate(0, 0, 9)
		out, err := uc.Execute(f.ctx, ListTransactionsInput{UserID: f.userID, StartDate: &start, EndDate: &end})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if out.Total != 5 {
			t.Errorf("total = %d, want 5", out.Total)
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		start := base.AddDate(0, 0, 9)
		end := base
		_, err := uc.Execute(f.ctx, ListTransactionsInput{UserID: f.userID, StartDate: &start, EndDate: &end})
		if errorCode(err) != string(domainerror.ErrCodeInvalidTxnDateRange) {
			t.Errorf("got %v, want invalid date range", err)
		}
	})

	t.Run("other user sees nothing", func(t *testing.T) {
		out, err := uc.Execute(f.ctx, ListTransactionsInput{UserID: uuid.New()})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if out.Total != 0 || len(out.Transactions) != 0 {
			t.Errorf("got %d transactions", out.Total)
		}
	})
}
