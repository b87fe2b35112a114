package category

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/persistence"
	"github.com/pocketledger/backend/internal/integration/persistence/persistencetest"
)

func errorCode(err error) string {
	var coded domainerror.CodedError
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return ""
}

func TestCategoryUseCases(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.NewDB(t)
	repos := persistence.NewRepositories(db)
	userID := uuid.New()

	create := NewCreateCategoryUseCase(repos.Categories)
	mustCreate := func(name string, applicability entity.CategoryApplicability) *entity.Category {
		t.Helper()
		out, err := create.Execute(ctx, CreateCategoryInput{UserID: userID, Name: name, Applicability: applicability})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		return out.Category
	}

	salary := mustCreate("Salary", entity.CategoryApplicabilityIncome)
	food := mustCreate("Food", entity.CategoryApplicabilityExpense)
	mustCreate("Gifts", entity.CategoryApplicabilityBoth)

	t.Run("create validation", func(t *testing.T) {
		tests := []struct {
			name  string
			input CreateCategoryInput
			code  domainerror.CategoryErrorCode
		}{
			{name: "duplicate name ignores case", input: CreateCategoryInput{Name: "food", Applicability: entity.CategoryApplicabilityBoth}, code: domainerror.ErrCodeCategoryNameExists},
			{name: "blank name", input: CreateCategoryInput{Name: "", Applicability: entity.CategoryApplicabilityBoth}, code: domainerror.ErrCodeInvalidCategoryName},
			{name: "unknown applicability", input: CreateCategoryInput{Name: "Pets", Applicability: "transfer"}, code: domainerror.ErrCodeInvalidApplicability},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tt.input.UserID = userID
				_, err := create.Execute(ctx, tt.input)
				if errorCode(err) != string(tt.code) {
					t.Errorf("got %v, want %s", err, tt.code)
				}
			})
		}
	})

	t.Run("same name is allowed for another user", func(t *testing.T) {
		if _, err := create.Execute(ctx, CreateCategoryInput{UserID: uuid.New(), Name: "Food", Applicability: entity.CategoryApplicabilityBoth}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("list by applicability includes both", func(t *testing.T) {
		list := NewListCategoriesUseCase(repos.Categories)
		tests := []struct {
			applicability *entity.CategoryApplicability
			want          int
		}{
			{applicability: nil, want: 3},
			{applicability: ptr(entity.CategoryApplicabilityIncome), want: 2},
			{applicability: ptr(entity.CategoryApplicabilityExpense), want: 2},
		}
		for _, tt := range tests {
			out, err := list.Execute(ctx, ListCategoriesInput{UserID: userID, Applicability: tt.applicability})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(out.Categories) != tt.want {
				t.Errorf("applicability %v: got %d categories, want %d", tt.applicability, len(out.Categories), tt.want)
			}
		}
	})

	t.Run("update", func(t *testing.T) {
		update := NewUpdateCategoryUseCase(repos.Categories)

		name := "Groceries"
		out, err := update.Execute(ctx, UpdateCategoryInput{UserID: userID, CategoryID: food.ID, Name: &name})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if out.Category.Name != name {
			t.Errorf("name = %s, want %s", out.Category.Name, name)
		}

		// Renaming to its own name is not a conflict.
		if _, err := update.Execute(ctx, UpdateCategoryInput{UserID: userID, CategoryID: food.ID, Name: &name}); err != nil {
			t.Errorf("self rename: %v", err)
		}

		taken := "salary"
		_, err = update.Execute(ctx, UpdateCategoryInput{UserID: userID, CategoryID: food.ID, Name: &taken})
		if errorCode(err) != string(domainerror.ErrCodeCategoryNameExists) {
			t.Errorf("got %v, want name exists", err)
		}

		_, err = update.Execute(ctx, UpdateCategoryInput{UserID: uuid.New(), CategoryID: food.ID, Name: &name})
		if errorCode(err) != string(domainerror.ErrCodeCategoryNotFound) {
			t.Errorf("got %v, want not found", err)
		}
	})

	t.Run("delete refuses categories in use", func(t *testing.T) {
		wallet := entity.NewWallet(userID, "Main", entity.WalletCategoryBank, 0)
		if err := repos.Wallets.Create(ctx, wallet); err != nil {
			t.Fatalf("wallet: %v", err)
		}
		tx := entity.NewTransaction(userID, "Paycheck", entity.TransactionTypeIncome, 1000, time.Now().UTC(), salary.ID, wallet.ID, false, nil)
		if err := repos.Transactions.Create(ctx, tx); err != nil {
			t.Fatalf("transaction: %v", err)
		}

		del := NewDeleteCategoryUseCase(repos.Categories)
		err := del.Execute(ctx, DeleteCategoryInput{UserID: userID, CategoryID: salary.ID})
		if errorCode(err) != string(domainerror.ErrCodeCategoryInUse) {
			t.Fatalf("got %v, want category in use", err)
		}

		if err := repos.Transactions.Delete(ctx, tx.ID); err != nil {
			t.Fatalf("delete transaction: %v", err)
		}
		if err := del.Execute(ctx, DeleteCategoryInput{UserID: userID, CategoryID: salary.ID}); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := repos.Categories.FindByID(ctx, salary.ID); !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("category should be gone, got %v", err)
		}
	})
}

func ptr[T any](v T) *T {
	return &v
}
