// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/domain/valueobject"
)

const (
	// MaxNameLength is the maximum allowed length for transaction names.
	MaxNameLength = 255
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 1000
)

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionName,
			fmt.Sprintf("name must be between 1 and %d characters", MaxNameLength),
			domainerror.ErrInvalidTransactionName,
		)
	}
	return name, nil
}

func validateType(t entity.TransactionType) error {
	if !t.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return nil
}

func validateAmount(amount int64) error {
	if amount <= 0 {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return nil
}

// resolveRecurrence returns the frequency to store for the recurrence flag.
// A recurring transaction needs a known frequency; a one-off never keeps one.
func resolveRecurrence(isRecurring bool, frequency *valueobject.Frequency) (*valueobject.Frequency, error) {
	if !isRecurring {
		return nil, nil
	}
	if frequency == nil || !frequency.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidFrequency,
			"frequency must be 'daily', 'weekly', 'monthly' or 'yearly' for recurring transactions",
			domainerror.ErrInvalidFrequency,
		)
	}
	f := *frequency
	return &f, nil
}

// ensureCategoryOwned fails with a validation error unless the category exists and is the user's.
func ensureCategoryOwned(ctx context.Context, repo adapter.CategoryRepository, categoryID, userID uuid.UUID) error {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil && !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return fmt.Errorf("failed to find category: %w", err)
	}
	if err != nil || !category.BelongsTo(userID) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotOwned,
			"category does not belong to user",
			domainerror.ErrCategoryNotOwnedByUser,
		)
	}
	return nil
}

// ensureWalletOwned fails with a validation error unless the wallet exists and is the user's.
func ensureWalletOwned(ctx context.Context, repo adapter.WalletRepository, walletID, userID uuid.UUID) error {
	wallet, err := repo.FindByID(ctx, walletID)
	if err != nil && !errors.Is(err, domainerror.ErrWalletNotFound) {
		return fmt.Errorf("failed to find wallet: %w", err)
	}
	if err != nil || !wallet.BelongsTo(userID) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnWalletNotOwned,
			"wallet does not belong to user",
			domainerror.ErrWalletNotOwnedByUser,
		)
	}
	return nil
}

// findOwnedTransaction loads a transaction and hides transactions owned by someone else.
func findOwnedTransaction(ctx context.Context, repo adapter.TransactionRepository, id, userID uuid.UUID) (*entity.Transaction, error) {
	transaction, err := repo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, domainerror.ErrTransactionNotFound) {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if err != nil || transaction.UserID != userID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	return transaction, nil
}
