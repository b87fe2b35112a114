// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	"github.com/pocketledger/backend/internal/domain/valueobject"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Name        string
	Type        entity.TransactionType
	Amount      int64
	Date        time.Time
	CategoryID  uuid.UUID
	WalletID    uuid.UUID
	IsRecurring bool
	Frequency   *valueobject.Frequency
	Description string
	ReceiptURL  string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase records a transaction and applies it to its wallet.
type CreateTransactionUseCase struct {
	uow adapter.UnitOfWork
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(uow adapter.UnitOfWork) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		uow: uow,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateType(input.Type); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	frequency, err := resolveRecurrence(input.IsRecurring, input.Frequency)
	if err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.UserID,
		name,
		input.Type,
		input.Amount,
		input.Date.UTC(),
		input.CategoryID,
		input.WalletID,
		input.IsRecurring,
		frequency,
	)
	transaction.Description = input.Description
	transaction.ReceiptURL = input.ReceiptURL

	err = uc.uow.Do(ctx, func(repos adapter.Repositories) error {
		if err := ensureCategoryOwned(ctx, repos.Categories, input.CategoryID, input.UserID); err != nil {
			return err
		}
		if err := ensureWalletOwned(ctx, repos.Wallets, input.WalletID, input.UserID); err != nil {
			return err
		}

		if err := repos.Transactions.Create(ctx, transaction); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		if err := repos.Wallets.AdjustBalance(ctx, transaction.WalletID, input.UserID, transaction.Effect()); err != nil {
			return fmt.Errorf("failed to apply transaction to wallet: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateTransactionOutput{Transaction: transaction}, nil
}
