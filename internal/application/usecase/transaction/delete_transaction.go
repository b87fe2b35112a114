// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

// DeleteTransactionUseCase removes a transaction and reverses its wallet effect.
type DeleteTransactionUseCase struct {
	uow adapter.UnitOfWork
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(uow adapter.UnitOfWork) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		uow: uow,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	return uc.uow.Do(ctx, func(repos adapter.Repositories) error {
		transaction, err := findOwnedTransaction(ctx, repos.Transactions, input.TransactionID, input.UserID)
		if err != nil {
			return err
		}

		if err := repos.Wallets.AdjustBalance(ctx, transaction.WalletID, input.UserID, -transaction.Effect()); err != nil {
			return fmt.Errorf("failed to reverse transaction effect: %w", err)
		}
		if err := repos.Transactions.Delete(ctx, transaction.ID); err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		return nil
	})
}
