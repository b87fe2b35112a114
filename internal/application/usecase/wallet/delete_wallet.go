// Package wallet contains wallet-related use cases.
package wallet

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
)

// DeleteWalletInput represents the input for wallet deletion.
type DeleteWalletInput struct {
	UserID   uuid.UUID
	WalletID uuid.UUID
}

// DeleteWalletUseCase handles wallet deletion.
// The wallet's transactions go with it; goal ledger entries stay but lose their wallet.
type DeleteWalletUseCase struct {
	uow adapter.UnitOfWork
}

// NewDeleteWalletUseCase creates a new DeleteWalletUseCase instance.
func NewDeleteWalletUseCase(uow adapter.UnitOfWork) *DeleteWalletUseCase {
	return &DeleteWalletUseCase{
		uow: uow,
	}
}

// Execute performs the wallet deletion.
func (uc *DeleteWalletUseCase) Execute(ctx context.Context, input DeleteWalletInput) error {
	return uc.uow.Do(ctx, func(repos adapter.Repositories) error {
		if _, err := findOwnedWallet(ctx, repos.Wallets, input.WalletID, input.UserID); err != nil {
			return err
		}

		if err := repos.Transactions.DeleteByWalletID(ctx, input.WalletID); err != nil {
			return fmt.Errorf("failed to delete wallet transactions: %w", err)
		}
		if err := repos.GoalTransactions.DetachWallet(ctx, input.WalletID); err != nil {
			return fmt.Errorf("failed to detach goal transactions: %w", err)
		}
		if err := repos.Wallets.Delete(ctx, input.WalletID); err != nil {
			return fmt.Errorf("failed to delete wallet: %w", err)
		}
		return nil
	})
}
