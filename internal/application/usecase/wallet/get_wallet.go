// Package wallet contains wallet-related use cases.
package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// GetWalletInput represents the input for fetching a wallet.
type GetWalletInput struct {
	UserID   uuid.UUID
	WalletID uuid.UUID
}

// GetWalletOutput represents the output of fetching a wallet.
type GetWalletOutput struct {
	Wallet *entity.Wallet
}

// GetWalletUseCase handles fetching a single wallet.
type GetWalletUseCase struct {
	walletRepo adapter.WalletRepository
}

// NewGetWalletUseCase creates a new GetWalletUseCase instance.
func NewGetWalletUseCase(walletRepo adapter.WalletRepository) *GetWalletUseCase {
	return &GetWalletUseCase{
		walletRepo: walletRepo,
	}
}

// Execute fetches the wallet if it belongs to the user.
func (uc *GetWalletUseCase) Execute(ctx context.Context, input GetWalletInput) (*GetWalletOutput, error) {
	wallet, err := findOwnedWallet(ctx, uc.walletRepo, input.WalletID, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetWalletOutput{Wallet: wallet}, nil
}

// findOwnedWallet loads a wallet and hides wallets owned by someone else.
func findOwnedWallet(ctx context.Context, repo adapter.WalletRepository, walletID, userID uuid.UUID) (*entity.Wallet, error) {
	wallet, err := repo.FindByID(ctx, walletID)
	if err != nil {
		if errors.Is(err, domainerror.ErrWalletNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}
	if !wallet.BelongsTo(userID) {
		return nil, notFound()
	}
	return wallet, nil
}

func notFound() error {
	return domainerror.NewWalletError(
		domainerror.ErrCodeWalletNotFound,
		"wallet not found",
		domainerror.ErrWalletNotFound,
	)
}
