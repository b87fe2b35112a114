// Package wallet contains wallet-related use cases.
package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// UpdateWalletInput represents the input for wallet update.
// The balance is not editable; it only moves through transactions and goal transfers.
type UpdateWalletInput struct {
	UserID   uuid.UUID
	WalletID uuid.UUID
	Name     *string
	Category *entity.WalletCategory
}

// UpdateWalletOutput represents the output of wallet update.
type UpdateWalletOutput struct {
	Wallet *entity.Wallet
}

// UpdateWalletUseCase handles wallet update logic.
type UpdateWalletUseCase struct {
	walletRepo adapter.WalletRepository
}

// NewUpdateWalletUseCase creates a new UpdateWalletUseCase instance.
func NewUpdateWalletUseCase(walletRepo adapter.WalletRepository) *UpdateWalletUseCase {
	return &UpdateWalletUseCase{
		walletRepo: walletRepo,
	}
}

// Execute performs the wallet update.
func (uc *UpdateWalletUseCase) Execute(ctx context.Context, input UpdateWalletInput) (*UpdateWalletOutput, error) {
	if input.Name == nil && input.Category == nil {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeMissingWalletFields,
			"at least one field must be provided",
			nil,
		)
	}

	wallet, err := findOwnedWallet(ctx, uc.walletRepo, input.WalletID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		wallet.Name = name
	}

	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, domainerror.NewWalletError(
				domainerror.ErrCodeInvalidWalletCategory,
				"category must be 'bank', 'e-wallet' or 'cash'",
				domainerror.ErrInvalidWalletCategory,
			)
		}
		wallet.Category = *input.Category
	}

	wallet.UpdatedAt = time.Now().UTC()
	if err := uc.walletRepo.Update(ctx, wallet); err != nil {
		return nil, fmt.Errorf("failed to update wallet: %w", err)
	}

	return &UpdateWalletOutput{Wallet: wallet}, nil
}
