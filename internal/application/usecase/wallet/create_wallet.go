// Package wallet contains wallet-related use cases.
package wallet

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// MaxNameLength is the maximum allowed length for wallet names.
const MaxNameLength = 100

// CreateWalletInput represents the input for wallet creation.
type CreateWalletInput struct {
	UserID         uuid.UUID
	Name           string
	Category       entity.WalletCategory
	InitialBalance int64
}

// CreateWalletOutput represents the output of wallet creation.
type CreateWalletOutput struct {
	Wallet *entity.Wallet
}

// CreateWalletUseCase handles wallet creation logic.
type CreateWalletUseCase struct {
	walletRepo adapter.WalletRepository
}

// NewCreateWalletUseCase creates a new CreateWalletUseCase instance.
func NewCreateWalletUseCase(walletRepo adapter.WalletRepository) *CreateWalletUseCase {
	return &CreateWalletUseCase{
		walletRepo: walletRepo,
	}
}

// Execute performs the wallet creation.
func (uc *CreateWalletUseCase) Execute(ctx context.Context, input CreateWalletInput) (*CreateWalletOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	if !input.Category.IsValid() {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeInvalidWalletCategory,
			"category must be 'bank', 'e-wallet' or 'cash'",
			domainerror.ErrInvalidWalletCategory,
		)
	}

	if input.InitialBalance < 0 {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeInvalidInitialBalance,
			"initial balance must not be negative",
			domainerror.ErrInvalidInitialBalance,
		)
	}

	wallet := entity.NewWallet(input.UserID, name, input.Category, input.InitialBalance)
	if err := uc.walletRepo.Create(ctx, wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	return &CreateWalletOutput{Wallet: wallet}, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return "", domainerror.NewWalletError(
			domainerror.ErrCodeInvalidWalletName,
			fmt.Sprintf("name must be between 1 and %d characters", MaxNameLength),
			domainerror.ErrInvalidWalletName,
		)
	}
	return name, nil
}
