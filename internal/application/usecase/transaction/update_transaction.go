// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/domain/valueobject"
)

// UpdateTransactionInput represents a partial update of a transaction.
// Nil fields keep their current value.
type UpdateTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	Name          *string
	Type          *entity.TransactionType
	Amount        *int64
	Date          *time.Time
	CategoryID    *uuid.UUID
	WalletID      *uuid.UUID
	IsRecurring   *bool
	Frequency     *valueobject.Frequency
	Description   *string
	ReceiptURL    *string
}

func (in UpdateTransactionInput) isEmpty() bool {
	return in.Name == nil && in.Type == nil && in.Amount == nil && in.Date == nil &&
		in.CategoryID == nil && in.WalletID == nil && in.IsRecurring == nil &&
		in.Frequency == nil && in.Description == nil && in.ReceiptURL == nil
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase edits a transaction and moves its wallet effect accordingly.
type UpdateTransactionUseCase struct {
	uow adapter.UnitOfWork
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(uow adapter.UnitOfWork) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		uow: uow,
	}
}

// Execute reverses the stored effect on the old wallet, then applies the patched
// effect to the new wallet. Both steps run even when the wallet is unchanged.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	if input.isEmpty() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"at least one field must be provided",
			nil,
		)
	}

	var updated *entity.Transaction
	err := uc.uow.Do(ctx, func(repos adapter.Repositories) error {
		existing, err := findOwnedTransaction(ctx, repos.Transactions, input.TransactionID, input.UserID)
		if err != nil {
			return err
		}

		next, err := applyPatch(existing, input)
		if err != nil {
			return err
		}

		if next.CategoryID != existing.CategoryID {
			if err := ensureCategoryOwned(ctx, repos.Categories, next.CategoryID, input.UserID); err != nil {
				return err
			}
		}
		if next.WalletID != existing.WalletID {
			if err := ensureWalletOwned(ctx, repos.Wallets, next.WalletID, input.UserID); err != nil {
				return err
			}
		}

		if err := repos.Wallets.AdjustBalance(ctx, existing.WalletID, input.UserID, -existing.Effect()); err != nil {
			return fmt.Errorf("failed to reverse transaction effect: %w", err)
		}
		if err := repos.Wallets.AdjustBalance(ctx, next.WalletID, input.UserID, next.Effect()); err != nil {
			return fmt.Errorf("failed to apply transaction effect: %w", err)
		}
		if err := repos.Transactions.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdateTransactionOutput{Transaction: updated}, nil
}

// applyPatch returns a validated copy of existing with the patch applied.
func applyPatch(existing *entity.Transaction, input UpdateTransactionInput) (*entity.Transaction, error) {
	next := *existing

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		next.Name = name
	}
	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
		next.Type = *input.Type
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		next.Amount = *input.Amount
	}
	if input.Date != nil {
		next.Date = input.Date.UTC()
	}
	if input.CategoryID != nil {
		next.CategoryID = *input.CategoryID
	}
	if input.WalletID != nil {
		next.WalletID = *input.WalletID
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		next.Description = *input.Description
	}
	if input.ReceiptURL != nil {
		next.ReceiptURL = *input.ReceiptURL
	}

	if input.IsRecurring != nil {
		next.IsRecurring = *input.IsRecurring
	}
	frequency := next.Frequency
	if input.Frequency != nil {
		frequency = input.Frequency
	}
	resolved, err := resolveRecurrence(next.IsRecurring, frequency)
	if err != nil {
		return nil, err
	}
	next.Frequency = resolved

	next.UpdatedAt = time.Now().UTC()
	return &next, nil
}
