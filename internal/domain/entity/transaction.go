// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/domain/valueobject"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the transaction type is income or expense.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// AutoGeneratedSuffix marks the description of occurrences created by the recurring worker.
const AutoGeneratedSuffix = " (auto-generated)"

// Transaction represents a financial transaction against a single wallet.
// A recurring transaction with no TemplateID is a template; one with a TemplateID
// is an occurrence generated from that template.
type Transaction struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Type            TransactionType
	Amount          int64 // Always positive, smallest currency unit
	Date            time.Time
	CategoryID      uuid.UUID
	WalletID        uuid.UUID
	IsRecurring     bool
	Frequency       *valueobject.Frequency
	TemplateID      *uuid.UUID
	LastProcessedAt *time.Time
	Description     string
	ReceiptURL      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// NewTransaction creates a new Transaction entity.
// A non-recurring transaction never carries a frequency.
func NewTransaction(
	userID uuid.UUID,
	name string,
	transactionType TransactionType,
	amount int64,
	date time.Time,
	categoryID uuid.UUID,
	walletID uuid.UUID,
	isRecurring bool,
	frequency *valueobject.Frequency,
) *Transaction {
	now := time.Now().UTC()
	if !isRecurring {
		frequency = nil
	}

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Type:        transactionType,
		Amount:      amount,
		Date:        date,
		CategoryID:  categoryID,
		WalletID:    walletID,
		IsRecurring: isRecurring,
		Frequency:   frequency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Effect returns the signed change this transaction applies to its wallet balance.
func (t *Transaction) Effect() int64 {
	return SignedEffect(t.Type, t.Amount)
}

// IsTemplate reports whether the transaction is a recurring template.
func (t *Transaction) IsTemplate() bool {
	return t.IsRecurring && t.Frequency != nil && t.TemplateID == nil
}

// SignedEffect returns +amount for income and -amount for expense.
func SignedEffect(transactionType TransactionType, amount int64) int64 {
	if transactionType == TransactionTypeIncome {
		return amount
	}
	return -amount
}

// TransactionWithRefs represents a transaction with its category and wallet.
type TransactionWithRefs struct {
	Transaction *Transaction
	Category    *Category
	Wallet      *Wallet
}
