package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionType enumerates the two ledger entry directions.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// Transaction validation errors
var (
	ErrEmptyTransactionID     = fmt.Errorf("%w: transaction ID cannot be empty", ErrValidation)
	ErrNonPositiveAmount      = fmt.Errorf("%w: transaction amount must be positive", ErrValidation)
	ErrInvalidTransactionType = fmt.Errorf("%w: transaction type must be credit or debit", ErrValidation)
	ErrEmptyDescription       = fmt.Errorf("%w: transaction description cannot be empty", ErrValidation)
	ErrEmptyTransactionDate   = fmt.Errorf("%w: transaction date cannot be zero", ErrValidation)
)

// Transaction is a single financial ledger entry. Entries are immutable:
// they are created once and only ever read back, individually or in pages.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewTransaction creates a new Transaction with a generated ID.
// A zero date defaults to the creation time.
// Returns an error if validation fails.
func NewTransaction(amount float64, txType TransactionType, description string, date time.Time) (*Transaction, error) {
	now := time.Now().UTC()
	if date.IsZero() {
		date = now
	}

	tx := &Transaction{
		ID:          uuid.New(),
		Amount:      amount,
		Type:        txType,
		Description: description,
		Date:        date,
		CreatedAt:   now,
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	return tx, nil
}

// Validate checks if the Transaction has valid data.
// Returns an error if any field fails validation.
func (t *Transaction) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTransactionID
	}

	if t.Amount <= 0 {
		return ErrNonPositiveAmount
	}

	if t.Type != TransactionTypeCredit && t.Type != TransactionTypeDebit {
		return ErrInvalidTransactionType
	}

	if t.Description == "" {
		return ErrEmptyDescription
	}

	if t.Date.IsZero() {
		return ErrEmptyTransactionDate
	}

	return nil
}
