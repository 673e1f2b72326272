package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/qasetech/ledger-api/internal/domain"
)

// TransactionStore defines the interface for ledger transaction persistence.
// Ledger entries are append-only: there are no update or delete operations.
type TransactionStore interface {
	// Create saves a new transaction to the store.
	// Returns validation errors from the domain Transaction if data is invalid.
	Create(ctx context.Context, transaction *domain.Transaction) error

	// GetByID retrieves a transaction by its unique ID.
	// Returns ErrTransactionNotFound if the transaction does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)

	// Count returns the total number of stored transactions.
	Count(ctx context.Context) (int64, error)

	// List retrieves up to limit transactions, skipping the first offset rows,
	// ordered by date descending. An empty result is not an error.
	List(ctx context.Context, offset, limit int) ([]domain.Transaction, error)
}
