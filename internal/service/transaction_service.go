package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/qasetech/ledger-api/internal/domain"
	"github.com/qasetech/ledger-api/internal/store"
)

// Pagination defaults applied when the caller supplies unusable values.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Page is the computed result of a paginated listing. It is recomputed per
// request and never persisted.
type Page struct {
	TotalItems   int64                `json:"totalItems"`
	TotalPages   int64                `json:"totalPages"`
	CurrentPage  int                  `json:"currentPage"`
	Transactions []domain.Transaction `json:"transactions"`
}

// TransactionService provides creation and retrieval of ledger transactions.
type TransactionService interface {
	// Create persists a new transaction. A zero date defaults to the
	// creation time. Validation beyond the domain invariants is the
	// responsibility of the API layer.
	Create(ctx context.Context, amount float64, txType domain.TransactionType, description string, date time.Time) (*domain.Transaction, error)

	// GetByID retrieves a single transaction.
	// Returns store.ErrTransactionNotFound if no record exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)

	// List returns one page of transactions with page metadata.
	// A page below 1 defaults to 1 and a size below 1 defaults to 10;
	// malformed pagination never errors, it degrades to sane defaults.
	List(ctx context.Context, page, size int) (*Page, error)
}

// TransactionServiceImpl implements the TransactionService interface.
type TransactionServiceImpl struct {
	transactionStore store.TransactionStore
	logger           *slog.Logger
}

// Ensure TransactionServiceImpl implements TransactionService interface
var _ TransactionService = (*TransactionServiceImpl)(nil)

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactionStore store.TransactionStore, logger *slog.Logger) *TransactionServiceImpl {
	return &TransactionServiceImpl{
		transactionStore: transactionStore,
		logger:           logger.With("component", "transaction_service"),
	}
}

// Create persists a new ledger transaction.
func (s *TransactionServiceImpl) Create(
	ctx context.Context,
	amount float64,
	txType domain.TransactionType,
	description string,
	date time.Time,
) (*domain.Transaction, error) {
	transaction, err := domain.NewTransaction(amount, txType, description, date)
	if err != nil {
		s.logger.Debug("invalid transaction data",
			"error", err)
		return nil, err
	}

	if err := s.transactionStore.Create(ctx, transaction); err != nil {
		s.logger.Error("failed to create transaction",
			"error", err,
			"transaction_id", transaction.ID)
		return nil, ErrInternal
	}

	s.logger.Info("transaction created",
		"transaction_id", transaction.ID,
		"type", transaction.Type,
		"amount", transaction.Amount)

	return transaction, nil
}

// GetByID retrieves a single transaction by its ID.
func (s *TransactionServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	transaction, err := s.transactionStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTransactionNotFound) {
			s.logger.Debug("transaction not found",
				"transaction_id", id)
			return nil, store.ErrTransactionNotFound
		}
		s.logger.Error("failed to get transaction",
			"error", err,
			"transaction_id", id)
		return nil, ErrInternal
	}

	return transaction, nil
}

// List returns one page of transactions together with page metadata.
// The total count and the page slice come from two independent queries;
// they can disagree under concurrent writes, an accepted approximation
// for a ledger display.
func (s *TransactionServiceImpl) List(ctx context.Context, page, size int) (*Page, error) {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}

	offset := (page - 1) * size

	totalItems, err := s.transactionStore.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count transactions",
			"error", err)
		return nil, ErrInternal
	}

	transactions, err := s.transactionStore.List(ctx, offset, size)
	if err != nil {
		s.logger.Error("failed to list transactions",
			"error", err,
			"page", page,
			"size", size)
		return nil, ErrInternal
	}

	totalPages := (totalItems + int64(size) - 1) / int64(size)

	return &Page{
		TotalItems:   totalItems,
		TotalPages:   totalPages,
		CurrentPage:  page,
		Transactions: transactions,
	}, nil
}
