package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/qasetech/ledger-api/internal/domain"
	"github.com/qasetech/ledger-api/internal/platform/logger"
	"github.com/qasetech/ledger-api/internal/store"
)

// PostgresTransactionStore implements the store.TransactionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTransactionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTransactionStore creates a new PostgreSQL implementation of
// the TransactionStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTransactionStore(db store.DBTX, logger *slog.Logger) *PostgresTransactionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTransactionStore{
		db:     db,
		logger: logger.With(slog.String("component", "transaction_store")),
	}
}

// Ensure PostgresTransactionStore implements store.TransactionStore interface
var _ store.TransactionStore = (*PostgresTransactionStore)(nil)

// Create implements store.TransactionStore.Create
// It saves a new ledger transaction to the database, handling domain validation.
func (s *PostgresTransactionStore) Create(ctx context.Context, transaction *domain.Transaction) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := transaction.Validate(); err != nil {
		log.Warn("transaction validation failed during create",
			slog.String("error", err.Error()),
			slog.String("transaction_id", transaction.ID.String()))
		return err
	}

	query := `
		INSERT INTO transactions (id, amount, type, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		transaction.ID,
		transaction.Amount,
		transaction.Type,
		transaction.Description,
		transaction.Date,
		transaction.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create transaction",
			slog.String("error", err.Error()),
			slog.String("transaction_id", transaction.ID.String()))
		return MapError(err)
	}

	log.Info("transaction created successfully",
		slog.String("transaction_id", transaction.ID.String()),
		slog.String("type", string(transaction.Type)))
	return nil
}

// GetByID implements store.TransactionStore.GetByID
// Returns store.ErrTransactionNotFound if the transaction does not exist.
func (s *PostgresTransactionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, amount, type, description, date, created_at
		FROM transactions
		WHERE id = $1
	`

	var transaction domain.Transaction
	var txType string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&transaction.ID,
		&transaction.Amount,
		&txType,
		&transaction.Description,
		&transaction.Date,
		&transaction.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("transaction not found", slog.String("transaction_id", id.String()))
			return nil, store.ErrTransactionNotFound
		}
		log.Error("failed to get transaction by ID",
			slog.String("error", err.Error()),
			slog.String("transaction_id", id.String()))
		return nil, MapError(err)
	}

	transaction.Type = domain.TransactionType(txType)

	return &transaction, nil
}

// Count implements store.TransactionStore.Count
func (s *PostgresTransactionStore) Count(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&total)
	if err != nil {
		log.Error("failed to count transactions",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	return total, nil
}

// List implements store.TransactionStore.List
// Results are ordered by date descending so the newest entries come first.
func (s *PostgresTransactionStore) List(ctx context.Context, offset, limit int) ([]domain.Transaction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, amount, type, description, date, created_at
		FROM transactions
		ORDER BY date DESC, id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list transactions",
			slog.String("error", err.Error()),
			slog.Int("offset", offset),
			slog.Int("limit", limit))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	transactions := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		var transaction domain.Transaction
		var txType string

		if err := rows.Scan(
			&transaction.ID,
			&transaction.Amount,
			&txType,
			&transaction.Description,
			&transaction.Date,
			&transaction.CreatedAt,
		); err != nil {
			log.Error("failed to scan transaction row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		transaction.Type = domain.TransactionType(txType)
		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		log.Error("failed while iterating transaction rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return transactions, nil
}
