package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/qasetech/ledger-api/internal/domain"
	"github.com/qasetech/ledger-api/internal/service"
	"github.com/qasetech/ledger-api/internal/service/auth"
)

// envelope mirrors the wire envelope for decoding in tests.
type envelope struct {
	Status string          `json:"status"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// stubAuthService returns canned results for each AuthService operation.
type stubAuthService struct {
	registerUser *domain.User
	registerErr  error

	loginUser *domain.User
	loginPair *service.TokenPair
	loginErr  error

	refreshPair *service.TokenPair
	refreshErr  error

	// lastRefreshToken records what the handler forwarded.
	lastRefreshToken string
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerUser, s.registerErr
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.User, *service.TokenPair, error) {
	return s.loginUser, s.loginPair, s.loginErr
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	s.lastRefreshToken = refreshToken
	return s.refreshPair, s.refreshErr
}

// stubTransactionService returns canned results for each TransactionService
// operation.
type stubTransactionService struct {
	created   *domain.Transaction
	createErr error

	got    *domain.Transaction
	getErr error

	page    *service.Page
	listErr error

	lastPage int
	lastSize int
}

func (s *stubTransactionService) Create(
	ctx context.Context,
	amount float64,
	txType domain.TransactionType,
	description string,
	date time.Time,
) (*domain.Transaction, error) {
	return s.created, s.createErr
}

func (s *stubTransactionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	return s.got, s.getErr
}

func (s *stubTransactionService) List(ctx context.Context, page, size int) (*service.Page, error) {
	s.lastPage = page
	s.lastSize = size
	return s.page, s.listErr
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	return &domain.User{
		ID:             uuid.New(),
		Username:       "alice",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
}

func testTransaction(t *testing.T) *domain.Transaction {
	t.Helper()
	return &domain.Transaction{
		ID:          uuid.New(),
		Amount:      50,
		Type:        domain.TransactionTypeCredit,
		Description: "Refund",
		Date:        time.Now().UTC(),
		CreatedAt:   time.Now().UTC(),
	}
}

func newTestTokenService() auth.TokenService {
	return auth.NewTestTokenService(
		"access-secret-that-is-long-enough-for-tests",
		"refresh-secret-that-is-long-enough-for-tests",
		time.Hour, 7*24*time.Hour,
		time.Now,
	)
}

func testLogger() *slog.Logger {
	return slog.Default()
}
