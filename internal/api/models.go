package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/qasetech/ledger-api/internal/domain"
	"github.com/qasetech/ledger-api/internal/service"
)

// Request/response structures. Responses are explicit view models so the
// storage schema never leaks onto the wire; in particular no password
// material can reach a response.

// SignupRequest defines the payload for the signup endpoint.
type SignupRequest struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,password"`
}

// SigninRequest defines the payload for the signin endpoint.
type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
// The token may instead arrive via the refresh cookie.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UserResponse is the sanitized wire representation of a user.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps a domain User onto its wire representation.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// SigninResponse is the data payload of a successful signin.
// The refresh token travels in an http-only cookie, not in the body.
type SigninResponse struct {
	UserResponse
	AccessToken string `json:"accessToken"`
}

// RefreshTokenResponse is the data payload of a successful token refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// CreateTransactionRequest defines the payload for the create endpoint.
type CreateTransactionRequest struct {
	Amount      float64   `json:"amount"      validate:"required,gt=0"`
	Type        string    `json:"type"        validate:"required,oneof=credit debit"`
	Description string    `json:"description" validate:"required"`
	Date        time.Time `json:"date"`
}

// TransactionResponse is the wire representation of a ledger transaction.
type TransactionResponse struct {
	ID          uuid.UUID `json:"id"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTransactionResponse maps a domain Transaction onto its wire representation.
func NewTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          transaction.ID,
		Amount:      transaction.Amount,
		Type:        string(transaction.Type),
		Description: transaction.Description,
		Date:        transaction.Date,
		CreatedAt:   transaction.CreatedAt,
	}
}

// PageResponse is the wire representation of one page of transactions.
type PageResponse struct {
	TotalItems   int64                 `json:"totalItems"`
	TotalPages   int64                 `json:"totalPages"`
	CurrentPage  int                   `json:"currentPage"`
	Transactions []TransactionResponse `json:"transactions"`
}

// NewPageResponse maps a service Page onto its wire representation.
func NewPageResponse(page *service.Page) PageResponse {
	transactions := make([]TransactionResponse, 0, len(page.Transactions))
	for i := range page.Transactions {
		transactions = append(transactions, NewTransactionResponse(&page.Transactions[i]))
	}

	return PageResponse{
		TotalItems:   page.TotalItems,
		TotalPages:   page.TotalPages,
		CurrentPage:  page.CurrentPage,
		Transactions: transactions,
	}
}
