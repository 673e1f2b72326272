package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/qasetech/ledger-api/internal/api/shared"
	"github.com/qasetech/ledger-api/internal/domain"
	"github.com/qasetech/ledger-api/internal/service"
)

// TransactionHandler handles ledger transaction API requests.
type TransactionHandler struct {
	transactionService service.TransactionService
	validator          *validator.Validate
	logger             *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler with the given dependencies.
func NewTransactionHandler(
	transactionService service.TransactionService,
	logger *slog.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		validator:          validator.New(),
		logger:             logger.With("component", "transaction_handler"),
	}
}

// CreateTransaction handles POST /transactions.
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format!")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	transaction, err := h.transactionService.Create(
		r.Context(),
		req.Amount,
		domain.TransactionType(req.Type),
		req.Description,
		req.Date,
	)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, "Transaction added!", NewTransactionResponse(transaction))
}

// GetTransactions handles GET /transactions.
// The offset query parameter carries the page number and limit the page
// size; unusable values silently degrade to the service defaults rather
// than erroring.
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	size, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.transactionService.List(r.Context(), page, size)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Retrieved transactions successfully!", NewPageResponse(result))
}

// GetTransaction handles GET /transactions/{id}.
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid transaction ID!")
		return
	}

	transaction, err := h.transactionService.GetByID(r.Context(), id)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Transaction info", NewTransactionResponse(transaction))
}
