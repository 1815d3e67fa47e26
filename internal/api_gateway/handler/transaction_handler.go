package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/service"
)

// TransactionHandler handles HTTP requests for transaction operations
type TransactionHandler struct {
	ledger service.LedgerService
	logger *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, ledger service.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger, logger: logger}
}

// Create records a transaction. Account balances are only changed by recalculation.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		RespondBadRequest(c, "Invalid date: "+err.Error())
		return
	}

	t, err := h.ledger.AddTransaction(c.Request.Context(), service.TransactionInput{
		Type:       shared.Direction(req.Type),
		AccountID:  uuid.MustParse(req.AccountID),
		Amount:     req.Amount,
		Date:       date,
		CategoryID: uuid.MustParse(req.CategoryID),
		Note:       req.Note,
	})
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondCreated(c, mapTransactionToResponse(t))
}

// List returns transactions in store order, optionally for one account
func (h *TransactionHandler) List(c *gin.Context) {
	var accountFilter uuid.UUID
	if raw := c.Query("account_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondBadRequest(c, "Invalid account ID")
			return
		}
		accountFilter = id
	}

	transactions := h.ledger.ListTransactions(c.Request.Context())
	out := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		if accountFilter != uuid.Nil && t.AccountID != accountFilter {
			continue
		}
		out = append(out, mapTransactionToResponse(t))
	}
	RespondOK(c, out)
}

// GetByID retrieves a transaction by its ID, returning 404 if not found
func (h *TransactionHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "transaction")
	if !ok {
		return
	}

	t, err := h.ledger.GetTransaction(c.Request.Context(), id)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondOK(c, mapTransactionToResponse(t))
}

// Delete removes a transaction, returning 404 if not found
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "transaction")
	if !ok {
		return
	}

	if err := h.ledger.RemoveTransaction(c.Request.Context(), id); err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondNoContent(c)
}
