package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/service"
)

// AccountHandler handles HTTP requests for account operations
type AccountHandler struct {
	ledger service.LedgerService
	logger *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, ledger service.LedgerService) *AccountHandler {
	return &AccountHandler{
		ledger: ledger,
		logger: logger,
	}
}

// Create opens an account with the given initial balance
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	acc, err := h.ledger.AddAccount(c.Request.Context(), req.Name, req.InitialBalance)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondCreated(c, mapAccountToResponse(acc))
}

// List returns every account in store order
func (h *AccountHandler) List(c *gin.Context) {
	accounts := h.ledger.ListAccounts(c.Request.Context())
	out := make([]AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, mapAccountToResponse(acc))
	}
	RespondOK(c, out)
}

// GetByID retrieves an account by its ID, returning 404 if not found
func (h *AccountHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "account")
	if !ok {
		return
	}

	acc, err := h.ledger.GetAccount(c.Request.Context(), id)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondOK(c, mapAccountToResponse(acc))
}

// Rename changes the display name of an account
func (h *AccountHandler) Rename(c *gin.Context) {
	id, ok := parseID(c, "account")
	if !ok {
		return
	}

	var req RenameAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	acc, err := h.ledger.RenameAccount(c.Request.Context(), id, req.Name)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondOK(c, mapAccountToResponse(acc))
}

// Delete removes an account. Its transactions are kept.
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "account")
	if !ok {
		return
	}

	if err := h.ledger.RemoveAccount(c.Request.Context(), id); err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondNoContent(c)
}

// Recalculate rebuilds the balance from the initial balance and the transaction log
func (h *AccountHandler) Recalculate(c *gin.Context) {
	id, ok := parseID(c, "account")
	if !ok {
		return
	}

	bal, err := h.ledger.RecalculateBalance(c.Request.Context(), id)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondOK(c, BalanceResponse{AccountID: id.String(), Balance: bal.String()})
}

// parseID reads the :id path parameter and answers 400 when it is not a UUID
func parseID(c *gin.Context, kind string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid "+kind+" ID")
		return uuid.Nil, false
	}
	return id, true
}
