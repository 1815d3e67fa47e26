package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/service"
)

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	ledger service.LedgerService
	logger *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(logger *slog.Logger, ledger service.LedgerService) *CategoryHandler {
	return &CategoryHandler{ledger: ledger, logger: logger}
}

// Create adds a category with a type and a label
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cat, err := h.ledger.AddCategory(c.Request.Context(), shared.Direction(req.Type), req.Label)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondCreated(c, mapCategoryToResponse(cat))
}

// List returns every category in store order
func (h *CategoryHandler) List(c *gin.Context) {
	categories := h.ledger.ListCategories(c.Request.Context())
	out := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, mapCategoryToResponse(cat))
	}
	RespondOK(c, out)
}

// Update replaces both the type and the label
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "category")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cat, err := h.ledger.UpdateCategory(c.Request.Context(), id, shared.Direction(req.Type), req.Label)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondOK(c, mapCategoryToResponse(cat))
}

// Delete removes a category. Transactions keep the dangling reference.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "category")
	if !ok {
		return
	}

	if err := h.ledger.RemoveCategory(c.Request.Context(), id); err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondNoContent(c)
}
