package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/personal-finance-ledger/internal/api_gateway/middleware"
	"github.com/personal-finance-ledger/internal/codec"
	"github.com/personal-finance-ledger/internal/service"
)

// maxImportBytes caps the request body of an import
const maxImportBytes = 10 << 20

var contentTypes = map[string]string{
	"json": "application/json; charset=utf-8",
	"csv":  "text/csv; charset=utf-8",
	"yaml": "application/yaml; charset=utf-8",
}

// DataHandler moves whole ledger documents in and out over HTTP
type DataHandler struct {
	ledger service.LedgerService
	logger *slog.Logger
}

// NewDataHandler creates a new data handler
func NewDataHandler(logger *slog.Logger, ledger service.LedgerService) *DataHandler {
	return &DataHandler{ledger: ledger, logger: logger}
}

// Import parses the raw request body in the format named by the path.
// The optional source query parameter names the document in events.
func (h *DataHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)
	body, err := c.GetRawData()
	if err != nil {
		RespondBadRequest(c, "Failed to read request body: "+err.Error())
		return
	}

	result, err := h.ledger.Import(c.Request.Context(), service.ImportRequest{
		Format:        c.Param("format"),
		Source:        c.DefaultQuery("source", "http"),
		Text:          string(body),
		CorrelationID: middleware.CorrelationIDFromContext(c.Request.Context()),
	})
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	RespondCreated(c, result)
}

// Export renders the whole ledger as a raw document
func (h *DataHandler) Export(c *gin.Context) {
	cd, err := codec.Lookup(c.Param("format"))
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	out, err := h.ledger.Export(c.Request.Context(), cd.Name())
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, contentTypes[cd.Name()], []byte(out))
}
