package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/personal-finance-ledger/internal/service"
)

// AnalyticsHandler serves the read-only aggregates
type AnalyticsHandler struct {
	ledger service.LedgerService
	logger *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(logger *slog.Logger, ledger service.LedgerService) *AnalyticsHandler {
	return &AnalyticsHandler{ledger: ledger, logger: logger}
}

// Net returns income minus expense between start and end inclusive
func (h *AnalyticsHandler) Net(c *gin.Context) {
	var q DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		RespondBadRequest(c, "start and end are required")
		return
	}
	start, end, err := q.Parse()
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	net := h.ledger.NetDifference(c.Request.Context(), start, end)
	RespondOK(c, NetResponse{Start: q.Start, End: q.End, Net: net.String()})
}

// Categories returns the signed total per category label
func (h *AnalyticsHandler) Categories(c *gin.Context) {
	groups := h.ledger.GroupByCategory(c.Request.Context())
	out := make(map[string]string, len(groups))
	for label, total := range groups {
		out[label] = total.String()
	}
	RespondOK(c, out)
}

// Summary returns income, expense and net totals for a date range
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	var q DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		RespondBadRequest(c, "start and end are required")
		return
	}
	start, end, err := q.Parse()
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	RespondOK(c, mapSummaryToResponse(h.ledger.Summarize(c.Request.Context(), start, end)))
}
