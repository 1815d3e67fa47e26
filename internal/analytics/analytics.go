// Package analytics computes read-only aggregates over the ledger store.
package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/domain/category"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// Ledger is the part of the store the engine reads
type Ledger interface {
	Categories() []*category.Category
	Transactions() []*transaction.Transaction
}

// Summary aggregates the transactions of a date range
type Summary struct {
	Start   time.Time       `json:"start"`
	End     time.Time       `json:"end"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Count   int             `json:"count"`
}

// Engine answers aggregate queries over a Ledger
type Engine struct {
	ledger Ledger
}

// NewEngine returns an Engine reading from ledger
func NewEngine(ledger Ledger) *Engine {
	return &Engine{ledger: ledger}
}

// CalculateNet returns income minus expense for transactions dated within
// [start, end], both ends inclusive. An inverted range yields zero.
func (e *Engine) CalculateNet(start, end time.Time) decimal.Decimal {
	net := decimal.Zero
	for _, t := range e.ledger.Transactions() {
		if t.Within(start, end) {
			net = net.Add(t.Signed())
		}
	}
	return net
}

// GroupByCategory sums signed amounts per category label over all
// transactions. Transactions whose category is not in the store are grouped
// under category.UnresolvedLabel.
func (e *Engine) GroupByCategory() map[string]decimal.Decimal {
	labels := make(map[uuid.UUID]string)
	for _, c := range e.ledger.Categories() {
		if _, seen := labels[c.ID]; !seen {
			labels[c.ID] = c.Label
		}
	}

	groups := make(map[string]decimal.Decimal)
	for _, t := range e.ledger.Transactions() {
		label, ok := labels[t.CategoryID]
		if !ok {
			label = category.UnresolvedLabel
		}
		groups[label] = groups[label].Add(t.Signed())
	}
	return groups
}

// Summarize splits the range total into its income and expense parts
func (e *Engine) Summarize(start, end time.Time) Summary {
	s := Summary{
		Start:   start,
		End:     end,
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}
	for _, t := range e.ledger.Transactions() {
		if !t.Within(start, end) {
			continue
		}
		s.Count++
		if t.Type == shared.Income {
			s.Income = s.Income.Add(t.Amount)
		} else {
			s.Expense = s.Expense.Add(t.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}
