package codec

import (
	"github.com/personal-finance-ledger/internal/domain/account"
	"github.com/personal-finance-ledger/internal/domain/category"
	"github.com/personal-finance-ledger/internal/domain/transaction"
)

// Visitor formats one record at a time
type Visitor interface {
	VisitAccount(a *account.Account)
	VisitCategory(c *category.Category)
	VisitTransaction(t *transaction.Transaction)
}

// Renderer is a Visitor that produces the final document once the walk is done
type Renderer interface {
	Visitor
	Render() (string, error)
}

// Source is anything holding the three record collections
type Source interface {
	Accounts() []*account.Account
	Categories() []*category.Category
	Transactions() []*transaction.Transaction
}

// Exporter owns the traversal order: accounts, then categories, then transactions
type Exporter struct {
	source Source
}

// NewExporter creates an exporter over source
func NewExporter(source Source) *Exporter {
	return &Exporter{source: source}
}

// Walk visits every record of the source once
func (e *Exporter) Walk(v Visitor) {
	for _, a := range e.source.Accounts() {
		v.VisitAccount(a)
	}
	for _, c := range e.source.Categories() {
		v.VisitCategory(c)
	}
	for _, t := range e.source.Transactions() {
		v.VisitTransaction(t)
	}
}

// Export walks source with r and returns the rendered text
func Export(source Source, r Renderer) (string, error) {
	NewExporter(source).Walk(r)
	return r.Render()
}
