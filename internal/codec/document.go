package codec

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/domain/account"
	"github.com/personal-finance-ledger/internal/domain/category"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// document is the shape shared by the JSON and YAML formats
type document struct {
	Accts []accountRecord     `json:"Accts" yaml:"Accts"`
	Cats  []categoryRecord    `json:"Cats" yaml:"Cats"`
	Trans []transactionRecord `json:"Trans" yaml:"Trans"`
}

type accountRecord struct {
	ID             uuid.UUID       `json:"id" yaml:"id"`
	Name           string          `json:"name" yaml:"name"`
	Balance        decimal.Decimal `json:"balance" yaml:"balance"`
	InitialBalance decimal.Decimal `json:"initialBalance" yaml:"initialBalance"`
}

type categoryRecord struct {
	ID    uuid.UUID        `json:"id" yaml:"id"`
	Type  shared.Direction `json:"type" yaml:"type"`
	Label string           `json:"label" yaml:"label"`
}

type transactionRecord struct {
	ID         uuid.UUID        `json:"id" yaml:"id"`
	Type       shared.Direction `json:"type" yaml:"type"`
	AccountID  uuid.UUID        `json:"accountId" yaml:"accountId"`
	Amount     decimal.Decimal  `json:"amount" yaml:"amount"`
	Date       time.Time        `json:"date" yaml:"date"`
	CategoryID uuid.UUID        `json:"categoryId" yaml:"categoryId"`
	Note       string           `json:"note" yaml:"note"`
}

func newDocument() *document {
	return &document{
		Accts: make([]accountRecord, 0),
		Cats:  make([]categoryRecord, 0),
		Trans: make([]transactionRecord, 0),
	}
}

// recordSet rebuilds validated entities from the decoded document
func (d *document) recordSet() (*RecordSet, error) {
	set := &RecordSet{
		Accts: make([]*account.Account, 0, len(d.Accts)),
		Cats:  make([]*category.Category, 0, len(d.Cats)),
		Trans: make([]*transaction.Transaction, 0, len(d.Trans)),
	}

	for i, r := range d.Accts {
		acc, err := account.Restore(r.ID, r.Name, r.Balance, r.InitialBalance)
		if err != nil {
			return nil, fmt.Errorf("Accts[%d]: %w", i, err)
		}
		set.Accts = append(set.Accts, acc)
	}
	for i, r := range d.Cats {
		c, err := category.Restore(r.ID, r.Type, r.Label)
		if err != nil {
			return nil, fmt.Errorf("Cats[%d]: %w", i, err)
		}
		set.Cats = append(set.Cats, c)
	}
	for i, r := range d.Trans {
		t, err := transaction.Restore(r.ID, r.Type, r.AccountID, r.Amount, r.Date, r.CategoryID, r.Note)
		if err != nil {
			return nil, fmt.Errorf("Trans[%d]: %w", i, err)
		}
		set.Trans = append(set.Trans, t)
	}
	return set, nil
}

// documentVisitor collects visited records into a document
type documentVisitor struct {
	doc *document
}

func (v *documentVisitor) VisitAccount(a *account.Account) {
	v.doc.Accts = append(v.doc.Accts, accountRecord{
		ID:             a.ID,
		Name:           a.Name,
		Balance:        a.Balance,
		InitialBalance: a.InitialBalance,
	})
}

func (v *documentVisitor) VisitCategory(c *category.Category) {
	v.doc.Cats = append(v.doc.Cats, categoryRecord{
		ID:    c.ID,
		Type:  c.Type,
		Label: c.Label,
	})
}

func (v *documentVisitor) VisitTransaction(t *transaction.Transaction) {
	v.doc.Trans = append(v.doc.Trans, transactionRecord{
		ID:         t.ID,
		Type:       t.Type,
		AccountID:  t.AccountID,
		Amount:     t.Amount,
		Date:       t.Date,
		CategoryID: t.CategoryID,
		Note:       t.Note,
	})
}
