package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense movement. The amount is always
// positive; Type carries the direction. AccountID and CategoryID are weak
// references resolved through the ledger store.
type Transaction struct {
	ID         uuid.UUID        `json:"id"`
	Type       shared.Direction `json:"type"`
	AccountID  uuid.UUID        `json:"accountId"`
	Amount     decimal.Decimal  `json:"amount"`
	Date       time.Time        `json:"date"`
	CategoryID uuid.UUID        `json:"categoryId"`
	Note       string           `json:"note,omitempty"`
}

// NewTransaction creates a new transaction with a fresh identifier
func NewTransaction(typ shared.Direction, accountID uuid.UUID, amount decimal.Decimal, date time.Time, categoryID uuid.UUID, note string) (*Transaction, error) {
	if !typ.Valid() {
		return nil, shared.ValidationError{Field: "type", Reason: "must be Income or Expense"}
	}
	if !amount.IsPositive() {
		return nil, shared.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	return &Transaction{
		ID:         uuid.New(),
		Type:       typ,
		AccountID:  accountID,
		Amount:     amount,
		Date:       date,
		CategoryID: categoryID,
		Note:       note,
	}, nil
}

// Restore rebuilds a transaction read back from an export, keeping its identifier
func Restore(id uuid.UUID, typ shared.Direction, accountID uuid.UUID, amount decimal.Decimal, date time.Time, categoryID uuid.UUID, note string) (*Transaction, error) {
	if id == uuid.Nil {
		return nil, shared.ValidationError{Field: "id", Reason: "must be set"}
	}
	t, err := NewTransaction(typ, accountID, amount, date, categoryID, note)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return t, nil
}

// Signed returns the amount with the sign implied by the direction
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == shared.Income {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Within reports whether the transaction date lies in [start, end]
func (t *Transaction) Within(start, end time.Time) bool {
	return !t.Date.Before(start) && !t.Date.After(end)
}
