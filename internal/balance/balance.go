// Package balance replays the transaction log onto account balances.
package balance

import (
	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/domain/account"
	"github.com/personal-finance-ledger/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// Ledger is the part of the store needed to rebuild a balance
type Ledger interface {
	FindAccount(id uuid.UUID) (*account.Account, error)
	Transactions() []*transaction.Transaction
	SetAccountBalance(id uuid.UUID, balance decimal.Decimal) error
}

// Recalculator rebuilds account balances from the transaction log
type Recalculator struct {
	ledger Ledger
}

// NewRecalculator returns a Recalculator over ledger
func NewRecalculator(ledger Ledger) *Recalculator {
	return &Recalculator{ledger: ledger}
}

// Recalculate sets the account balance to its initial balance plus the signed
// amounts of its transactions and returns the new value. The result depends
// only on store contents, so repeated calls give the same balance.
func (r *Recalculator) Recalculate(accountID uuid.UUID) (decimal.Decimal, error) {
	acc, err := r.ledger.FindAccount(accountID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := acc.InitialBalance
	for _, t := range r.ledger.Transactions() {
		if t.AccountID == accountID {
			balance = balance.Add(t.Signed())
		}
	}

	if err := r.ledger.SetAccountBalance(accountID, balance); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
