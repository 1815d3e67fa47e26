package account

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines the account operations of the ledger store
type Repository interface {
	AddAccount(acc *Account)
	FindAccount(id uuid.UUID) (*Account, error)
	RemoveAccount(id uuid.UUID) bool
	Accounts() []*Account
	UpdateAccount(id uuid.UUID, fn func(*Account) error) error

	// SetAccountBalance writes a recalculated balance back to the stored account
	SetAccountBalance(id uuid.UUID, balance decimal.Decimal) error
}
