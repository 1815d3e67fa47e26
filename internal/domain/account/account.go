package account

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrInsufficientFunds is returned when a debit would drive the balance negative
var ErrInsufficientFunds = errors.New("insufficient funds")

// Account is a money container whose balance is replayed from its initial balance
type Account struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Balance        decimal.Decimal `json:"balance"`
	InitialBalance decimal.Decimal `json:"initialBalance"` // Replay base, fixed at creation
}

// NewAccount creates a new account with a fresh identifier
func NewAccount(name string, initialBalance decimal.Decimal) (*Account, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if initialBalance.IsNegative() {
		return nil, shared.ValidationError{Field: "initialBalance", Reason: "must not be negative"}
	}

	return &Account{
		ID:             uuid.New(),
		Name:           name,
		Balance:        initialBalance,
		InitialBalance: initialBalance,
	}, nil
}

// Restore rebuilds an account read back from an export, keeping its identifier
func Restore(id uuid.UUID, name string, balance, initialBalance decimal.Decimal) (*Account, error) {
	if id == uuid.Nil {
		return nil, shared.ValidationError{Field: "id", Reason: "must be set"}
	}
	acc, err := NewAccount(name, initialBalance)
	if err != nil {
		return nil, err
	}
	acc.ID = id
	acc.Balance = balance
	return acc, nil
}

// Rename changes the display name of the account
func (a *Account) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	a.Name = name
	return nil
}

// Credit adds the specified amount to the account balance
func (a *Account) Credit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Debit subtracts the specified amount from the account balance
func (a *Account) Debit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if !a.CanDebit(amount) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// CanDebit checks if the account has sufficient funds for a debit
func (a *Account) CanDebit(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// SetBalance overwrites the balance, used by recalculation
func (a *Account) SetBalance(balance decimal.Decimal) {
	a.Balance = balance
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	return nil
}
