// Package memory provides the in-memory ledger store, the exclusive owner of
// all account, category and transaction records.
package memory

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/domain/account"
	"github.com/personal-finance-ledger/internal/domain/category"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// LedgerStore keeps the three record collections in insertion order.
// Writers are serialised. Records are copied on the way in and on the way
// out, so stored entities are only touched under the lock.
type LedgerStore struct {
	mu           sync.RWMutex
	accounts     []*account.Account
	categories   []*category.Category
	transactions []*transaction.Transaction
}

// NewLedgerStore creates an empty store
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		accounts:     make([]*account.Account, 0),
		categories:   make([]*category.Category, 0),
		transactions: make([]*transaction.Transaction, 0),
	}
}

// Append adds whole collections in the order accounts, categories, transactions
// under a single write lock. No validation or de-duplication is done.
func (s *LedgerStore) Append(accts []*account.Account, cats []*category.Category, trans []*transaction.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = append(s.accounts, cloneAll(accts)...)
	s.categories = append(s.categories, cloneAll(cats)...)
	s.transactions = append(s.transactions, cloneAll(trans)...)
}

// AddAccount appends an account
func (s *LedgerStore) AddAccount(acc *account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, clone(acc))
}

// FindAccount returns the first account with the given id
func (s *LedgerStore) FindAccount(id uuid.UUID) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.accountIndex(id); i >= 0 {
		return clone(s.accounts[i]), nil
	}
	return nil, shared.NotFoundError{Kind: shared.KindAccount, ID: id.String()}
}

// RemoveAccount removes the first account with the given id
func (s *LedgerStore) RemoveAccount(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.accountIndex(id)
	if i < 0 {
		return false
	}
	s.accounts = slices.Delete(s.accounts, i, i+1)
	return true
}

// Accounts returns a copy of every account
func (s *LedgerStore) Accounts() []*account.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.accounts)
}

// UpdateAccount applies fn to a copy of the stored account under the write lock
// and keeps the copy only when fn succeeds.
func (s *LedgerStore) UpdateAccount(id uuid.UUID, fn func(*account.Account) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.accountIndex(id)
	if i < 0 {
		return shared.NotFoundError{Kind: shared.KindAccount, ID: id.String()}
	}
	updated := clone(s.accounts[i])
	if err := fn(updated); err != nil {
		return err
	}
	s.accounts[i] = updated
	return nil
}

// SetAccountBalance writes a recalculated balance back to the stored account
func (s *LedgerStore) SetAccountBalance(id uuid.UUID, balance decimal.Decimal) error {
	return s.UpdateAccount(id, func(acc *account.Account) error {
		acc.SetBalance(balance)
		return nil
	})
}

// AddCategory appends a category
func (s *LedgerStore) AddCategory(c *category.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, clone(c))
}

// FindCategory returns the first category with the given id
func (s *LedgerStore) FindCategory(id uuid.UUID) (*category.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.categoryIndex(id); i >= 0 {
		return clone(s.categories[i]), nil
	}
	return nil, shared.NotFoundError{Kind: shared.KindCategory, ID: id.String()}
}

// RemoveCategory removes the first category with the given id
func (s *LedgerStore) RemoveCategory(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(id)
	if i < 0 {
		return false
	}
	s.categories = slices.Delete(s.categories, i, i+1)
	return true
}

// Categories returns a copy of every category
func (s *LedgerStore) Categories() []*category.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.categories)
}

// UpdateCategory applies fn to a copy of the stored category under the write lock
// and keeps the copy only when fn succeeds.
func (s *LedgerStore) UpdateCategory(id uuid.UUID, fn func(*category.Category) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(id)
	if i < 0 {
		return shared.NotFoundError{Kind: shared.KindCategory, ID: id.String()}
	}
	updated := clone(s.categories[i])
	if err := fn(updated); err != nil {
		return err
	}
	s.categories[i] = updated
	return nil
}

// AddTransaction appends a transaction
func (s *LedgerStore) AddTransaction(t *transaction.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, clone(t))
}

// FindTransaction returns the first transaction with the given id
func (s *LedgerStore) FindTransaction(id uuid.UUID) (*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.transactionIndex(id); i >= 0 {
		return clone(s.transactions[i]), nil
	}
	return nil, shared.NotFoundError{Kind: shared.KindTransaction, ID: id.String()}
}

// RemoveTransaction removes the first transaction with the given id
func (s *LedgerStore) RemoveTransaction(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.transactionIndex(id)
	if i < 0 {
		return false
	}
	s.transactions = slices.Delete(s.transactions, i, i+1)
	return true
}

// Transactions returns a copy of every transaction
func (s *LedgerStore) Transactions() []*transaction.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.transactions)
}

// Counts returns the size of each collection
func (s *LedgerStore) Counts() (accounts, categories, transactions int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts), len(s.categories), len(s.transactions)
}

func (s *LedgerStore) accountIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.accounts, func(a *account.Account) bool { return a.ID == id })
}

func (s *LedgerStore) categoryIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.categories, func(c *category.Category) bool { return c.ID == id })
}

func (s *LedgerStore) transactionIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.transactions, func(t *transaction.Transaction) bool { return t.ID == id })
}

// clone returns a shallow copy of a record. Entity fields are values, and
// decimals are never mutated in place, so a shallow copy is independent.
func clone[T any](v *T) *T {
	c := *v
	return &c
}

func cloneAll[T any](in []*T) []*T {
	out := make([]*T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

var (
	_ account.Repository     = (*LedgerStore)(nil)
	_ category.Repository    = (*LedgerStore)(nil)
	_ transaction.Repository = (*LedgerStore)(nil)
)
