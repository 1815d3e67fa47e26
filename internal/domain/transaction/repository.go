package transaction

import "github.com/google/uuid"

// Repository defines the transaction operations of the ledger store
type Repository interface {
	AddTransaction(t *Transaction)
	FindTransaction(id uuid.UUID) (*Transaction, error)
	RemoveTransaction(id uuid.UUID) bool
	Transactions() []*Transaction
}
