package category

import "github.com/google/uuid"

// Repository defines the category operations of the ledger store
type Repository interface {
	AddCategory(c *Category)
	FindCategory(id uuid.UUID) (*Category, error)
	RemoveCategory(id uuid.UUID) bool
	Categories() []*Category
	UpdateCategory(id uuid.UUID, fn func(*Category) error) error
}
