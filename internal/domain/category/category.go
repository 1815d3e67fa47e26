package category

import (
	"strings"

	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/domain/shared"
)

// UnresolvedLabel groups transactions whose category id does not resolve
const UnresolvedLabel = "none"

// Category labels transactions as a kind of income or expense
type Category struct {
	ID    uuid.UUID        `json:"id"`
	Type  shared.Direction `json:"type"`
	Label string           `json:"label"`
}

// NewCategory creates a new category with a fresh identifier
func NewCategory(typ shared.Direction, label string) (*Category, error) {
	if err := validate(typ, label); err != nil {
		return nil, err
	}
	return &Category{
		ID:    uuid.New(),
		Type:  typ,
		Label: label,
	}, nil
}

// Restore rebuilds a category read back from an export, keeping its identifier
func Restore(id uuid.UUID, typ shared.Direction, label string) (*Category, error) {
	if id == uuid.Nil {
		return nil, shared.ValidationError{Field: "id", Reason: "must be set"}
	}
	c, err := NewCategory(typ, label)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

// Update replaces the type and label together
func (c *Category) Update(typ shared.Direction, label string) error {
	if err := validate(typ, label); err != nil {
		return err
	}
	c.Type = typ
	c.Label = label
	return nil
}

func validate(typ shared.Direction, label string) error {
	if !typ.Valid() {
		return shared.ValidationError{Field: "type", Reason: "must be Income or Expense"}
	}
	if strings.TrimSpace(label) == "" {
		return shared.ValidationError{Field: "label", Reason: "cannot be empty"}
	}
	return nil
}
