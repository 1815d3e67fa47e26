package shared

import "strings"

// Direction carries the sign of money flow for categories and transactions
type Direction string

const (
	Income  Direction = "Income"
	Expense Direction = "Expense"
)

// ParseDirection matches a type token case-insensitively
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	}
	return "", ErrInvalidDirection
}

// ParseDirectionOrExpense falls back to Expense for unrecognised tokens
func ParseDirectionOrExpense(s string) Direction {
	d, err := ParseDirection(s)
	if err != nil {
		return Expense
	}
	return d
}

// Valid reports whether d is one of the known directions
func (d Direction) Valid() bool {
	return d == Income || d == Expense
}

// RecordKind names the three record collections of the ledger
type RecordKind string

const (
	KindAccount     RecordKind = "account"
	KindCategory    RecordKind = "category"
	KindTransaction RecordKind = "transaction"
	KindSource      RecordKind = "source"
)

// EventKind defines the ledger events published after imports
type EventKind string

const (
	EventLedgerImported EventKind = "LEDGER_IMPORTED"
	EventImportRejected EventKind = "IMPORT_REJECTED"
)
