package handler

import (
	"fmt"
	"time"

	"github.com/personal-finance-ledger/internal/analytics"
	"github.com/personal-finance-ledger/internal/domain/account"
	"github.com/personal-finance-ledger/internal/domain/category"
	"github.com/personal-finance-ledger/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest represents a request to open an account
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// RenameAccountRequest represents a request to rename an account
type RenameAccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Balance        string `json:"balance"`
	InitialBalance string `json:"initial_balance"`
}

// CategoryRequest is used both to create and to update a category
type CategoryRequest struct {
	Type  string `json:"type" binding:"required,oneof=Income Expense"`
	Label string `json:"label" binding:"required"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// CreateTransactionRequest represents a request to record a transaction
type CreateTransactionRequest struct {
	Type       string          `json:"type" binding:"required,oneof=Income Expense"`
	AccountID  string          `json:"account_id" binding:"required,uuid"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date" binding:"required"`
	CategoryID string          `json:"category_id" binding:"required,uuid"`
	Note       string          `json:"note"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	AccountID  string `json:"account_id"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
	CategoryID string `json:"category_id"`
	Note       string `json:"note,omitempty"`
}

// BalanceResponse is returned by balance recalculation
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}

// NetResponse is the net difference over a date range
type NetResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Net   string `json:"net"`
}

// SummaryResponse splits a date range into income and expense totals
type SummaryResponse struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
	Count   int    `json:"count"`
}

// DateRangeQuery binds the inclusive start and end dates of analytics endpoints
type DateRangeQuery struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}

// Parse converts both bounds from YYYY-MM-DD
func (q DateRangeQuery) Parse() (time.Time, time.Time, error) {
	start, err := parseDate(q.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	end, err := parseDate(q.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	return start, end, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return d, nil
}

func mapAccountToResponse(acc *account.Account) AccountResponse {
	return AccountResponse{
		ID:             acc.ID.String(),
		Name:           acc.Name,
		Balance:        acc.Balance.String(),
		InitialBalance: acc.InitialBalance.String(),
	}
}

func mapCategoryToResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:    c.ID.String(),
		Type:  string(c.Type),
		Label: c.Label,
	}
}

func mapTransactionToResponse(t *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         t.ID.String(),
		Type:       string(t.Type),
		AccountID:  t.AccountID.String(),
		Amount:     t.Amount.String(),
		Date:       t.Date.Format(time.DateOnly),
		CategoryID: t.CategoryID.String(),
		Note:       t.Note,
	}
}

func mapSummaryToResponse(s analytics.Summary) SummaryResponse {
	return SummaryResponse{
		Start:   s.Start.Format(time.DateOnly),
		End:     s.End.Format(time.DateOnly),
		Income:  s.Income.String(),
		Expense: s.Expense.String(),
		Net:     s.Net.String(),
		Count:   s.Count,
	}
}
