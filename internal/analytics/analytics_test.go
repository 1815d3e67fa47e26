package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/data/memory"
	"github.com/personal-finance-ledger/internal/domain/account"
	"github.com/personal-finance-ledger/internal/domain/category"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/domain/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

// seededStore holds a January salary, a January food expense and a February salary
func seededStore(t *testing.T) (*memory.LedgerStore, *category.Category, *category.Category) {
	t.Helper()

	store := memory.NewLedgerStore()
	acc, err := account.NewAccount("Main", decimal.NewFromInt(1000))
	require.NoError(t, err)
	salary, err := category.NewCategory(shared.Income, "Salary")
	require.NoError(t, err)
	food, err := category.NewCategory(shared.Expense, "Food")
	require.NoError(t, err)

	add := func(typ shared.Direction, amount int64, date string, c *category.Category) {
		tr, err := transaction.NewTransaction(typ, acc.ID, decimal.NewFromInt(amount), day(date), c.ID, "")
		require.NoError(t, err)
		store.AddTransaction(tr)
	}

	store.AddAccount(acc)
	store.AddCategory(salary)
	store.AddCategory(food)
	add(shared.Income, 500, "2023-01-10", salary)
	add(shared.Expense, 200, "2023-01-31", food)
	add(shared.Income, 300, "2023-02-01", salary)
	return store, salary, food
}

func TestEngine_CalculateNet(t *testing.T) {
	store, _, _ := seededStore(t)
	engine := NewEngine(store)

	tests := []struct {
		name     string
		start    string
		end      string
		expected string
	}{
		{name: "January", start: "2023-01-01", end: "2023-01-31", expected: "300"},
		{name: "InclusiveStart", start: "2023-01-10", end: "2023-01-10", expected: "500"},
		{name: "InclusiveEnd", start: "2023-01-31", end: "2023-02-01", expected: "100"},
		{name: "Empty", start: "2022-01-01", end: "2022-12-31", expected: "0"},
		{name: "Inverted", start: "2023-02-01", end: "2023-01-01", expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := engine.CalculateNet(day(tt.start), day(tt.end))
			assert.Equal(t, tt.expected, net.String())
		})
	}
}

func TestEngine_GroupByCategory(t *testing.T) {
	t.Run("SumsPerLabel", func(t *testing.T) {
		store, _, _ := seededStore(t)
		groups := NewEngine(store).GroupByCategory()

		require.Len(t, groups, 2)
		assert.Equal(t, "800", groups["Salary"].String())
		assert.Equal(t, "-200", groups["Food"].String())
	})

	t.Run("UnresolvedCategory", func(t *testing.T) {
		store, _, food := seededStore(t)
		require.True(t, store.RemoveCategory(food.ID))

		orphan, err := transaction.NewTransaction(shared.Expense, uuid.New(), decimal.NewFromInt(5), day("2023-03-01"), uuid.New(), "")
		require.NoError(t, err)
		store.AddTransaction(orphan)

		groups := NewEngine(store).GroupByCategory()
		assert.Equal(t, "-205", groups[category.UnresolvedLabel].String())
		_, hasFood := groups["Food"]
		assert.False(t, hasFood)
	})

	t.Run("EmptyStore", func(t *testing.T) {
		groups := NewEngine(memory.NewLedgerStore()).GroupByCategory()
		assert.Empty(t, groups)
	})
}

func TestEngine_Summarize(t *testing.T) {
	store, _, _ := seededStore(t)

	s := NewEngine(store).Summarize(day("2023-01-01"), day("2023-12-31"))

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, "800", s.Income.String())
	assert.Equal(t, "200", s.Expense.String())
	assert.Equal(t, "600", s.Net.String())
}
