package codec

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/domain/account"
	"github.com/personal-finance-ledger/internal/domain/category"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

const formatCSV = "csv"

const (
	sectionAccounts     = "Accts"
	sectionCategories   = "Cats"
	sectionTransactions = "Trans"
)

// Column comments written under each section header
const (
	accountColumns     = "name,initBal"
	categoryColumns    = "type,label"
	transactionColumns = "type,acctId,amt,date,note,catId"
)

const csvDateLayout = "2006-01-02"

// CSV is the section-tagged delimited format. Fields are split on commas with
// no quoting, so a note containing a comma corrupts its line. Lines with too
// few fields are skipped and unknown type tokens default to Expense.
// Names, labels and notes are kept verbatim, surrounding spaces included.
// Only the numeric, date, id and type fields are trimmed.
type CSV struct{}

func (CSV) Name() string { return formatCSV }

func (CSV) Parse(text string) (*RecordSet, error) {
	set := &RecordSet{
		Accts: make([]*account.Account, 0),
		Cats:  make([]*category.Category, 0),
		Trans: make([]*transaction.Transaction, 0),
	}

	section := ""
	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		raw = strings.TrimSuffix(raw, "\r")
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.Trim(line, "[]")
			continue
		}
		if isColumnComment(section, line) {
			continue
		}

		parts := strings.Split(raw, ",")

		var err error
		switch section {
		case sectionAccounts:
			if len(parts) < 2 {
				continue
			}
			var acc *account.Account
			if acc, err = parseAccountLine(parts); err == nil {
				set.Accts = append(set.Accts, acc)
			}
		case sectionCategories:
			if len(parts) < 2 {
				continue
			}
			var c *category.Category
			if c, err = category.NewCategory(shared.ParseDirectionOrExpense(strings.TrimSpace(parts[0])), parts[1]); err == nil {
				set.Cats = append(set.Cats, c)
			}
		case sectionTransactions:
			if len(parts) < 6 {
				continue
			}
			var t *transaction.Transaction
			if t, err = parseTransactionLine(parts); err == nil {
				set.Trans = append(set.Trans, t)
			}
		}
		if err != nil {
			return nil, shared.NewFormatError(formatCSV, fmt.Errorf("line %d: %w", lineNo, err))
		}
	}
	return set, nil
}

func isColumnComment(section, line string) bool {
	switch section {
	case sectionAccounts:
		return strings.EqualFold(line, accountColumns)
	case sectionCategories:
		return strings.EqualFold(line, categoryColumns)
	case sectionTransactions:
		return strings.EqualFold(line, transactionColumns)
	}
	return false
}

func parseAccountLine(parts []string) (*account.Account, error) {
	initialBalance, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("initial balance %q: %w", parts[1], err)
	}
	return account.NewAccount(parts[0], initialBalance)
}

func parseTransactionLine(parts []string) (*transaction.Transaction, error) {
	typ := shared.ParseDirectionOrExpense(strings.TrimSpace(parts[0]))
	for _, j := range []int{1, 2, 3, 5} {
		parts[j] = strings.TrimSpace(parts[j])
	}
	accountID, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, fmt.Errorf("account id %q: %w", parts[1], err)
	}
	amount, err := decimal.NewFromString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("amount %q: %w", parts[2], err)
	}
	date, err := parseCSVDate(parts[3])
	if err != nil {
		return nil, err
	}
	categoryID, err := uuid.Parse(parts[5])
	if err != nil {
		return nil, fmt.Errorf("category id %q: %w", parts[5], err)
	}
	return transaction.NewTransaction(typ, accountID, amount, date, categoryID, parts[4])
}

// parseCSVDate accepts a calendar date and falls back to a full timestamp
func parseCSVDate(s string) (time.Time, error) {
	if d, err := time.Parse(csvDateLayout, s); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

// NewRenderer returns a renderer writing the three sections in order
func (CSV) NewRenderer() Renderer {
	return &csvRenderer{}
}

// csvRenderer buffers each section so that records land under their own header
type csvRenderer struct {
	accounts     strings.Builder
	categories   strings.Builder
	transactions strings.Builder
}

func (r *csvRenderer) VisitAccount(a *account.Account) {
	fmt.Fprintf(&r.accounts, "%s,%s\n", a.Name, a.InitialBalance.String())
}

func (r *csvRenderer) VisitCategory(c *category.Category) {
	fmt.Fprintf(&r.categories, "%s,%s\n", c.Type, c.Label)
}

func (r *csvRenderer) VisitTransaction(t *transaction.Transaction) {
	fmt.Fprintf(&r.transactions, "%s,%s,%s,%s,%s,%s\n",
		t.Type, t.AccountID, t.Amount.String(), t.Date.Format(csvDateLayout), t.Note, t.CategoryID)
}

func (r *csvRenderer) Render() (string, error) {
	var sb strings.Builder
	writeSection(&sb, sectionAccounts, accountColumns, r.accounts.String())
	writeSection(&sb, sectionCategories, categoryColumns, r.categories.String())
	writeSection(&sb, sectionTransactions, transactionColumns, r.transactions.String())
	return sb.String(), nil
}

func writeSection(sb *strings.Builder, name, columns, body string) {
	sb.WriteString("[" + name + "]\n")
	sb.WriteString(columns + "\n")
	sb.WriteString(body)
}
