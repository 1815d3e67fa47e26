// Package codec implements the import/export pipeline of the ledger: the
// RecordSet payload, the shared Import/Load steps, the visitor-based Exporter
// and the JSON, section-tagged CSV and YAML formats.
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/personal-finance-ledger/internal/domain/account"
	"github.com/personal-finance-ledger/internal/domain/category"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/domain/transaction"
)

// RecordSet is the transient payload produced by parsing and consumed by
// rendering. References between records are not checked.
type RecordSet struct {
	Accts []*account.Account
	Cats  []*category.Category
	Trans []*transaction.Transaction
}

// Accounts, Categories and Transactions let a RecordSet be exported directly.
func (r *RecordSet) Accounts() []*account.Account             { return r.Accts }
func (r *RecordSet) Categories() []*category.Category         { return r.Cats }
func (r *RecordSet) Transactions() []*transaction.Transaction { return r.Trans }

// Parser turns source text into a RecordSet
type Parser interface {
	Parse(text string) (*RecordSet, error)
}

// Loader receives parsed records. The ledger store implements it.
type Loader interface {
	Append(accts []*account.Account, cats []*category.Category, trans []*transaction.Transaction)
}

// Codec is a format able to both parse and render the whole ledger
type Codec interface {
	Parser
	Name() string
	NewRenderer() Renderer
}

// Import parses text completely and only then loads it, so a malformed
// document leaves the store untouched.
func Import(store Loader, text string, p Parser) (*RecordSet, error) {
	set, err := p.Parse(text)
	if err != nil {
		var formatErr *shared.FormatError
		if errors.As(err, &formatErr) {
			return nil, err
		}
		return nil, shared.NewFormatError(formatName(p), err)
	}
	Load(store, set)
	return set, nil
}

// Load appends accounts, categories and transactions in that order
func Load(store Loader, set *RecordSet) {
	if set == nil {
		return
	}
	store.Append(set.Accts, set.Cats, set.Trans)
}

var registry = map[string]Codec{
	"json": JSON{},
	"csv":  CSV{},
	"yaml": YAML{},
	"yml":  YAML{},
}

// Lookup returns the codec registered under name
func Lookup(name string) (Codec, error) {
	c, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, name)
	}
	return c, nil
}

// FromPath picks the codec from the file extension
func FromPath(path string) (Codec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("%w: no extension on %q", shared.ErrUnsupportedFormat, path)
	}
	return Lookup(ext)
}

// Formats lists the canonical format names
func Formats() []string {
	return []string{"json", "csv", "yaml"}
}

func formatName(p Parser) string {
	if c, ok := p.(Codec); ok {
		return c.Name()
	}
	return "unknown"
}
