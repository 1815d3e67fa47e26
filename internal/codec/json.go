package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/personal-finance-ledger/internal/domain/shared"
)

const formatJSON = "json"

// JSON is the structured-record format: one pretty-printed document with the
// Accts, Cats and Trans sequences.
type JSON struct{}

func (JSON) Name() string { return formatJSON }

// Parse decodes the whole document before any record is built
func (JSON) Parse(text string) (*RecordSet, error) {
	if strings.TrimSpace(text) == "" {
		return nil, shared.NewFormatError(formatJSON, errors.New("empty document"))
	}

	var doc *document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, shared.NewFormatError(formatJSON, err)
	}
	if doc == nil {
		return nil, shared.NewFormatError(formatJSON, errors.New("deserialization returned no document"))
	}

	set, err := doc.recordSet()
	if err != nil {
		return nil, shared.NewFormatError(formatJSON, err)
	}
	return set, nil
}

// NewRenderer returns a renderer producing indented JSON
func (JSON) NewRenderer() Renderer {
	return &jsonRenderer{documentVisitor{doc: newDocument()}}
}

type jsonRenderer struct {
	documentVisitor
}

func (r *jsonRenderer) Render() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.doc); err != nil {
		return "", shared.NewFormatError(formatJSON, err)
	}
	return buf.String(), nil
}
