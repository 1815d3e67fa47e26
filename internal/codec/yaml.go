package codec

import (
	"errors"
	"strings"

	"github.com/personal-finance-ledger/internal/domain/shared"
	"gopkg.in/yaml.v3"
)

const formatYAML = "yaml"

// YAML is the key-value format, structurally identical to JSON
type YAML struct{}

func (YAML) Name() string { return formatYAML }

// Parse decodes the whole document before any record is built
func (YAML) Parse(text string) (*RecordSet, error) {
	if strings.TrimSpace(text) == "" {
		return nil, shared.NewFormatError(formatYAML, errors.New("empty document"))
	}

	var doc *document
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, shared.NewFormatError(formatYAML, err)
	}
	if doc == nil {
		return nil, shared.NewFormatError(formatYAML, errors.New("deserialization returned no document"))
	}

	set, err := doc.recordSet()
	if err != nil {
		return nil, shared.NewFormatError(formatYAML, err)
	}
	return set, nil
}

// NewRenderer returns a renderer producing a single YAML document
func (YAML) NewRenderer() Renderer {
	return &yamlRenderer{documentVisitor{doc: newDocument()}}
}

type yamlRenderer struct {
	documentVisitor
}

func (r *yamlRenderer) Render() (string, error) {
	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(r.doc); err != nil {
		return "", shared.NewFormatError(formatYAML, err)
	}
	if err := enc.Close(); err != nil {
		return "", shared.NewFormatError(formatYAML, err)
	}
	return sb.String(), nil
}
