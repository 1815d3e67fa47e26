// Package importer moves ledger documents between files and the ledger service.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/personal-finance-ledger/internal/codec"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/service"
)

// FileImporter reads and writes whole ledger documents on disk
type FileImporter struct {
	logger        *slog.Logger
	service       service.LedgerService
	defaultFormat string
}

// NewFileImporter creates a file importer. defaultFormat applies to paths
// without an extension.
func NewFileImporter(logger *slog.Logger, svc service.LedgerService, defaultFormat string) *FileImporter {
	return &FileImporter{
		logger:        logger,
		service:       svc,
		defaultFormat: defaultFormat,
	}
}

// ImportFile loads the document at path. The format comes from the
// extension unless given explicitly.
func (f *FileImporter) ImportFile(ctx context.Context, path, format string) (*service.ImportResult, error) {
	c, err := f.resolve(path, format)
	if err != nil {
		return nil, err
	}

	data, err := readSource(path)
	if err != nil {
		return nil, err
	}

	f.logger.DebugContext(ctx, "importing file", "path", path, "format", c.Name(), "bytes", len(data))
	return f.service.Import(ctx, service.ImportRequest{
		Format: c.Name(),
		Source: filepath.Base(path),
		Text:   string(data),
	})
}

// ExportFile renders the whole ledger into path, replacing any existing file
func (f *FileImporter) ExportFile(ctx context.Context, path, format string) error {
	c, err := f.resolve(path, format)
	if err != nil {
		return err
	}

	out, err := f.service.Export(ctx, c.Name())
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write export %s: %w", path, err)
	}
	f.logger.DebugContext(ctx, "exported file", "path", path, "format", c.Name(), "bytes", len(out))
	return nil
}

func (f *FileImporter) resolve(path, format string) (codec.Codec, error) {
	return resolveCodec(path, format, f.defaultFormat)
}

func resolveCodec(path, format, defaultFormat string) (codec.Codec, error) {
	if format != "" {
		return codec.Lookup(format)
	}
	if filepath.Ext(path) == "" && defaultFormat != "" {
		return codec.Lookup(defaultFormat)
	}
	return codec.FromPath(path)
}

// readSource reads path, reporting a missing file as a NotFoundError
func readSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, shared.NotFoundError{Kind: shared.KindSource, ID: path}
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
