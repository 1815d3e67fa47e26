package importer

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/personal-finance-ledger/internal/codec"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/service"
)

// FileResult is the outcome of one file of a batch
type FileResult struct {
	Path   string
	Result *service.ImportResult
	Err    error
}

type parsed struct {
	req service.ImportRequest
	set *codec.RecordSet
	err error
}

// BatchImporter parses files concurrently on a worker pool, then loads them
// one at a time in input order so the store keeps a single writer.
type BatchImporter struct {
	pool          *ants.Pool
	logger        *slog.Logger
	service       service.LedgerService
	defaultFormat string
}

// NewBatchImporter creates a batch importer with at most size concurrent parses
func NewBatchImporter(logger *slog.Logger, svc service.LedgerService, size int, defaultFormat string) (*BatchImporter, error) {
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}

	return &BatchImporter{
		pool:          pool,
		logger:        logger,
		service:       svc,
		defaultFormat: defaultFormat,
	}, nil
}

// ImportFiles imports every path. A failing file does not stop the others and
// files loaded before a failure stay loaded.
func (b *BatchImporter) ImportFiles(ctx context.Context, paths []string, format string) []FileResult {
	outcomes := make([]parsed, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		i, path := i, path
		if err := ctx.Err(); err != nil {
			outcomes[i] = parsed{err: err}
			continue
		}

		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = b.parse(path, format)
		})
		if err != nil {
			wg.Done()
			b.logger.ErrorContext(ctx, "Failed to submit file to worker pool", "path", path, "error", err)
			outcomes[i] = parsed{err: err}
		}
	}
	wg.Wait()

	results := make([]FileResult, len(paths))
	for i, o := range outcomes {
		results[i] = FileResult{Path: paths[i], Err: o.err}
		if o.err != nil {
			var formatErr *shared.FormatError
			if errors.As(o.err, &formatErr) {
				b.service.Reject(ctx, o.req, o.err)
			}
			continue
		}
		results[i].Result = b.service.Commit(ctx, o.req, o.set)
	}

	b.logger.InfoContext(ctx, "batch import finished", "files", len(paths), "failed", countFailed(results))
	return results
}

func (b *BatchImporter) parse(path, format string) parsed {
	c, err := resolveCodec(path, format, b.defaultFormat)
	if err != nil {
		return parsed{err: err}
	}

	data, err := readSource(path)
	if err != nil {
		return parsed{err: err}
	}

	req := service.ImportRequest{
		Format: c.Name(),
		Source: filepath.Base(path),
		Text:   string(data),
	}
	set, err := c.Parse(req.Text)
	if err != nil {
		var formatErr *shared.FormatError
		if !errors.As(err, &formatErr) {
			err = shared.NewFormatError(c.Name(), err)
		}
		return parsed{req: req, err: err}
	}
	return parsed{req: req, set: set}
}

func countFailed(results []FileResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Shutdown releases the worker pool
func (b *BatchImporter) Shutdown() {
	b.logger.Info("Shutting down import worker pool", "running_workers", b.pool.Running())
	b.pool.Release()
}

// Capacity returns the capacity of the worker pool
func (b *BatchImporter) Capacity() int {
	return b.pool.Cap()
}
