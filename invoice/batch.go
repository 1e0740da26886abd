package invoice

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FileResult is the outcome for one source spreadsheet.
type FileResult struct {
	Source string
	Output string
	Err    error
}

// BatchResult holds the outcome of a batch run, in input order.
type BatchResult struct {
	Results   []FileResult
	Generated int
	Failed    int
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Generated + r.Failed
}

// HasFailures reports whether any file failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Err combines every per-file failure, or returns nil.
func (r BatchResult) Err() error {
	var err error
	for _, res := range r.Results {
		if res.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", filepath.Base(res.Source), res.Err))
		}
	}
	return err
}

// Batch generates an invoice for every path. A failing file is logged and
// skipped; the remaining files are still processed. With more than one
// configured worker, files are processed concurrently but results keep the
// input order. Once ctx is done no further files are started.
func (g *Generator) Batch(ctx context.Context, paths []string) BatchResult {
	log := g.log.With(zap.String("run", uuid.NewString()))
	results := make([]FileResult, len(paths))

	var eg errgroup.Group
	eg.SetLimit(max(g.cfg.Workers, 1))
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			results[i] = FileResult{Source: p, Err: err}
			continue
		}
		eg.Go(func() error {
			results[i] = g.process(ctx, log, p)
			return nil
		})
	}
	_ = eg.Wait()

	out := BatchResult{Results: results}
	for _, res := range results {
		if res.Err != nil {
			out.Failed++
		} else {
			out.Generated++
		}
	}
	log.Info("batch complete",
		zap.Int("generated", out.Generated),
		zap.Int("failed", out.Failed),
		zap.Int("total", out.Total()),
	)
	return out
}

func (g *Generator) process(ctx context.Context, log *zap.Logger, path string) FileResult {
	name := filepath.Base(path)
	out, err := g.Generate(ctx, path)
	if err != nil {
		log.Error("invoice failed",
			zap.String("file", name),
			zap.String("kind", Kind(err)),
			zap.Error(err),
		)
		return FileResult{Source: path, Err: err}
	}
	log.Info("invoice generated", zap.String("file", name), zap.String("output", out))
	return FileResult{Source: path, Output: out}
}
