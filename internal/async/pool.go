// Package async parallelizes the PDF text extraction, the slow stage of
// every flow. Results come back in input order, so the flows stay
// deterministic regardless of worker count.
package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ThiagoElux01/Comex-app/internal/extract"
)

type ExtractPool struct {
	extractor extract.TextExtractor
	logger    *slog.Logger
	workers   int
	timeout   time.Duration
}

type Option func(*ExtractPool)

func WithWorkers(n int) Option {
	return func(p *ExtractPool) {
		if n > 0 {
			p.workers = n
		}
	}
}

func WithExtractTimeout(d time.Duration) Option {
	return func(p *ExtractPool) {
		if d > 0 {
			p.timeout = d
		}
	}
}

func NewExtractPool(extractor extract.TextExtractor, logger *slog.Logger, opts ...Option) *ExtractPool {
	if logger == nil {
		logger = slog.Default()
	}
	p := &ExtractPool{
		extractor: extractor,
		logger:    logger,
		workers:   4,
		timeout:   3 * time.Minute,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

type job struct {
	index   int
	content []byte
}

// ExtractAll extracts text from every document, fanned out over the worker
// pool. The result slice is index-aligned with the input.
func (p *ExtractPool) ExtractAll(ctx context.Context, contents [][]byte) []extract.TextExtractionResult {
	out := make([]extract.TextExtractionResult, len(contents))
	if len(contents) == 0 {
		return out
	}

	jobs := make(chan job)
	var wg sync.WaitGroup

	workers := p.workers
	if workers > len(contents) {
		workers = len(contents)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := range jobs {
				jctx, cancel := context.WithTimeout(ctx, p.timeout)
				out[j.index] = p.extractor.Extract(jctx, j.content)
				cancel()
			}
			p.logger.Debug("extract worker stopped", "worker_id", workerID)
		}(i + 1)
	}

	for i, content := range contents {
		jobs <- job{index: i, content: content}
	}
	close(jobs)
	wg.Wait()
	return out
}
