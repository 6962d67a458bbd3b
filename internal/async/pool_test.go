package async

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/ThiagoElux01/Comex-app/internal/extract"
)

type echoExtractor struct {
	delay time.Duration
}

func (e *echoExtractor) Extract(_ context.Context, content []byte) extract.TextExtractionResult {
	if e.delay > 0 {
		time.Sleep(e.delay)
	}
	return extract.TextExtractionResult{Text: string(content)}
}

func TestExtractAllPreservesOrder(t *testing.T) {
	pool := NewExtractPool(&echoExtractor{}, slog.New(slog.DiscardHandler), WithWorkers(4))

	contents := make([][]byte, 50)
	for i := range contents {
		contents[i] = []byte(fmt.Sprintf("doc-%03d", i))
	}

	out := pool.ExtractAll(context.Background(), contents)
	if len(out) != len(contents) {
		t.Fatalf("results = %d, want %d", len(out), len(contents))
	}
	for i, res := range out {
		if want := fmt.Sprintf("doc-%03d", i); res.Text != want {
			t.Fatalf("result %d = %q, want %q", i, res.Text, want)
		}
	}
}

func TestExtractAllEmptyInput(t *testing.T) {
	pool := NewExtractPool(&echoExtractor{}, nil)
	out := pool.ExtractAll(context.Background(), nil)
	if len(out) != 0 {
		t.Fatalf("results = %d, want 0", len(out))
	}
}

func TestExtractAllMoreWorkersThanJobs(t *testing.T) {
	pool := NewExtractPool(&echoExtractor{delay: time.Millisecond}, nil, WithWorkers(16))
	out := pool.ExtractAll(context.Background(), [][]byte{[]byte("only")})
	if len(out) != 1 || out[0].Text != "only" {
		t.Fatalf("results = %+v", out)
	}
}

func TestOptions(t *testing.T) {
	p := NewExtractPool(&echoExtractor{}, nil, WithWorkers(0), WithExtractTimeout(0))
	if p.workers != 4 {
		t.Errorf("workers = %d, want default 4", p.workers)
	}
	if p.timeout != 3*time.Minute {
		t.Errorf("timeout = %v, want default 3m", p.timeout)
	}
	p = NewExtractPool(&echoExtractor{}, nil, WithWorkers(8), WithExtractTimeout(time.Second))
	if p.workers != 8 || p.timeout != time.Second {
		t.Errorf("options not applied: %d %v", p.workers, p.timeout)
	}
}
