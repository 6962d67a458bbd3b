package ingest

import (
	"context"
	"time"
)

// Document is one ingested input file, content included.
type Document struct {
	SourceFile   string // base name, the dedup key carried into results
	Path         string
	Data         []byte
	HashHex      string
	FileExt      string
	Deduplicated bool // same content already seen earlier in the run
	UploadedAt   time.Time
	Err          string
}

// DirStats summarizes a directory ingest.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Failed       uint32
}

// Ingestor is the behavior the flows depend on.
type Ingestor interface {
	// IngestPath reads a single file.
	IngestPath(ctx context.Context, path string) (Document, error)
	// IngestDirectory reads all matching files under root.
	IngestDirectory(ctx context.Context, root string, skipHidden bool) ([]Document, DirStats, error)
}
