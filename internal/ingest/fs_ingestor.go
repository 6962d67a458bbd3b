package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ThiagoElux01/Comex-app/constants"
)

// FSIngestor reads from the local filesystem.
type FSIngestor struct {
	Logger      *slog.Logger
	AllowedExts map[string]struct{} // lowercased sans '.'; nil -> default set
}

func NewFSIngestor(logger *slog.Logger) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSIngestor{Logger: logger}
}

func (i *FSIngestor) allowedExt(ext string) bool {
	if i.AllowedExts != nil {
		_, ok := i.AllowedExts[ext]
		return ok
	}
	_, ok := constants.AllowedExtensions[ext]
	return ok
}

func (i *FSIngestor) IngestPath(ctx context.Context, path string) (Document, error) {
	var out Document
	if err := ctx.Err(); err != nil {
		return out, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		i.Logger.Error("ingest.abs.failed", "path", path, "err", err)
		return out, err
	}

	ext := constants.NormalizeExt(filepath.Ext(abs))
	if ext == "" || !i.allowedExt(ext) {
		return out, fmt.Errorf("unsupported or missing extension: %q", ext)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		i.Logger.Error("ingest.read.failed", "path", abs, "err", err)
		return out, err
	}

	sum := sha256.Sum256(data)
	out = Document{
		SourceFile: filepath.Base(abs),
		Path:       abs,
		Data:       data,
		HashHex:    hex.EncodeToString(sum[:]),
		FileExt:    ext,
		UploadedAt: time.Now().UTC(),
	}
	return out, nil
}

// IngestDirectory walks root and ingests every file with an allowed
// extension, in name order for deterministic runs. Files whose content hash
// repeats an earlier file are flagged as duplicates but still returned.
func (i *FSIngestor) IngestDirectory(ctx context.Context, root string, skipHidden bool) ([]Document, DirStats, error) {
	var stats DirStats
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if skipHidden && strings.HasPrefix(name, ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		if ext := constants.NormalizeExt(filepath.Ext(name)); ext != "" && i.allowedExt(ext) {
			stats.Matched++
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	sort.Strings(paths)

	seen := make(map[string]bool, len(paths))
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return docs, stats, err
		}
		doc, err := i.IngestPath(ctx, path)
		if err != nil {
			stats.Failed++
			docs = append(docs, Document{
				SourceFile: filepath.Base(path),
				Path:       path,
				Err:        err.Error(),
			})
			continue
		}
		if seen[doc.HashHex] {
			doc.Deduplicated = true
			stats.Deduplicated++
		}
		seen[doc.HashHex] = true
		stats.Succeeded++
		docs = append(docs, doc)
	}

	i.Logger.Info("ingest.directory.ok",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"deduplicated", stats.Deduplicated,
		"failed", stats.Failed,
	)
	return docs, stats, nil
}
