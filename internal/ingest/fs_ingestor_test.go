package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func newTestIngestor() *FSIngestor {
	return NewFSIngestor(slog.New(slog.DiscardHandler))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIngestPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "factura.pdf", "%PDF-1.4 fake")

	doc, err := newTestIngestor().IngestPath(context.Background(), path)
	if err != nil {
		t.Fatalf("IngestPath: %v", err)
	}
	if doc.SourceFile != "factura.pdf" {
		t.Errorf("SourceFile = %q", doc.SourceFile)
	}
	if doc.FileExt != "pdf" {
		t.Errorf("FileExt = %q", doc.FileExt)
	}
	if len(doc.Data) == 0 || doc.HashHex == "" {
		t.Error("content or hash missing")
	}
}

func TestIngestPathRejectsExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.docx", "hello")
	if _, err := newTestIngestor().IngestPath(context.Background(), path); err == nil {
		t.Fatal("expected an error for a disallowed extension")
	}
}

func TestIngestDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.pdf", "content-one")
	writeFile(t, dir, "a.pdf", "content-two")
	writeFile(t, dir, "copy-of-b.pdf", "content-one") // duplicate content
	writeFile(t, dir, "skip.docx", "ignored")
	writeFile(t, dir, ".hidden.pdf", "ignored")

	docs, stats, err := newTestIngestor().IngestDirectory(context.Background(), dir, true)
	if err != nil {
		t.Fatalf("IngestDirectory: %v", err)
	}
	if stats.Matched != 3 {
		t.Errorf("Matched = %d, want 3", stats.Matched)
	}
	if stats.Deduplicated != 1 {
		t.Errorf("Deduplicated = %d, want 1", stats.Deduplicated)
	}
	if len(docs) != 3 {
		t.Fatalf("docs = %d, want 3", len(docs))
	}
	// Name order for deterministic runs.
	if docs[0].SourceFile != "a.pdf" || docs[1].SourceFile != "b.pdf" {
		t.Errorf("order = %q, %q", docs[0].SourceFile, docs[1].SourceFile)
	}
	if !docs[2].Deduplicated {
		t.Error("duplicate content not flagged")
	}
	if docs[1].Deduplicated {
		t.Error("first occurrence flagged as duplicate")
	}
}

func TestIngestDirectoryCustomExts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "estado.txt", "CTA Descripción")
	writeFile(t, dir, "doc.pdf", "pdf")

	ing := newTestIngestor()
	ing.AllowedExts = map[string]struct{}{"txt": {}}
	docs, stats, err := ing.IngestDirectory(context.Background(), dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Matched != 1 || len(docs) != 1 || docs[0].SourceFile != "estado.txt" {
		t.Errorf("docs = %+v, stats = %+v", docs, stats)
	}
}
