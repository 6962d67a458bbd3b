// comex-batch processes a directory of supplier documents through one of
// the extraction flows and writes the result tables for the accounting
// load.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ThiagoElux01/Comex-app/constants"
	"github.com/ThiagoElux01/Comex-app/internal/assemble"
	"github.com/ThiagoElux01/Comex-app/internal/async"
	"github.com/ThiagoElux01/Comex-app/internal/common"
	"github.com/ThiagoElux01/Comex-app/internal/export"
	"github.com/ThiagoElux01/Comex-app/internal/extract"
	"github.com/ThiagoElux01/Comex-app/internal/gastos"
	"github.com/ThiagoElux01/Comex-app/internal/ingest"
	"github.com/ThiagoElux01/Comex-app/internal/pipeline"
	"github.com/ThiagoElux01/Comex-app/internal/refdata"
	"github.com/ThiagoElux01/Comex-app/internal/store"
	"github.com/ThiagoElux01/Comex-app/internal/vendors"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		flow       = flag.String("flow", "", "processing flow: "+strings.Join(constants.FlowNames, "|")+" (required)")
		dir        = flag.String("dir", "", "directory of input documents (required)")
		out        = flag.String("out", "", "output directory (defaults to COMEX_OUTPUT_DIR)")
		formats    = flag.String("formats", "xlsx", "comma-separated output formats: csv,xlsx,prn")
		ratesPath  = flag.String("rates", "", "exchange-rate sheet (.xlsx/.csv) with Data/Venta columns")
		ratesSheet = flag.String("rates-sheet", "", "worksheet name inside -rates (default: first sheet)")
		refPath    = flag.String("ref", "", "document reference sheet (.xlsx/.csv)")
		refSheet   = flag.String("ref-sheet", "", "worksheet name inside -ref (default: first sheet)")
		workers    = flag.Int("workers", 4, "parallel PDF extraction workers")
	)
	flag.Parse()

	if *flow == "" || *dir == "" {
		printError("Error: -flow and -dir are required\n")
		flag.Usage()
		os.Exit(1)
	}
	if !validFlow(*flow) {
		printError("Error: unknown flow %q (expected one of %s)\n", *flow, strings.Join(constants.FlowNames, ", "))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	if *out == "" {
		*out = cfg.Export.OutputDir
	}

	history, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		logger.Error("failed to open run history", "err", err)
		os.Exit(1)
	}
	defer history.Close()

	extractor := extract.NewPDFAdapter(logger)
	session := pipeline.NewSession(logger, extractor, extractor)
	if *workers > 1 {
		session.Pool = async.NewExtractPool(extractor, logger, async.WithWorkers(*workers))
	}
	session.Progress = func(done, total int, file string) {
		logger.Debug("batch.progress", "done", done, "total", total, "file", file)
	}

	if cfg.Rules.OverridePath != "" {
		overrides, err := vendors.LoadOverrides(cfg.Rules.OverridePath)
		if err != nil {
			logger.Error("failed to load vendor overrides", "path", cfg.Rules.OverridePath, "err", err)
			os.Exit(1)
		}
		overrides.Apply(session.Registry)
		logger.Info("vendor overrides applied", "path", cfg.Rules.OverridePath)
	}

	if *ratesPath != "" {
		rates, err := refdata.LoadRates(*ratesPath, *ratesSheet)
		if err != nil {
			logger.Error("failed to load exchange rates", "path", *ratesPath, "err", err)
			os.Exit(1)
		}
		session.Rates = rates
		logger.Info("exchange rates loaded", "path", *ratesPath, "entries", rates.Len())
	}
	if *refPath != "" {
		ref, err := refdata.LoadReference(*refPath, *refSheet)
		if err != nil {
			logger.Error("failed to load reference sheet", "path", *refPath, "err", err)
			os.Exit(1)
		}
		session.Ref = ref
		logger.Info("reference sheet loaded", "path", *refPath, "rows", len(ref.Rows))
	}

	runID, err := history.Begin(ctx, *flow, *dir)
	if err != nil {
		logger.Error("failed to record run", "err", err)
		os.Exit(1)
	}

	ingestor := ingest.NewFSIngestor(logger)
	if *flow == "estado" {
		ingestor.AllowedExts = map[string]struct{}{"txt": {}}
	} else {
		ingestor.AllowedExts = map[string]struct{}{"pdf": {}}
	}

	docs, stats, err := ingestor.IngestDirectory(ctx, *dir, true)
	if err != nil {
		logger.Error("ingest failed", "dir", *dir, "err", err)
		_ = history.Finish(ctx, runID, constants.RunStatusFailed, int(stats.Matched), int(stats.Failed), nil)
		os.Exit(1)
	}

	table := runFlow(ctx, session, *flow, docs)

	outputs, err := writeOutputs(table, *out, *flow, *formats, cfg.Export.SheetName)
	if err != nil {
		logger.Error("export failed", "err", err)
		_ = history.Finish(ctx, runID, constants.RunStatusFailed, int(stats.Matched), int(stats.Failed), outputs)
		os.Exit(1)
	}

	failedRows := countErrorRows(table)
	if err := history.Finish(ctx, runID, constants.RunStatusSucceeded,
		int(stats.Matched), failedRows, outputs); err != nil {
		logger.Error("failed to record run outcome", "err", err)
	}

	logger.Info("batch.done",
		"flow", *flow,
		"run_id", runID,
		"files", stats.Matched,
		"rows", len(table.Rows),
		"unreadable", failedRows,
		"outputs", outputs,
	)
}

func validFlow(flow string) bool {
	for _, f := range constants.FlowNames {
		if f == flow {
			return true
		}
	}
	return false
}

func runFlow(ctx context.Context, session *pipeline.Session, flow string, docs []ingest.Document) *assemble.Table {
	switch flow {
	case "externos":
		return session.Externos(ctx, docs)
	case "adicionales":
		return session.Adicionales(ctx, docs)
	case "percepciones":
		return session.Percepciones(ctx, docs)
	case "duas":
		return session.DUAS(ctx, docs)
	case "estado":
		return estadoTable(docs)
	}
	return assemble.New()
}

// estadoTable parses each ingested balance-listing report, concatenates the
// account rows and closes the listing with its totals.
func estadoTable(docs []ingest.Document) *assemble.Table {
	out := assemble.New()
	for _, doc := range docs {
		if doc.Err != "" {
			continue
		}
		parsed := gastos.ParseEstadoCuenta(string(doc.Data))
		for _, r := range parsed.Rows {
			out.Append(r)
		}
		out.OrderColumns(parsed.Columns)
	}
	gastos.AppendTotals(out)
	return out
}

func writeOutputs(t *assemble.Table, outDir, flow, formats, sheetName string) ([]string, error) {
	var outputs []string
	for _, format := range strings.Split(formats, ",") {
		format = strings.ToLower(strings.TrimSpace(format))
		if format == "" {
			continue
		}
		path := filepath.Join(outDir, flow+"."+format)
		var err error
		switch format {
		case "csv":
			err = export.WriteCSV(t, path)
		case "xlsx":
			err = export.WriteXLSX(t, path, sheetName)
		case "prn":
			err = export.WritePRN(t, path, export.LoadWidths)
		default:
			err = fmt.Errorf("unknown output format %q", format)
		}
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, path)
	}
	return outputs, nil
}

func countErrorRows(t *assemble.Table) int {
	n := 0
	for _, r := range t.Rows {
		if r.String("Error") != "" {
			n++
		}
	}
	return n
}
