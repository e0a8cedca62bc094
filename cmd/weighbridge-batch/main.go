package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/weighlog/weighbridge-parser/internal/common"
	"github.com/weighlog/weighbridge-parser/internal/entity"
	"github.com/weighlog/weighbridge-parser/internal/export"
	"github.com/weighlog/weighbridge-parser/internal/ingest"
	"github.com/weighlog/weighbridge-parser/internal/patterns"
	"github.com/weighlog/weighbridge-parser/internal/pipeline"
	"github.com/weighlog/weighbridge-parser/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir    = flag.String("dir", "", "directory of OCR files to process (required)")
		out    = flag.String("out", "", "output JSON file path (defaults to <dir parent>/weighbridge.json)")
		xlsx   = flag.String("xlsx", "", "optional XLSX summary file path")
		dbPath = flag.String("db", "", "SQLite archive path (defaults to in-memory)")
		debug  = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(2)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "weighbridge.json")
	}

	// Setup logger
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Load and check configuration
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.Path
	}

	// Compile the rule set once; a broken pattern is fatal here, never per document.
	registry, err := patterns.New(patterns.DefaultSources)
	if err != nil {
		logger.Error("failed to compile pattern registry", "error", err)
		os.Exit(2)
	}

	// Open the archive
	db, err := repository.Open(ctx, repository.Config{Path: *dbPath}, logger)
	if err != nil {
		logger.Error("failed to open archive", "error", err)
		os.Exit(2)
	}
	defer repository.Close(db, logger)
	docsRepo := repository.NewDocumentRepository(db, logger)

	parser := pipeline.NewPipeline(registry, cfg.Validation, logger)

	// Ingest directory
	files, err := ingest.ListDir(*dir)
	if err != nil {
		logger.Error("failed to list input directory", "dir", *dir, "error", err)
		os.Exit(2)
	}
	logger.Info("starting batch", "dir", *dir, "files", len(files))

	var docs []entity.ParsedDocument
	invalid := 0
	failures := 0

	for _, path := range files {
		text, err := ingest.ReadFile(path)
		if err != nil {
			logger.Error("failed to read file", "path", path, "error", err)
			failures++
			continue
		}
		doc, err := parser.Parse(ctx, text, path)
		if err != nil {
			logger.Error("failed to parse file", "path", path, "error", err)
			failures++
			continue
		}
		if err := docsRepo.Save(ctx, doc); err != nil {
			logger.Error("failed to archive document", "path", path, "error", err)
			failures++
			continue
		}
		if !doc.Validation.IsValid {
			invalid++
		}
		docs = append(docs, *doc)
	}

	// Write outputs
	svc := export.NewService(logger)
	jsonBytes, err := svc.MarshalJSON(docs, cfg.Output.JSONIndent)
	if err != nil {
		logger.Error("failed to encode output", "error", err)
		os.Exit(2)
	}
	if err := os.WriteFile(*out, jsonBytes, 0644); err != nil {
		logger.Error("failed to write output file", "path", *out, "error", err)
		os.Exit(2)
	}
	if *xlsx != "" {
		wb, err := svc.DocumentsXLSX(docs)
		if err != nil {
			logger.Error("failed to build XLSX summary", "error", err)
			os.Exit(2)
		}
		if err := os.WriteFile(*xlsx, wb, 0644); err != nil {
			logger.Error("failed to write XLSX file", "path", *xlsx, "error", err)
			os.Exit(2)
		}
	}

	logger.Info("batch complete",
		"files", len(files),
		"parsed", len(docs),
		"invalid", invalid,
		"failures", failures,
		"output_file", *out,
	)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files parsed: %d\n", len(docs))
	fmt.Printf("- Invalid records: %d\n", invalid)
	fmt.Printf("- Failures: %d\n", failures)
	fmt.Printf("- Output: %s\n", *out)

	if invalid > 0 || failures > 0 {
		os.Exit(1)
	}
}
