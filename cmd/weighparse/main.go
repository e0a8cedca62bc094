package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/weighlog/weighbridge-parser/internal/common"
	"github.com/weighlog/weighbridge-parser/internal/ingest"
	"github.com/weighlog/weighbridge-parser/internal/patterns"
	"github.com/weighlog/weighbridge-parser/internal/pipeline"
)

// weighparse parses a single OCR file and prints the parsed document as JSON.
func main() {
	var (
		file  = flag.String("file", "", "OCR JSON or text file to parse (required)")
		debug = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	// Diagnostics go to stderr so stdout stays a clean JSON document.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	registry, err := patterns.New(patterns.DefaultSources)
	if err != nil {
		logger.Error("failed to compile pattern registry", "error", err)
		os.Exit(2)
	}

	text, err := ingest.ReadFile(*file)
	if err != nil {
		logger.Error("failed to read file", "path", *file, "error", err)
		os.Exit(2)
	}

	parser := pipeline.NewPipeline(registry, cfg.Validation, logger)
	doc, err := parser.Parse(context.Background(), text, *file)
	if err != nil {
		logger.Error("failed to parse file", "path", *file, "error", err)
		os.Exit(2)
	}

	out, err := json.MarshalIndent(doc, "", cfg.Output.JSONIndent)
	if err != nil {
		logger.Error("failed to encode document", "error", err)
		os.Exit(2)
	}
	fmt.Println(string(out))

	if !doc.Validation.IsValid {
		os.Exit(1)
	}
}
