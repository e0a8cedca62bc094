// Package pipeline wires the parsing stages: clean -> extract -> normalize ->
// validate -> contract check. Data flows strictly forward; every per-document
// structure is created fresh and immutable once produced.
package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/weighlog/weighbridge-parser/internal/common"
	"github.com/weighlog/weighbridge-parser/internal/entity"
	"github.com/weighlog/weighbridge-parser/internal/extract"
	"github.com/weighlog/weighbridge-parser/internal/normalize"
	"github.com/weighlog/weighbridge-parser/internal/patterns"
	"github.com/weighlog/weighbridge-parser/internal/preprocess"
	"github.com/weighlog/weighbridge-parser/internal/schema"
	"github.com/weighlog/weighbridge-parser/internal/validate"
)

type Pipeline struct {
	Extractor  *extract.Extractor
	Normalizer *normalize.Normalizer
	Validator  *validate.Validator
	Log        *slog.Logger

	recordSchema map[string]any
}

// NewPipeline builds a pipeline around a shared registry. A nil registry
// selects the built-in rule set. Safe for concurrent use across documents:
// the registry is the only shared state and it is read-only.
func NewPipeline(reg *patterns.Registry, cfg common.ValidationConfig, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		Extractor:    extract.NewExtractor(reg, log),
		Normalizer:   normalize.NewNormalizer(log),
		Validator:    validate.NewValidator(cfg, log),
		Log:          log,
		recordSchema: schema.BuildRecordJSONSchema(),
	}
}

// Parse runs one raw OCR text through every stage and returns the parsed
// document. The only error paths are caller cancellation and an output
// contract violation; malformed or empty text yields a document whose report
// records the incompleteness instead.
func (p *Pipeline) Parse(ctx context.Context, rawText, sourcePath string) (*entity.ParsedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned := preprocess.NormalizeLabels(preprocess.Clean(rawText))

	raw := p.Extractor.Extract(cleaned)
	rec := p.Normalizer.Normalize(raw)
	rec.RawText = cleaned
	report := p.Validator.Validate(&rec)

	// Contract check: the serialized record must match the published shape.
	// A violation here is an internal defect, not an input problem.
	encoded, err := json.Marshal(rec)
	if err != nil {
		return nil, common.WrapError(err, "encode record")
	}
	if err := schema.ValidateJSONAgainstSchema(p.recordSchema, encoded); err != nil {
		return nil, common.NewAppError("CONTRACT_ERROR", "record violates output schema", err)
	}

	doc := &entity.ParsedDocument{
		ID:         uuid.New(),
		SourcePath: sourcePath,
		Record:     rec,
		Validation: report,
		ParsedAt:   time.Now().UTC(),
	}

	p.Log.Info("pipeline.parsed",
		"doc_id", doc.ID,
		"source", sourcePath,
		"is_valid", report.IsValid,
		"completeness", report.Completeness,
	)
	return doc, nil
}
