package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/weighlog/weighbridge-parser/constants"
	"github.com/weighlog/weighbridge-parser/internal/common"
	"github.com/weighlog/weighbridge-parser/internal/entity"
)

// DocumentRepository archives parsed documents. Record and report are stored
// as JSON alongside the queryable outcome columns.
type DocumentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewDocumentRepository(db *sql.DB, logger *slog.Logger) *DocumentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentRepository{db: db, logger: logger}
}

// Save inserts one parsed document. Re-saving the same document ID replaces
// the previous row, so re-running a batch stays idempotent.
func (r *DocumentRepository) Save(ctx context.Context, doc *entity.ParsedDocument) error {
	recordJSON, err := json.Marshal(doc.Record)
	if err != nil {
		return common.WrapError(err, "encode record")
	}
	reportJSON, err := json.Marshal(doc.Validation)
	if err != nil {
		return common.WrapError(err, "encode report")
	}
	status := constants.StatusFor(doc.Validation.IsValid, len(doc.Validation.Warnings))

	const q = `
INSERT OR REPLACE INTO parsed_documents
	(id, source_path, status, is_valid, weight_consistency, completeness, record_json, report_json, parsed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, q,
		doc.ID.String(),
		doc.SourcePath,
		string(status),
		boolToInt(doc.Validation.IsValid),
		boolToInt(doc.Validation.WeightConsistency),
		doc.Validation.Completeness,
		string(recordJSON),
		string(reportJSON),
		doc.ParsedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Error("failed to save document", "doc_id", doc.ID, "error", err)
		return common.NewAppError("DB_ERROR", "save parsed document", err)
	}
	r.logger.Debug("document archived", "doc_id", doc.ID, "status", status)
	return nil
}

// ListByStatus returns archived documents with the given status, oldest first.
func (r *DocumentRepository) ListByStatus(ctx context.Context, status constants.DocStatus) ([]entity.ParsedDocument, error) {
	const q = `
SELECT record_json, report_json, id, source_path, parsed_at
FROM parsed_documents WHERE status = ? ORDER BY parsed_at`
	rows, err := r.db.QueryContext(ctx, q, string(status))
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "list parsed documents", err)
	}
	defer rows.Close()

	var docs []entity.ParsedDocument
	for rows.Next() {
		var recordJSON, reportJSON, id, sourcePath, parsedAt string
		if err := rows.Scan(&recordJSON, &reportJSON, &id, &sourcePath, &parsedAt); err != nil {
			return nil, common.NewAppError("DB_ERROR", "scan parsed document", err)
		}
		doc, err := decodeDocument(recordJSON, reportJSON, id, sourcePath, parsedAt)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// CountByStatus returns row counts per status for batch summaries.
func (r *DocumentRepository) CountByStatus(ctx context.Context) (map[constants.DocStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM parsed_documents GROUP BY status`)
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "count parsed documents", err)
	}
	defer rows.Close()

	counts := make(map[constants.DocStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, common.NewAppError("DB_ERROR", "scan status count", err)
		}
		counts[constants.DocStatus(status)] = n
	}
	return counts, rows.Err()
}

func decodeDocument(recordJSON, reportJSON, id, sourcePath, parsedAt string) (entity.ParsedDocument, error) {
	var doc entity.ParsedDocument
	if err := json.Unmarshal([]byte(recordJSON), &doc.Record); err != nil {
		return doc, common.WrapError(err, "decode record")
	}
	if err := json.Unmarshal([]byte(reportJSON), &doc.Validation); err != nil {
		return doc, common.WrapError(err, "decode report")
	}
	if err := doc.ID.UnmarshalText([]byte(id)); err != nil {
		return doc, common.WrapError(err, "decode document id")
	}
	doc.SourcePath = sourcePath
	if t, err := time.Parse(time.RFC3339, parsedAt); err == nil {
		doc.ParsedAt = t
	}
	return doc, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
