package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

type Config struct {
	// Path is the SQLite database file; ":memory:" keeps the archive in RAM.
	Path string
}

// Open creates the SQLite handle and applies the schema.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*sql.DB, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	logger.Info("opening archive database", "path", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return nil, err
	}
	// modernc sqlite is single-writer; keep the pool at one connection.
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db); err != nil {
		logger.Error("failed to apply schema", "error", err)
		_ = db.Close()
		return nil, err
	}
	logger.Info("archive database ready")
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS parsed_documents (
	id                 TEXT PRIMARY KEY,
	source_path        TEXT NOT NULL,
	status             TEXT NOT NULL,
	is_valid           INTEGER NOT NULL,
	weight_consistency INTEGER NOT NULL,
	completeness       REAL NOT NULL,
	record_json        TEXT NOT NULL,
	report_json        TEXT NOT NULL,
	parsed_at          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_parsed_documents_status ON parsed_documents (status);
`
	_, err := db.ExecContext(ctx, ddl)
	return err
}

// Close closes the database handle gracefully.
func Close(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
		return
	}
	logger.Info("archive database closed")
}

// HealthCheck pings the handle to catch path/permission issues early.
func HealthCheck(ctx context.Context, db *sql.DB, timeout time.Duration, logger *slog.Logger) error {
	logger.Debug("pinging database")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return db.PingContext(ctx)
}
