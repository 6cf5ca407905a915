// Package store persists pipeline results: documents with their scores and
// dispositions, plus per-batch reports. It sits on the caller side of the
// pipeline boundary; the pipeline itself never imports it.
//
// # Thread Safety
//
// Store is safe for concurrent use. The underlying sql.DB handles connection
// pooling; individual operations are atomic and batch saves run in a
// transaction.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/hellothere012/ghostbrief/internal/model"
	"github.com/hellothere012/ghostbrief/internal/pipeline"
)

// Store handles persistence of scored documents and pipeline reports.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the SQLite store at dbPath and applies
// migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT,
		url TEXT,
		source_domain TEXT,
		source_name TEXT,
		published_at DATETIME,
		fetched_at DATETIME,
		entities TEXT,
		annotation TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS outcomes (
		report_id TEXT NOT NULL,
		document_id TEXT NOT NULL,
		overall REAL,
		confidence REAL,
		priority TEXT,
		grade TEXT,
		rejected INTEGER NOT NULL,
		stage TEXT,
		reason TEXT,
		duplicate_of TEXT,
		breakdown TEXT,
		PRIMARY KEY (report_id, document_id)
	);

	CREATE INDEX IF NOT EXISTS idx_outcomes_rejected ON outcomes(rejected);
	CREATE INDEX IF NOT EXISTS idx_outcomes_grade ON outcomes(grade);

	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		started DATETIME NOT NULL,
		finished DATETIME NOT NULL,
		stages TEXT NOT NULL,
		distribution TEXT,
		clusters TEXT
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDocuments upserts raw documents, keyed by their stable IDs.
func (s *Store) SaveDocuments(docs []model.Document) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO documents (id, title, content, url, source_domain, source_name,
			published_at, fetched_at, entities, annotation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET entities=excluded.entities, annotation=excluded.annotation
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, doc := range docs {
		entities, _ := json.Marshal(doc.Entities)
		annotation, _ := json.Marshal(doc.Annot)
		if _, err := stmt.Exec(doc.ID, doc.Title, doc.Content, doc.URL,
			doc.Source.Domain, doc.Source.Name, doc.Published, doc.Fetched,
			string(entities), string(annotation)); err != nil {
			return fmt.Errorf("failed to save document %s: %w", doc.ID, err)
		}
	}
	return tx.Commit()
}

// SaveOutput persists a finished batch: every outcome plus the report.
func (s *Store) SaveOutput(out pipeline.Output) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO outcomes (report_id, document_id, overall, confidence,
			priority, grade, rejected, stage, reason, duplicate_of, breakdown)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	save := func(o pipeline.Outcome) error {
		breakdown, _ := json.Marshal(o.Breakdown)
		rejected := 0
		if o.Rejected {
			rejected = 1
		}
		_, err := stmt.Exec(out.Report.ID, o.Doc.ID, o.Breakdown.Overall,
			o.Breakdown.Confidence, string(o.Breakdown.Priority), o.Grade,
			rejected, o.Stage, o.Reason, o.DuplicateOf, string(breakdown))
		return err
	}
	for _, o := range out.Passed {
		if err := save(o); err != nil {
			return fmt.Errorf("failed to save outcome %s: %w", o.Doc.ID, err)
		}
	}
	for _, o := range out.Rejected {
		if err := save(o); err != nil {
			return fmt.Errorf("failed to save outcome %s: %w", o.Doc.ID, err)
		}
	}

	stages, _ := json.Marshal(out.Report.Stages)
	distribution, _ := json.Marshal(out.Report.Distribution)
	clusters, _ := json.Marshal(out.Report.Clusters)
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO reports (id, started, finished, stages, distribution, clusters)
		VALUES (?, ?, ?, ?, ?, ?)`,
		out.Report.ID, out.Report.Started, out.Report.Finished,
		string(stages), string(distribution), string(clusters)); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return tx.Commit()
}

// ReportSummary is one row of the stats view.
type ReportSummary struct {
	ID       string
	Started  time.Time
	Finished time.Time
	Signals  int
	Rejected int
}

// RecentReports returns the latest n batch summaries, newest first.
func (s *Store) RecentReports(n int) ([]ReportSummary, error) {
	rows, err := s.db.Query(`
		SELECT r.id, r.started, r.finished,
			COALESCE(SUM(CASE WHEN o.rejected = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(o.rejected), 0)
		FROM reports r
		LEFT JOIN outcomes o ON o.report_id = r.id
		GROUP BY r.id
		ORDER BY r.started DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReportSummary
	for rows.Next() {
		var rs ReportSummary
		if err := rows.Scan(&rs.ID, &rs.Started, &rs.Finished, &rs.Signals, &rs.Rejected); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// RejectionCounts returns rejection reasons grouped by stage across all
// batches, for the operator stats view.
func (s *Store) RejectionCounts() (map[string]int, error) {
	rows, err := s.db.Query(`
		SELECT stage, COUNT(*) FROM outcomes WHERE rejected = 1 GROUP BY stage ORDER BY stage`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var stage string
		var n int
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, err
		}
		counts[stage] = n
	}
	return counts, rows.Err()
}
