package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

// ScoreFilter narrows ListScores. Empty fields match everything.
type ScoreFilter struct {
	Project string
	Tool    string
	RunID   string
}

// ScoreStore is the append-only ledger of computed scores.
type ScoreStore interface {
	SaveScore(ctx context.Context, record m.ScoreRecord) error
	ListScores(ctx context.Context, filter ScoreFilter) ([]m.ScoreRecord, error)
	Close() error
}

// SQLiteScoreStore keeps the ledger in a local SQLite database.
type SQLiteScoreStore struct {
	db *sql.DB
}

// NewSQLiteScoreStore opens (creating if needed) the ledger at path.
func NewSQLiteScoreStore(path string) (*SQLiteScoreStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serializes writers from parallel bulk runs.
	db.SetMaxOpenConns(1)

	store := &SQLiteScoreStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteScoreStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		checkout TEXT NOT NULL,
		project TEXT NOT NULL,
		bug TEXT NOT NULL,
		tool TEXT NOT NULL,
		label TEXT NOT NULL,
		revision TEXT NOT NULL DEFAULT '',
		killed INTEGER NOT NULL,
		live INTEGER NOT NULL,
		all_count INTEGER NOT NULL,
		score REAL NOT NULL,
		score_full REAL NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_scores_project ON scores(project);
	CREATE INDEX IF NOT EXISTS idx_scores_tool ON scores(tool);
	CREATE INDEX IF NOT EXISTS idx_scores_run ON scores(run_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create scores table: %w", err)
	}

	return nil
}

// SaveScore appends one record.
func (s *SQLiteScoreStore) SaveScore(ctx context.Context, record m.ScoreRecord) error {
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scores (run_id, checkout, project, bug, tool, label, revision,
			killed, live, all_count, score, score_full, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RunID, string(record.Checkout), record.Project, record.Bug, record.Tool, record.Label, record.Revision,
		record.Report.Killed, record.Report.Live, record.Report.All, record.Report.Score, record.Report.ScoreFull,
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}

	return nil
}

// ListScores returns matching records, oldest first.
func (s *SQLiteScoreStore) ListScores(ctx context.Context, filter ScoreFilter) ([]m.ScoreRecord, error) {
	var (
		conditions []string
		args       []any
	)

	for column, value := range map[string]string{"project": filter.Project, "tool": filter.Tool, "run_id": filter.RunID} {
		if value != "" {
			conditions = append(conditions, column+" = ?")
			args = append(args, value)
		}
	}

	query := `SELECT run_id, checkout, project, bug, tool, label, revision,
		killed, live, all_count, score, score_full, created_at FROM scores`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var records []m.ScoreRecord

	for rows.Next() {
		var (
			record    m.ScoreRecord
			checkout  string
			createdAt string
		)

		err := rows.Scan(&record.RunID, &checkout, &record.Project, &record.Bug, &record.Tool, &record.Label, &record.Revision,
			&record.Report.Killed, &record.Report.Live, &record.Report.All, &record.Report.Score, &record.Report.ScoreFull,
			&createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}

		record.Checkout = m.Path(checkout)
		record.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		records = append(records, record)
	}

	return records, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteScoreStore) Close() error {
	return s.db.Close()
}
