// Package store handles SQLite persistence of generated puzzles.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/wordsearch/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a puzzle id does not exist.
var ErrNotFound = errors.New("puzzle not found")

// Store wraps SQLite access for puzzle history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS puzzles (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			word_count INTEGER NOT NULL,
			hidden TEXT NOT NULL,
			backwards INTEGER NOT NULL,
			solved INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			word_file TEXT NOT NULL,
			record TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_puzzles_created_at ON puzzles(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertPuzzle stores a generated puzzle and returns its id.
func (s *Store) InsertPuzzle(ctx context.Context, rec model.PuzzleRecord) (int64, error) {
	data, err := json.Marshal(rec.Result)
	if err != nil {
		return 0, fmt.Errorf("failed to encode puzzle: %w", err)
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO puzzles (created_at, width, height, word_count, hidden, backwards, solved, seed, word_file, record)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		createdAt.Format(time.RFC3339Nano),
		rec.Result.Width,
		rec.Result.Height,
		len(rec.Result.Words),
		rec.Result.Hidden,
		boolToInt(rec.Backwards),
		boolToInt(rec.Result.Solution != nil),
		rec.Seed,
		rec.WordFile,
		string(data),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetPuzzle loads a stored puzzle by id.
func (s *Store) GetPuzzle(ctx context.Context, id int64) (model.PuzzleRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, backwards, seed, word_file, record FROM puzzles WHERE id = ?`, id)
	return scanRecord(row)
}

// LatestPuzzle loads the most recently stored puzzle. Insertion order is
// taken from the row id; created_at text does not sort chronologically.
func (s *Store) LatestPuzzle(ctx context.Context) (model.PuzzleRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, backwards, seed, word_file, record FROM puzzles ORDER BY id DESC LIMIT 1`)
	return scanRecord(row)
}

func scanRecord(row *sql.Row) (model.PuzzleRecord, error) {
	var rec model.PuzzleRecord
	var createdAt, record string
	var backwards int
	if err := row.Scan(&rec.ID, &createdAt, &backwards, &rec.Seed, &rec.WordFile, &record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PuzzleRecord{}, ErrNotFound
		}
		return model.PuzzleRecord{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.PuzzleRecord{}, err
	}
	rec.CreatedAt = parsed
	rec.Backwards = backwards != 0
	if err := json.Unmarshal([]byte(record), &rec.Result); err != nil {
		return model.PuzzleRecord{}, fmt.Errorf("failed to decode puzzle %d: %w", rec.ID, err)
	}
	return rec, nil
}

// ListPuzzles returns summaries of the most recent puzzles, oldest first.
// A limit <= 0 returns every puzzle.
func (s *Store) ListPuzzles(ctx context.Context, limit int) ([]model.PuzzleSummary, error) {
	query := `SELECT id, created_at, width, height, word_count, hidden, solved FROM (
		SELECT * FROM puzzles ORDER BY id DESC LIMIT ?
	) ORDER BY id ASC`
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.PuzzleSummary
	for rows.Next() {
		var sum model.PuzzleSummary
		var createdAt, hidden string
		var solved int
		if err := rows.Scan(&sum.ID, &createdAt, &sum.Width, &sum.Height, &sum.WordCount, &hidden, &solved); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		sum.CreatedAt = parsed
		sum.Hidden = hidden != ""
		sum.Solved = solved != 0
		result = append(result, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
