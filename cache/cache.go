// Package cache stores replies from the chat service in SQLite so repeated
// questions can be answered without a round trip.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS cache (
	id TEXT PRIMARY KEY,
	question TEXT NOT NULL,
	response TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	usage_count INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_created_at ON cache(created_at);
`

// Store is a reply cache keyed by the sha256 of the question text.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// QuestionCount is one row of the most-used questions list.
type QuestionCount struct {
	Question string
	Uses     int64
}

// Stats summarizes the cache contents.
type Stats struct {
	TotalEntries int64
	TotalUses    int64
	Top          []QuestionCount
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: enable WAL: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func questionID(question string) string {
	sum := sha256.Sum256([]byte(question))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached reply for question and bumps its usage count.
func (s *Store) Get(ctx context.Context, question string) (string, bool, error) {
	id := questionID(question)

	var response string
	err := s.db.QueryRowContext(ctx, "SELECT response FROM cache WHERE id = ?", id).Scan(&response)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache: lookup: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "UPDATE cache SET usage_count = usage_count + 1 WHERE id = ?", id); err != nil {
		return response, true, fmt.Errorf("cache: bump usage: %w", err)
	}
	return response, true, nil
}

// Put stores response for question, replacing any previous entry.
func (s *Store) Put(ctx context.Context, question, response string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO cache (id, question, response, created_at) VALUES (?, ?, ?, ?)",
		questionID(question), question, response, s.now().Unix())
	if err != nil {
		return fmt.Errorf("cache: save: %w", err)
	}
	return nil
}

// Clean deletes entries older than maxAge and returns how many were removed.
func (s *Store) Clean(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := s.now().Add(-maxAge).Unix()
	res, err := s.db.ExecContext(ctx, "DELETE FROM cache WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("cache: clean: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Stats reports totals and the topN most used questions.
func (s *Store) Stats(ctx context.Context, topN int) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(usage_count), 0) FROM cache").Scan(&st.TotalEntries, &st.TotalUses)
	if err != nil {
		return Stats{}, fmt.Errorf("cache: stats: %w", err)
	}
	if topN <= 0 {
		return st, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT question, usage_count FROM cache ORDER BY usage_count DESC, question ASC LIMIT ?", topN)
	if err != nil {
		return Stats{}, fmt.Errorf("cache: top questions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var qc QuestionCount
		if err := rows.Scan(&qc.Question, &qc.Uses); err != nil {
			return Stats{}, fmt.Errorf("cache: scan: %w", err)
		}
		st.Top = append(st.Top, qc)
	}
	return st, rows.Err()
}
