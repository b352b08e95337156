package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/cognicore/recipeset/pkg/recipeset/dataset"
	"github.com/cognicore/recipeset/pkg/recipeset/features"
	"github.com/cognicore/recipeset/pkg/recipeset/internalerr"
	"github.com/cognicore/recipeset/pkg/recipeset/store"
)

// Ext is the extension of files written by this store.
const Ext = "db"

// sqliteStore writes one SQLite file per split into a directory.
type sqliteStore struct {
	dir string

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Open returns a store rooted at dir, creating it if needed.
func Open(dir string) (store.Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &sqliteStore{dir: dir, entropy: ulid.Monotonic(rand.Reader, 0)}, nil
}

// Close is a no-op; each Save and Load owns its connection.
func (s *sqliteStore) Close() error {
	return nil
}

// Path returns the file written for name.
func (s *sqliteStore) Path(name string) string {
	return filepath.Join(s.dir, store.FileName(name, Ext))
}

func openDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	created_at TEXT NOT NULL,
	row_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS clean_rows (
	pos INTEGER PRIMARY KEY,
	paragraph TEXT NOT NULL,
	remove_stop_words TEXT NOT NULL,
	sent_count INTEGER NOT NULL,
	num_count INTEGER NOT NULL,
	clean_paragraph_len INTEGER NOT NULL,
	verb_count INTEGER NOT NULL,
	contains_pron INTEGER NOT NULL,
	label INTEGER NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Save replaces the table stored under name.
func (s *sqliteStore) Save(ctx context.Context, name string, rows []features.EnrichedRow) (string, error) {
	path := s.Path(name)
	db, err := openDB(ctx, path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM clean_rows`); err != nil {
		return "", err
	}

	const stmt = `
INSERT INTO clean_rows (pos, paragraph, remove_stop_words, sent_count, num_count,
	clean_paragraph_len, verb_count, contains_pron, label)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	ins, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return "", err
	}
	defer ins.Close()

	for i, r := range store.Project(rows) {
		if _, err := ins.ExecContext(ctx, i, r.Paragraph, r.RemoveStopWords, r.SentCount, r.NumCount,
			r.CleanParagraphLen, r.VerbCount, r.ContainsPron, int(r.Label)); err != nil {
			return "", fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, name, created_at, row_count) VALUES (?, ?, ?, ?)`,
		s.newID(), name, time.Now().UTC().Format(time.RFC3339), len(rows),
	); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads the table stored under name.
func (s *sqliteStore) Load(ctx context.Context, name string) ([]store.CleanRow, error) {
	path := s.Path(name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, internalerr.ErrNotFound)
		}
		return nil, err
	}

	db, err := openDB(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
SELECT paragraph, remove_stop_words, sent_count, num_count, clean_paragraph_len,
	verb_count, contains_pron, label
FROM clean_rows ORDER BY pos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.CleanRow
	for rows.Next() {
		var r store.CleanRow
		var label int
		if err := rows.Scan(&r.Paragraph, &r.RemoveStopWords, &r.SentCount, &r.NumCount,
			&r.CleanParagraphLen, &r.VerbCount, &r.ContainsPron, &label); err != nil {
			return nil, err
		}
		r.Label = dataset.Label(label)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Now(), s.entropy).String()
}
