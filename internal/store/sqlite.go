package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type sqliteBackend struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS responses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT UNIQUE NOT NULL,
    created_at INTEGER NOT NULL DEFAULT (unixepoch()),
    data TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_responses_created ON responses(created_at);
`

func openSQLite(dbPath string) (*sqliteBackend, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Apply schema
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &sqliteBackend{db: db}, nil
}

func (s *sqliteBackend) close() error {
	return s.db.Close()
}

func (s *sqliteBackend) insert(ctx context.Context, sessionID string, createdAt time.Time, data []byte) (bool, error) {
	// The unique index on session_id makes re-saving a session a no-op.
	result, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO responses (session_id, created_at, data) VALUES (?, ?, ?)`,
		sessionID, createdAt.Unix(), string(data),
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *sqliteBackend) rows(ctx context.Context) ([]row, error) {
	rs, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, data FROM responses ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var out []row
	for rs.Next() {
		var r row
		var data string
		if err := rs.Scan(&r.id, &r.sessionID, &data); err != nil {
			return nil, err
		}
		r.data = []byte(data)
		out = append(out, r)
	}
	return out, rs.Err()
}

func (s *sqliteBackend) update(ctx context.Context, id int64, data []byte) error {
	result, err := s.db.ExecContext(ctx, `UPDATE responses SET data = ? WHERE id = ?`, string(data), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteBackend) remove(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM responses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteBackend) count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM responses`).Scan(&n)
	return n, err
}

func (s *sqliteBackend) sizeBytes(ctx context.Context) (int64, error) {
	var size int64
	err := s.db.QueryRowContext(ctx,
		`SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()`,
	).Scan(&size)
	return size, err
}
