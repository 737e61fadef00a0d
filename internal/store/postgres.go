package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresBackend keeps the collection in the same shape the hosted
// deployment used: one row per response with the document in a jsonb
// column.
type postgresBackend struct {
	pool *pgxpool.Pool
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS responses (
    id BIGSERIAL PRIMARY KEY,
    session_id TEXT UNIQUE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    data JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_responses_created ON responses(created_at);
`

func openPostgres(ctx context.Context, dsn string) (*postgresBackend, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &postgresBackend{pool: pool}, nil
}

func (p *postgresBackend) close() error {
	p.pool.Close()
	return nil
}

func (p *postgresBackend) insert(ctx context.Context, sessionID string, createdAt time.Time, data []byte) (bool, error) {
	tag, err := p.pool.Exec(ctx,
		`INSERT INTO responses (session_id, created_at, data) VALUES ($1, $2, $3)
		 ON CONFLICT (session_id) DO NOTHING`,
		sessionID, createdAt, data,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (p *postgresBackend) rows(ctx context.Context) ([]row, error) {
	rs, err := p.pool.Query(ctx,
		`SELECT id, session_id, data FROM responses ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var out []row
	for rs.Next() {
		var r row
		if err := rs.Scan(&r.id, &r.sessionID, &r.data); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rs.Err()
}

func (p *postgresBackend) update(ctx context.Context, id int64, data []byte) error {
	tag, err := p.pool.Exec(ctx, `UPDATE responses SET data = $1 WHERE id = $2`, data, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *postgresBackend) remove(ctx context.Context, id int64) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM responses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *postgresBackend) count(ctx context.Context) (int, error) {
	var n int
	err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM responses`).Scan(&n)
	return n, err
}

func (p *postgresBackend) sizeBytes(ctx context.Context) (int64, error) {
	var size int64
	err := p.pool.QueryRow(ctx, `SELECT pg_total_relation_size('responses')`).Scan(&size)
	return size, err
}
