// Package store persists completed survey records. Each record is kept
// as one JSON document keyed by its session id, so the stored shape is
// exactly the wire shape and the two backends (embedded SQLite, remote
// Postgres) stay interchangeable.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/francescabuggio/ecocart/internal/survey"
)

var ErrNotFound = errors.New("not found")

// Drivers accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// row is one stored document with its backend identity.
type row struct {
	id        int64
	sessionID string
	data      []byte
}

// backend is the minimal row-level contract a storage engine provides.
type backend interface {
	insert(ctx context.Context, sessionID string, createdAt time.Time, data []byte) (bool, error)
	rows(ctx context.Context) ([]row, error)
	update(ctx context.Context, id int64, data []byte) error
	remove(ctx context.Context, id int64) error
	count(ctx context.Context) (int, error)
	sizeBytes(ctx context.Context) (int64, error)
	close() error
}

// Store exposes the response collection over a backend.
type Store struct {
	b backend
}

// Open connects the configured backend. For sqlite the dsn is a file
// path; for postgres a connection string.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite:
		b, err := openSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return &Store{b: b}, nil
	case DriverPostgres:
		b, err := openPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return &Store{b: b}, nil
	default:
		return nil, fmt.Errorf("unknown driver %q", driver)
	}
}

func (s *Store) Close() error {
	return s.b.close()
}

// SaveResponse persists a completed record. Saving a session id that is
// already stored is a no-op; the return value reports whether a row was
// actually written.
func (s *Store) SaveResponse(ctx context.Context, rec survey.Record) (bool, error) {
	if rec.SessionID == "" {
		return false, errors.New("record has no session id")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("failed to marshal record: %w", err)
	}
	saved, err := s.b.insert(ctx, rec.SessionID, time.Now(), data)
	if err != nil {
		return false, fmt.Errorf("failed to save response: %w", err)
	}
	return saved, nil
}

// ListResponses returns all stored records, newest first. Rows whose
// document no longer parses are skipped rather than failing the whole
// read.
func (s *Store) ListResponses(ctx context.Context) ([]survey.Record, error) {
	rows, err := s.b.rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	records := make([]survey.Record, 0, len(rows))
	for _, r := range rows {
		var rec survey.Record
		if err := json.Unmarshal(r.data, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// CountResponses returns the number of stored records.
func (s *Store) CountResponses(ctx context.Context) (int, error) {
	return s.b.count(ctx)
}

// SizeBytes reports the storage footprint for the health endpoint.
func (s *Store) SizeBytes(ctx context.Context) (int64, error) {
	return s.b.sizeBytes(ctx)
}
