// Package sqlstore keeps vote buckets and visitor ballots in SQL tables.
// It runs on SQLite (modernc.org/sqlite) and PostgreSQL (lib/pq).
package sqlstore

import (
	"SchoolPick/internal/ballot"
	"context"
	"database/sql"
	"errors"
	"fmt"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
	"strconv"
	"strings"
	"sync"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Store struct {
	db     *sql.DB
	driver string

	mu    sync.Mutex
	ready bool
}

// New wraps an open handle whose schema the caller manages. driver
// selects the placeholder style.
func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver, ready: true}
}

// Open prepares a handle. Nothing is dialled until first use, which also
// creates the schema when missing.
func Open(driver, dsn string) (*Store, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported sql driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// One connection: serialises writers and keeps :memory: databases alive.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}
	return &Store{db: db, driver: driver}, nil
}

// ensureSchema runs CreateSchema once it first succeeds.
func (s *Store) ensureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := s.CreateSchema(ctx); err != nil {
		return err
	}
	s.ready = true
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSchema is safe to call multiple times.
func (s *Store) CreateSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS vote_counter (
    bucket TEXT NOT NULL,
    school TEXT NOT NULL,
    votes BIGINT NOT NULL DEFAULT 0,
    PRIMARY KEY (bucket, school)
)`,
	`CREATE TABLE IF NOT EXISTS ballot_state (
    visitor TEXT NOT NULL,
    name TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (visitor, name)
)`,
}

const (
	incrementQuery = `INSERT INTO vote_counter (bucket, school, votes) VALUES (?, ?, ?)
ON CONFLICT (bucket, school) DO UPDATE SET votes = vote_counter.votes + excluded.votes`
	readQuery        = `SELECT school, votes FROM vote_counter WHERE bucket = ?`
	ballotGetQuery   = `SELECT value FROM ballot_state WHERE visitor = ? AND name = ?`
	ballotSetQuery   = `INSERT INTO ballot_state (visitor, name, value) VALUES (?, ?, ?)
ON CONFLICT (visitor, name) DO UPDATE SET value = excluded.value`
	ballotRemoveQuery = `DELETE FROM ballot_state WHERE visitor = ? AND name = ?`
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) Increment(ctx context.Context, bucket, school string, delta int64) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	return s.increment(ctx, s.db, bucket, school, delta)
}

func (s *Store) IncrementPair(ctx context.Context, first, second, school string, delta int64) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, bucket := range []string{first, second} {
		if err = s.increment(ctx, tx, bucket, school, delta); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) increment(ctx context.Context, ex execer, bucket, school string, delta int64) error {
	if _, err := ex.ExecContext(ctx, s.rebind(incrementQuery), bucket, school, delta); err != nil {
		return fmt.Errorf("increment %s.%s: %w", bucket, school, err)
	}
	return nil
}

func (s *Store) Read(ctx context.Context, bucket string) (map[string]int64, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(readQuery), bucket)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", bucket, err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			school string
			votes  int64
		)
		if err := rows.Scan(&school, &votes); err != nil {
			return nil, fmt.Errorf("scan %s: %w", bucket, err)
		}
		counts[school] = votes
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", bucket, err)
	}
	return counts, nil
}

func (s *Store) Scope(visitorID string) ballot.Storage {
	return &scope{store: s, visitor: visitorID}
}

type scope struct {
	store   *Store
	visitor string
}

func (s *scope) Get(ctx context.Context, key string) (string, bool, error) {
	if err := s.store.ensureSchema(ctx); err != nil {
		return "", false, err
	}
	var value string
	err := s.store.db.QueryRowContext(ctx, s.store.rebind(ballotGetQuery), s.visitor, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("ballot get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *scope) Set(ctx context.Context, key, value string) error {
	if err := s.store.ensureSchema(ctx); err != nil {
		return err
	}
	if _, err := s.store.db.ExecContext(ctx, s.store.rebind(ballotSetQuery), s.visitor, key, value); err != nil {
		return fmt.Errorf("ballot set %s: %w", key, err)
	}
	return nil
}

func (s *scope) Remove(ctx context.Context, key string) error {
	if err := s.store.ensureSchema(ctx); err != nil {
		return err
	}
	if _, err := s.store.db.ExecContext(ctx, s.store.rebind(ballotRemoveQuery), s.visitor, key); err != nil {
		return fmt.Errorf("ballot remove %s: %w", key, err)
	}
	return nil
}

// rebind turns ? placeholders into $1, $2, ... for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
