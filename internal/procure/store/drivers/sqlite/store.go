// Package sqlite implements store.Store on an embedded sqlite database
// using the pure-Go modernc driver. Timestamps are stored as unix epoch
// milliseconds so the conditional lifecycle updates compare integers,
// and attachment lists are stored as JSON text.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/upvn/procure/internal/procure/store"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx, so
// every repository works unchanged inside or outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	q  dbtx
}

var _ store.Store = (*Store)(nil)

// New opens (or creates) the sqlite database at path. Use ":memory:" for
// an ephemeral database in tests.
func New(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// The modernc driver serialises access per connection; a single
	// connection sidesteps table-lock errors under concurrent writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return &Store{db: db, q: db}, nil
}

func (s *Store) Users() store.Users             { return &usersRepo{q: s.q} }
func (s *Store) Projects() store.Projects       { return &projectsRepo{q: s.q} }
func (s *Store) Invitations() store.Invitations { return &invitationsRepo{q: s.q} }
func (s *Store) Bids() store.Bids               { return &bidsRepo{q: s.q} }
func (s *Store) Categories() store.Categories   { return &categoriesRepo{q: s.q} }

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// mapNotFound converts driver-level row misses into the store sentinel.
func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint converts unique/primary key violations into the store
// sentinel so services can branch on errors.Is.
func mapConstraint(err error) error {
	var se *sqlitedrv.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return store.ErrAlreadyExists
		}
	}
	return err
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func encodeStrings(s []string) (string, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode string list: %w", err)
	}
	return string(raw), nil
}

func decodeStrings(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var s []string
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("decode string list: %w", err)
	}
	return s, nil
}
