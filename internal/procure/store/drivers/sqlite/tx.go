package sqlite

import (
	"context"
	"fmt"

	"github.com/upvn/procure/internal/procure/store"
)

// txStore scopes every repository to a single *sql.Tx.
type txStore struct {
	*Store
	tx interface {
		Commit() error
		Rollback() error
	}
}

var _ store.Tx = (*txStore)(nil)

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Tx starts a read/write transaction. The caller owns Commit/Rollback.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &txStore{
		Store: &Store{db: s.db, q: tx},
		tx:    tx,
	}, nil
}

// WithTx runs fn inside a transaction, committing when fn returns nil
// and rolling back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback() // no-op after a successful commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
