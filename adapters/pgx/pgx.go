// Package pgx provides a Postgres-backed core.KeyValueStore for server-side
// consumers of the SDK (bots, integration workers) that want sessions to
// survive restarts and be shared across instances.
package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mandiconnect/mandi-go/core"
)

// Store implements core.KeyValueStore over a two-column table. SetMany
// runs in one transaction, which is what gives the session store its
// all-or-nothing login write.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

var _ core.KeyValueStore = (*Store)(nil)

// New creates a Store and ensures its table exists.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	s := &Store{pool: pool, table: "mandi_session_store"}

	_, err := pool.Exec(ctx, fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (key TEXT PRIMARY KEY, value TEXT NOT NULL)`, s.table))
	if err != nil {
		return nil, fmt.Errorf("create session store table: %w", err)
	}
	return s, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, s.table), key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", core.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetMany(ctx context.Context, items map[string]string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin session write: %w", err)
	}
	defer tx.Rollback(ctx)

	for key, value := range items {
		_, err := tx.Exec(ctx, fmt.Sprintf(
			`INSERT INTO %s (key, value) VALUES ($1, $2)
			 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, s.table), key, value)
		if err != nil {
			return fmt.Errorf("set %q: %w", key, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) RemoveMany(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE key = ANY($1)`, s.table), keys)
	if err != nil {
		return fmt.Errorf("remove keys: %w", err)
	}
	return nil
}
