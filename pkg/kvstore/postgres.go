package kvstore

import (
	"context"
	"database/sql"
	"errors"

	"skytrip/pkg/db"
)

type postgresStore struct {
	client db.SQLExecutor
}

// NewPostgresStore returns a Store backed by the kv_entries table. The table
// is created by the migrations under db/migrations.
func NewPostgresStore(client db.SQLExecutor) Store {
	return &postgresStore{client: client}
}

func (p *postgresStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	row := p.client.QueryRowContext(ctx,
		"SELECT value FROM kv_entries WHERE key = $1", key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (p *postgresStore) Set(ctx context.Context, key string, value string) error {
	_, err := p.client.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value)
	return err
}

func (p *postgresStore) Del(ctx context.Context, key string) error {
	_, err := p.client.ExecContext(ctx,
		"DELETE FROM kv_entries WHERE key = $1", key)
	return err
}
