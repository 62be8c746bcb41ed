package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chotalink/chotalink/internal/link"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists the collection as a single jsonb row keyed by
// CollectionKey.
type PostgresStore struct {
	pool *pgxpool.Pool
	key  string
}

// NewPostgresStore creates a Postgres-backed store, bootstrapping its table.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	schema := `
		CREATE TABLE IF NOT EXISTS link_collections (
			key        text PRIMARY KEY,
			data       jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)
	`

	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("bootstrap link_collections: %w", err)
	}

	return &PostgresStore{pool: pool, key: CollectionKey}, nil
}

func (p *PostgresStore) Load(ctx context.Context) ([]link.ShortLink, error) {
	query := `SELECT data FROM link_collections WHERE key = $1`

	var raw []byte

	err := p.pool.QueryRow(ctx, query, p.key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []link.ShortLink{}, nil
		}

		return nil, err
	}

	var links []link.ShortLink
	if err := json.Unmarshal(raw, &links); err != nil {
		// Corrupt content is recovered by starting empty.
		return []link.ShortLink{}, nil
	}

	return links, nil
}

func (p *PostgresStore) Save(ctx context.Context, links []link.ShortLink) error {
	raw, err := json.Marshal(links)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO link_collections (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`

	_, err = p.pool.Exec(ctx, query, p.key, raw)

	return err
}
