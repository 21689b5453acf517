package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nikolayk812/carrito/internal/port"
)

type postgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgres backs the cart with a cart_kv table, see migrations/.
func NewPostgres(pool *pgxpool.Pool) (port.CartStorage, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &postgresStorage{pool: pool}, nil
}

func (s *postgresStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	var value string
	err := s.pool.QueryRow(ctx,
		"SELECT value FROM cart_kv WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("pool.QueryRow: %w", err)
	}

	return value, true, nil
}

func (s *postgresStorage) Set(ctx context.Context, key string, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO cart_kv (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}

	return nil
}

func (s *postgresStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	_, err := s.pool.Exec(ctx, "DELETE FROM cart_kv WHERE key = $1", key)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}

	return nil
}
