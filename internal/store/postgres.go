package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// OpenPostgres connects a pgx pool to databaseURL, migrates the schema and returns a
// store that queries through the pool.
func OpenPostgres(ctx context.Context, databaseURL string) (*SQLStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := migrate(db, postgresDialect, "migrations/postgres"); err != nil {
		db.Close()
		pool.Close()
		return nil, err
	}

	return &SQLStore{db: db, dollar: true, closers: []func(){pool.Close}}, nil
}
