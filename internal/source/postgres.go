package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrConnect marks failures to reach the server, as opposed to query
// failures.
var ErrConnect = errors.New("cannot connect to database")

// connect opens a single-connection pool; a source runs one query and
// closes it.
func connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid connection URL: %w", err)
	}

	config.MaxConns = 1
	config.MinConns = 0
	config.MaxConnLifetime = time.Minute
	config.MaxConnIdleTime = 10 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect: %w", ErrConnect, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %w", ErrConnect, err)
	}
	return pool, nil
}

// QueryPostgres runs query against the database at dsn and loads every
// returned row.
func QueryPostgres(ctx context.Context, dsn, query string) (*frame.Table, error) {
	pool, err := connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	var data [][]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		data = append(data, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return FromValues(names, data)
}
