// File: internal/database/postgres.go
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pgxpoolNew = pgxpool.New
	pingPool   = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
)

var _ DB = (*pgxpool.Pool)(nil)

// NewPgxPool 建立 pgx 連線池；建立後先 Ping 一次，連不上時關閉連線池並回報
func NewPgxPool(ctx context.Context, url string) (DB, error) {
	pool, err := pgxpoolNew(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("NewPgxPool: %w", err)
	}
	if err := pingPool(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("NewPgxPool: ping: %w", err)
	}
	return pool, nil
}
