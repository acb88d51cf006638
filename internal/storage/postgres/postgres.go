package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"filmorate/proj/internal/storage"
)

type PostgresDB struct {
	Conn *pgxpool.Pool
}

const (
	ErrConflictCode   = "23505"
	ErrForeignKeyCode = "23503"
)

func New(ctx context.Context, dsn string, maxConns int, maxConnIdleTime time.Duration) (*PostgresDB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = int32(maxConns)
	cfg.MaxConnIdleTime = maxConnIdleTime
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}
	return &PostgresDB{Conn: pool}, nil
}

// constraintErr maps broken uniqueness or referential-integrity
// constraints to the storage sentinel; anything else passes through.
func constraintErr(err error) error {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) && (pgxErr.Code == ErrConflictCode || pgxErr.Code == ErrForeignKeyCode) {
		return storage.ErrConflict
	}
	return err
}
