/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package repo

import (
    "context"
    "errors"
    "time"

    "github.com/ema1103/timeshit-backend/internal/config"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/rs/zerolog"
)

// DB holds the Postgres pool. No worklog code path queries it; it is opened
// from the DB_* configuration and only the health check touches it.
type DB struct {
    Pool *pgxpool.Pool
    log  zerolog.Logger
}

// Open creates the pool. Connections are established lazily, so this only
// fails on an unparsable DSN.
func Open(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*DB, error) {
    pool, err := pgxpool.New(ctx, cfg.DBDSN())
    if err != nil { return nil, err }
    return &DB{Pool: pool, log: logger}, nil
}

// Ping tolerates a nil receiver so callers can report an unopened pool
// instead of panicking.
func (d *DB) Ping(ctx context.Context) error {
    if d == nil || d.Pool == nil { return errors.New("db: pool not open") }
    ctx2, cancel := context.WithTimeout(ctx, 2*time.Second)
    defer cancel()
    return d.Pool.Ping(ctx2)
}

func (d *DB) Close() { d.Pool.Close() }
