// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/KonektivaDev/alfaplus-base-saas/internal/logging"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/monitoring"
	"github.com/KonektivaDev/alfaplus-base-saas/internal/tracing"
)

const (
	defaultPage     uint64 = 1
	defaultPageSize uint64 = 100

	// pendingTxTimeout bounds a lazily opened transaction so an abandoned
	// request cannot hold a connection forever.
	pendingTxTimeout = time.Second * 60
)

var txOptions = sql.TxOptions{Isolation: sql.LevelReadCommitted}

type txKey struct{}
type pendingTxKey struct{}

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

// Offset converts a 1-based page parameter into a row offset.
func Offset(pageParam int64, pageSize uint64) uint64 {
	if pageParam <= 0 {
		return (defaultPage - 1) * pageSize
	}
	return uint64(pageParam-1) * pageSize
}

// PageSize clamps a size parameter to the default when unset or invalid.
func PageSize(sizeParam int64) uint64 {
	if sizeParam <= 0 {
		return defaultPageSize
	}
	return uint64(sizeParam)
}

type DBClient struct {
	// pool is the native pgx pool, held so Close can release it.
	pool *pgxpool.Pool
	// db is the database/sql view of the pool, used for transactions.
	db *sql.DB
	// runner executes non-transactional squirrel statements.
	runner sq.BaseRunner

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewDBClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Fatalf("DSN validation failed, shutting down, err: %v", err)
	}

	if cfg.TracingEnabled {
		// otelpgx picks up the global TracerProvider, same as our tracer.
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	// 10% jitter so pooled connections don't all expire at once.
	poolConfig.MaxConnLifetimeJitter = cfg.MaxConnLifetime / 10
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %v", err)
	}

	if cfg.TracingEnabled {
		if err := otelpgx.RecordStats(pool); err != nil {
			return nil, fmt.Errorf("failed to start metrics collection for database: %v", err)
		}
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %v", err)
	}

	return &DBClient{
		pool:    pool,
		db:      db,
		runner:  db,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}, nil
}

// Statement returns a squirrel builder bound to the connection the context
// calls for: a pending WithTx transaction, an explicit transaction, or the
// pool.
func (d *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	if pt := pendingTxFromContext(ctx); pt != nil {
		tx, err := pt.get()
		if err != nil {
			// The statement still runs, just outside the transaction.
			d.logger.Errorf("failed to open pending transaction: %v", err)
		} else {
			return builder.RunWith(tx)
		}
	}

	if tx := TxFromContext(ctx); tx != nil {
		return builder.RunWith(tx)
	}

	return builder.RunWith(d.runner)
}

// TxStatement opens a transaction and returns a builder bound to it. The
// caller owns the commit/rollback.
func (d *DBClient) TxStatement(ctx context.Context) (TxInterface, sq.StatementBuilderType, error) {
	tx, err := d.db.BeginTx(ctx, &txOptions)
	if err != nil {
		return nil, sq.StatementBuilderType{}, err
	}

	return tx, sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(tx), nil
}

// BeginTx opens a transaction and returns a context carrying it, so storage
// calls made with that context join the transaction.
func (d *DBClient) BeginTx(ctx context.Context) (context.Context, TxInterface, error) {
	tx, err := d.db.BeginTx(ctx, &txOptions)
	if err != nil {
		return ctx, nil, err
	}

	return ContextWithTx(ctx, tx), tx, nil
}

// WithTx runs fn inside a transaction that is opened lazily on the first
// Statement call. fn returning an error rolls back; success commits. When fn
// never touches the database, nothing is opened and nothing is committed.
func (d *DBClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	pt := &pendingTx{db: d.db}

	defer func() {
		if pt.started() && !pt.committed {
			if err := pt.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				d.logger.Errorf("failed to rollback transaction: %v", err)
			}
		}
		if pt.cancel != nil {
			pt.cancel()
		}
	}()

	if err := fn(context.WithValue(ctx, pendingTxKey{}, pt)); err != nil {
		return err
	}

	if pt.started() {
		if err := pt.tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %v", err)
		}
		pt.committed = true
	}

	return nil
}

func (d *DBClient) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}

	if d.pool != nil {
		d.pool.Close()
	}
}

// pendingTx is the deferred transaction WithTx plants in the context. The
// real transaction opens on the first get.
type pendingTx struct {
	db        *sql.DB
	tx        TxInterface
	cancel    context.CancelFunc
	committed bool
}

func (pt *pendingTx) get() (TxInterface, error) {
	if pt.tx != nil {
		return pt.tx, nil
	}

	// Detached from the request context so a client disconnect mid-commit
	// cannot abort the transaction; the timeout keeps it bounded instead.
	ctx, cancel := context.WithTimeout(context.Background(), pendingTxTimeout)
	tx, err := pt.db.BeginTx(ctx, &txOptions)
	if err != nil {
		cancel()
		return nil, err
	}

	pt.tx = tx
	pt.cancel = cancel
	return tx, nil
}

func (pt *pendingTx) started() bool {
	return pt.tx != nil
}

// ContextWithTx attaches an explicit transaction to the context.
func ContextWithTx(ctx context.Context, tx TxInterface) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the explicit transaction in the context, or nil.
func TxFromContext(ctx context.Context) TxInterface {
	if tx, ok := ctx.Value(txKey{}).(TxInterface); ok {
		return tx
	}
	return nil
}

func pendingTxFromContext(ctx context.Context) *pendingTx {
	if pt, ok := ctx.Value(pendingTxKey{}).(*pendingTx); ok {
		return pt
	}
	return nil
}
