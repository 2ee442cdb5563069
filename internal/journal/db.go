package journal

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/broadside/sim/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DB wraps a pgx connection pool.
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

func NewDB(ctx context.Context, cfg config.JournalConfig, log *zap.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &DB{Pool: pool, log: log}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}

// Migrate applies all pending journal migrations.
func (db *DB) Migrate(ctx context.Context) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// PostgresRecorder stores runs in the runs table.
type PostgresRecorder struct {
	db *DB
}

func NewPostgresRecorder(db *DB) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

func (r *PostgresRecorder) Record(ctx context.Context, run Run) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO runs (id, seed, kill_score, score, distance, elapsed_ms, tier, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		run.ID, run.Seed, run.KillScore, run.Score, run.Distance,
		run.Elapsed.Milliseconds(), run.Tier, run.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

func (r *PostgresRecorder) Best(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, seed, kill_score, score, distance, elapsed_ms, tier, ended_at
		 FROM runs ORDER BY score DESC, ended_at ASC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query best runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		var elapsedMS int64
		if err := rows.Scan(&run.ID, &run.Seed, &run.KillScore, &run.Score, &run.Distance,
			&elapsedMS, &run.Tier, &run.EndedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		out = append(out, run)
	}
	return out, rows.Err()
}
