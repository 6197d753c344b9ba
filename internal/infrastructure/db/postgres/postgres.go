package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for establishing the PostgreSQL pools.
type Config struct {
	URL          string
	ReadPoolMax  int
	WritePoolMax int
	Timeout      time.Duration
}

// Pools holds the two logical access paths to the accounts table. Read runs
// with default_transaction_read_only=on and must never be used for mutation;
// Write is the only path allowed to change rows.
type Pools struct {
	Read  *pgxpool.Pool
	Write *pgxpool.Pool
}

// Connect establishes both pools against the same database and verifies
// connectivity with a ping on each. A default timeout is applied when none is
// provided.
func Connect(ctx context.Context, cfg Config) (*Pools, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	readCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres config: %w", err)
	}
	readCfg.MaxConns = poolMax(cfg.ReadPoolMax)
	// Relaxed read-only path: safe for concurrent fan-out, can never mutate.
	readCfg.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"

	read, err := pgxpool.NewWithConfig(connectCtx, readCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres read pool: %w", err)
	}
	if err := read.Ping(connectCtx); err != nil {
		read.Close()
		return nil, fmt.Errorf("postgres read ping: %w", err)
	}

	writeCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		read.Close()
		return nil, fmt.Errorf("postgres config: %w", err)
	}
	writeCfg.MaxConns = poolMax(cfg.WritePoolMax)

	write, err := pgxpool.NewWithConfig(connectCtx, writeCfg)
	if err != nil {
		read.Close()
		return nil, fmt.Errorf("postgres write pool: %w", err)
	}
	if err := write.Ping(connectCtx); err != nil {
		read.Close()
		write.Close()
		return nil, fmt.Errorf("postgres write ping: %w", err)
	}

	return &Pools{Read: read, Write: write}, nil
}

// Close releases both pools.
func (p *Pools) Close() {
	p.Read.Close()
	p.Write.Close()
}

func poolMax(n int) int32 {
	if n <= 0 {
		return 10
	}
	return int32(n)
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS accounts (
  username      TEXT PRIMARY KEY,
  created_at    TIMESTAMPTZ NOT NULL,
  last_seen_at  TIMESTAMPTZ NOT NULL,
  role          INTEGER NOT NULL,
  CONSTRAINT accounts_role_check CHECK (role IN (0, 1, 2)),
  CONSTRAINT accounts_seen_after_created CHECK (created_at <= last_seen_at)
);
`

// Migrate creates the accounts table. Idempotent; runs on the write pool.
func (p *Pools) Migrate(ctx context.Context) error {
	if _, err := p.Write.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
