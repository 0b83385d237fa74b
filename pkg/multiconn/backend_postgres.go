//go:build !multiconn_nopostgres

package multiconn

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

func init() {
	registerBuilder(Postgres, buildPostgresPool)
}

// postgresPool wraps pgxpool rather than database/sql, so hosts get the
// native pgx query path and the pool passes the options parameter carrying
// the search_path directive through to the server.
type postgresPool struct {
	pool *pgxpool.Pool
}

func (p *postgresPool) backend() Backend { return Postgres }

func (p *postgresPool) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *postgresPool) Close() error {
	p.pool.Close()
	return nil
}

func buildPostgresPool(ctx context.Context, cfg ConnectionConfig, s Settings) (pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnURL())
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = int32(cfg.PoolSize)
	poolConfig.MaxConnLifetime = s.MaxConnLifetime
	poolConfig.MaxConnIdleTime = s.MaxConnIdleTime

	pl, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pl.Ping(ctx); err != nil {
		pl.Close()
		return nil, err
	}
	return &postgresPool{pool: pl}, nil
}

// AcquirePostgres checks out a connection from the PostgreSQL pool
// registered under name. The caller releases it with Conn.Release; pgx
// returns it to the pool on all paths from there. Acquire blocks per the
// pool's own exhaustion policy, bounded only by ctx.
func (r *Registry) AcquirePostgres(ctx context.Context, name string) (*pgxpool.Conn, error) {
	p, err := r.lookup(Postgres, name)
	if err != nil {
		return nil, err
	}
	conn, err := p.(*postgresPool).pool.Acquire(ctx)
	if err != nil {
		return nil, &CheckoutError{Backend: Postgres, Name: name, Err: err}
	}
	return conn, nil
}

// PostgresPool hands out the underlying *pgxpool.Pool registered under
// name, for hosts that want the pool itself rather than a checkout.
func (r *Registry) PostgresPool(name string) (*pgxpool.Pool, error) {
	p, err := r.lookup(Postgres, name)
	if err != nil {
		return nil, err
	}
	return p.(*postgresPool).pool, nil
}
