package multiconn

import (
	"context"
	"database/sql"
	"time"
)

const (
	DefaultMaxConnLifetime = time.Hour
	DefaultMaxConnIdleTime = 30 * time.Minute
)

// Settings holds pool tuning applied on top of each config's PoolSize.
// The zero value means the defaults above.
type Settings struct {
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

func (s Settings) withDefaults() Settings {
	if s.MaxConnLifetime <= 0 {
		s.MaxConnLifetime = DefaultMaxConnLifetime
	}
	if s.MaxConnIdleTime <= 0 {
		s.MaxConnIdleTime = DefaultMaxConnIdleTime
	}
	return s
}

// pool is the tagged union over backend pool types. One concrete wrapper
// exists per backend; the tag is what the accessors check before handing
// out a driver-typed connection.
type pool interface {
	backend() Backend
	Ping(ctx context.Context) error
	Close() error
}

// poolBuilder materializes one pool from a config. Each backend registers
// its builder from an init function in its own build-tagged file, so a
// backend that is compiled out is simply absent from the map.
type poolBuilder func(ctx context.Context, cfg ConnectionConfig, s Settings) (pool, error)

var builders = make(map[Backend]poolBuilder)

func registerBuilder(b Backend, fn poolBuilder) {
	builders[b] = fn
}

// sqlPool wraps a database/sql pool for the backends whose drivers bind
// through database/sql (MySQL, SQLite, SQL Server). The kind field keeps
// the wrappers distinguishable at lookup time.
type sqlPool struct {
	kind Backend
	db   *sql.DB
}

func (p *sqlPool) backend() Backend { return p.kind }

func (p *sqlPool) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

func (p *sqlPool) Close() error { return p.db.Close() }

// openSQLPool opens and verifies a database/sql pool bounded to the
// config's PoolSize. The ping makes build failures (bad address, bad
// credentials) surface during NewRegistry rather than on first checkout.
func openSQLPool(ctx context.Context, kind Backend, driverName string, cfg ConnectionConfig, s Settings) (pool, error) {
	db, err := sql.Open(driverName, cfg.ConnURL())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.PoolSize)
	db.SetConnMaxLifetime(s.MaxConnLifetime)
	db.SetConnMaxIdleTime(s.MaxConnIdleTime)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqlPool{kind: kind, db: db}, nil
}

// acquireSQL checks out a dedicated connection for a database/sql backed
// backend. The caller releases it with Conn.Close.
func (r *Registry) acquireSQL(ctx context.Context, want Backend, name string) (*sql.Conn, error) {
	p, err := r.lookup(want, name)
	if err != nil {
		return nil, err
	}
	conn, err := p.(*sqlPool).db.Conn(ctx)
	if err != nil {
		return nil, &CheckoutError{Backend: want, Name: name, Err: err}
	}
	return conn, nil
}

// sqlDB hands out the underlying *sql.DB for a database/sql backed
// backend, for hosts that want the pool itself rather than a checkout.
func (r *Registry) sqlDB(want Backend, name string) (*sql.DB, error) {
	p, err := r.lookup(want, name)
	if err != nil {
		return nil, err
	}
	return p.(*sqlPool).db, nil
}
