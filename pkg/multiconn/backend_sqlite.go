//go:build !multiconn_nosqlite

package multiconn

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite" // pure-Go sqlite driver, registers as "sqlite"
)

func init() {
	registerBuilder(SQLite, buildSQLitePool)
}

func buildSQLitePool(ctx context.Context, cfg ConnectionConfig, s Settings) (pool, error) {
	return openSQLPool(ctx, SQLite, "sqlite", cfg, s)
}

// AcquireSQLite checks out a dedicated connection from the SQLite pool
// registered under name. The caller releases it with Conn.Close.
//
// For in-memory configs note the ConnURL contract: every config whose
// HostURL is ":memory:" shares that literal, and what the driver does with
// it decides whether two such configs share storage.
func (r *Registry) AcquireSQLite(ctx context.Context, name string) (*sql.Conn, error) {
	return r.acquireSQL(ctx, SQLite, name)
}

// SQLiteDB hands out the underlying *sql.DB registered under name.
func (r *Registry) SQLiteDB(name string) (*sql.DB, error) {
	return r.sqlDB(SQLite, name)
}
