//go:build !multiconn_nomysql

package multiconn

import (
	"context"
	"database/sql"

	"github.com/go-sql-driver/mysql"
)

func init() {
	registerBuilder(MySQL, buildMySQLPool)
}

func buildMySQLPool(ctx context.Context, cfg ConnectionConfig, s Settings) (pool, error) {
	// ParseDSN up front so a malformed DSN fails the build without a
	// network round trip, mirroring pgxpool.ParseConfig on the pg path.
	if _, err := mysql.ParseDSN(cfg.ConnURL()); err != nil {
		return nil, err
	}
	return openSQLPool(ctx, MySQL, "mysql", cfg, s)
}

// AcquireMySQL checks out a dedicated connection from the MySQL pool
// registered under name. The caller releases it with Conn.Close.
func (r *Registry) AcquireMySQL(ctx context.Context, name string) (*sql.Conn, error) {
	return r.acquireSQL(ctx, MySQL, name)
}

// MySQLDB hands out the underlying *sql.DB registered under name.
func (r *Registry) MySQLDB(name string) (*sql.DB, error) {
	return r.sqlDB(MySQL, name)
}
