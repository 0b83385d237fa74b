//go:build !multiconn_nomssql

package multiconn

import (
	"context"
	"database/sql"

	_ "github.com/microsoft/go-mssqldb" // registers as "sqlserver"
)

func init() {
	registerBuilder(MSSQL, buildMSSQLPool)
}

func buildMSSQLPool(ctx context.Context, cfg ConnectionConfig, s Settings) (pool, error) {
	return openSQLPool(ctx, MSSQL, "sqlserver", cfg, s)
}

// AcquireMSSQL checks out a dedicated connection from the SQL Server pool
// registered under name. The caller releases it with Conn.Close.
func (r *Registry) AcquireMSSQL(ctx context.Context, name string) (*sql.Conn, error) {
	return r.acquireSQL(ctx, MSSQL, name)
}

// MSSQLDB hands out the underlying *sql.DB registered under name.
func (r *Registry) MSSQLDB(name string) (*sql.DB, error) {
	return r.sqlDB(MSSQL, name)
}
