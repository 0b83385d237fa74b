package multiconn_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ekaya-inc/multiconn/pkg/multiconn"
	"github.com/ekaya-inc/multiconn/pkg/testhelpers"
)

func TestIntegration_PostgresTenantSearchPath(t *testing.T) {
	pg := testhelpers.GetPostgres(t)
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	// Bootstrap registry without a tenant schema to provision the schemas.
	admin, err := multiconn.NewRegistry(ctx, []multiconn.ConnectionConfig{
		{
			Name:     "admin",
			Backend:  multiconn.Postgres,
			Database: pg.Database,
			HostURL:  pg.HostURL,
			PoolSize: 2,
		},
	}, multiconn.Settings{}, logger)
	require.NoError(t, err)
	defer admin.Close()

	conn, err := admin.AcquirePostgres(ctx, "admin")
	require.NoError(t, err)
	for _, schema := range []string{"tenant_a", "tenant_b"} {
		_, err = conn.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+schema)
		require.NoError(t, err)
	}
	conn.Release()

	reg, err := multiconn.NewRegistry(ctx, []multiconn.ConnectionConfig{
		{
			Name:     "tenant_a",
			Backend:  multiconn.Postgres,
			Database: pg.Database,
			HostURL:  pg.HostURL,
			Schema:   "tenant_a",
			PoolSize: 2,
		},
		{
			Name:     "tenant_b",
			Backend:  multiconn.Postgres,
			Database: pg.Database,
			HostURL:  pg.HostURL,
			Schema:   "tenant_b",
			PoolSize: 2,
		},
	}, multiconn.Settings{}, logger)
	require.NoError(t, err)
	defer reg.Close()

	for _, tenant := range []string{"tenant_a", "tenant_b"} {
		conn, err := reg.AcquirePostgres(ctx, tenant)
		require.NoError(t, err, "acquire %s", tenant)

		var searchPath string
		require.NoError(t, conn.QueryRow(ctx, "SHOW search_path").Scan(&searchPath))
		assert.True(t, strings.HasPrefix(searchPath, tenant),
			"tenant schema must lead the search path, got %q", searchPath)
		assert.Contains(t, searchPath, "public", "fallback must stay in the search path")

		// Unqualified references resolve into the tenant schema.
		var current string
		require.NoError(t, conn.QueryRow(ctx, "SELECT current_schema()").Scan(&current))
		assert.Equal(t, tenant, current)

		conn.Release()
	}

	// The same name through the wrong accessor never yields a connection.
	_, err = reg.AcquireMySQL(ctx, "tenant_a")
	assert.ErrorIs(t, err, multiconn.ErrWrongBackend)
}

func TestIntegration_MySQLAcquire(t *testing.T) {
	my := testhelpers.GetMySQL(t)
	ctx := context.Background()

	reg, err := multiconn.NewRegistry(ctx, []multiconn.ConnectionConfig{
		{
			Name:     "analytics",
			Backend:  multiconn.MySQL,
			Database: my.Database,
			HostURL:  my.HostURL,
			PoolSize: 2,
		},
	}, multiconn.Settings{}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer reg.Close()

	conn, err := reg.AcquireMySQL(ctx, "analytics")
	require.NoError(t, err)
	defer conn.Close()

	var current string
	require.NoError(t, conn.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&current))
	assert.Equal(t, my.Database, current)
}

func TestIntegration_MixedRegistry(t *testing.T) {
	pg := testhelpers.GetPostgres(t)
	my := testhelpers.GetMySQL(t)
	dir := t.TempDir()
	ctx := context.Background()

	reg, err := multiconn.NewRegistry(ctx, []multiconn.ConnectionConfig{
		{
			Name:     "main_pg",
			Backend:  multiconn.Postgres,
			Database: pg.Database,
			HostURL:  pg.HostURL,
			PoolSize: 2,
		},
		{
			Name:     "analytics",
			Backend:  multiconn.MySQL,
			Database: my.Database,
			HostURL:  my.HostURL,
			PoolSize: 2,
		},
		{
			Name:     "cache",
			Backend:  multiconn.SQLite,
			Database: "cache.db",
			HostURL:  dir + "/",
			PoolSize: 1,
		},
	}, multiconn.Settings{}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer reg.Close()

	require.NoError(t, reg.Ping(ctx))

	stats := reg.Stats()
	assert.Equal(t, 3, stats.Connections)
	assert.Equal(t, 1, stats.ByBackend["postgres"])
	assert.Equal(t, 1, stats.ByBackend["mysql"])
	assert.Equal(t, 1, stats.ByBackend["sqlite"])

	assert.Equal(t, []string{"analytics", "cache", "main_pg"}, reg.Names())
}
