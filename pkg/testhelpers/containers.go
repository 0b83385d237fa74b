// Package testhelpers starts throwaway database containers for
// integration tests. Containers are shared across the test run and torn
// down with the test process.
package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16-alpine"
	mysqlImage    = "mysql:8"

	dbUser     = "multiconn"
	dbPassword = "test_password"
	dbName     = "test_data"
)

// ServerInfo describes a running database container in the shape the
// registry's ConnectionConfig expects: a HostURL prefix plus the database
// name the server was created with.
type ServerInfo struct {
	Container testcontainers.Container
	HostURL   string
	Database  string
}

var (
	sharedPostgres     *ServerInfo
	sharedPostgresOnce sync.Once
	sharedPostgresErr  error

	sharedMySQL     *ServerInfo
	sharedMySQLOnce sync.Once
	sharedMySQLErr  error
)

// GetPostgres returns a shared PostgreSQL container, started on first use.
func GetPostgres(t *testing.T) *ServerInfo {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedPostgresOnce.Do(func() {
		sharedPostgres, sharedPostgresErr = startPostgres()
	})
	if sharedPostgresErr != nil {
		t.Fatalf("Failed to start postgres container: %v", sharedPostgresErr)
	}
	return sharedPostgres
}

func startPostgres() (*ServerInfo, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       dbName,
			"POSTGRES_USER":     dbUser,
			"POSTGRES_PASSWORD": dbPassword,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	return &ServerInfo{
		Container: container,
		HostURL:   fmt.Sprintf("postgres://%s:%s@%s:%s", dbUser, dbPassword, host, port.Port()),
		Database:  dbName,
	}, nil
}

// GetMySQL returns a shared MySQL container, started on first use.
func GetMySQL(t *testing.T) *ServerInfo {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedMySQLOnce.Do(func() {
		sharedMySQL, sharedMySQLErr = startMySQL()
	})
	if sharedMySQLErr != nil {
		t.Fatalf("Failed to start mysql container: %v", sharedMySQLErr)
	}
	return sharedMySQL
}

func startMySQL() (*ServerInfo, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        mysqlImage,
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_DATABASE":      dbName,
			"MYSQL_USER":          dbUser,
			"MYSQL_PASSWORD":      dbPassword,
			"MYSQL_ROOT_PASSWORD": dbPassword,
		},
		// mysqld logs this once for the init server and once for real
		WaitingFor: wait.ForLog("ready for connections").
			WithOccurrence(2).
			WithStartupTimeout(120 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start mysql container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "3306")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	return &ServerInfo{
		Container: container,
		HostURL:   fmt.Sprintf("%s:%s@tcp(%s:%s)", dbUser, dbPassword, host, port.Port()),
		Database:  dbName,
	}, nil
}
