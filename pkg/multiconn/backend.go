package multiconn

import "fmt"

// Backend identifies one supported database engine family. The set is
// closed: adding an engine means adding a constant here, a ConnURL branch,
// and a pool builder file with its own build tag.
type Backend int

const (
	Postgres Backend = iota
	MySQL
	SQLite
	MSSQL
)

// String returns the engine name used in logs and error messages.
func (b Backend) String() string {
	switch b {
	case Postgres:
		return "postgres"
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite"
	case MSSQL:
		return "mssql"
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend maps an engine name (as used in configuration files) to its
// Backend value.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "postgres", "postgresql":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "mssql", "sqlserver":
		return MSSQL, nil
	}
	return 0, fmt.Errorf("unknown backend %q", s)
}
