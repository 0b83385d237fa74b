// Package configfile is an optional host-side loader that turns a YAML
// document (plus environment overrides) into the in-process values the
// registry is built from. The core package does not depend on it; hosts
// that assemble ConnectionConfig values themselves never touch it.
package configfile

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/ekaya-inc/multiconn/pkg/multiconn"
)

// DefaultPoolSize bounds a connection entry that does not set pool_size.
const DefaultPoolSize = 10

// File is the top-level document.
type File struct {
	Pool        PoolSettings `yaml:"pool"`
	Connections []Connection `yaml:"connections"`
}

// PoolSettings tunes every pool in the registry. Environment variables
// override the YAML values.
type PoolSettings struct {
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"MULTICONN_MAX_CONN_LIFETIME" env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"MULTICONN_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Connection is one named connection target. Credentials belong in
// host_url and should come from environment expansion on the host side,
// not from the file.
type Connection struct {
	Name     string `yaml:"name"`
	Backend  string `yaml:"backend"`
	Database string `yaml:"database"`
	HostURL  string `yaml:"host_url"`
	Schema   string `yaml:"schema"`
	PoolSize int    `yaml:"pool_size"`
	Options  string `yaml:"options"`
}

// Load reads the file at path and applies environment overrides.
func Load(path string) (*File, error) {
	var f File
	if err := cleanenv.ReadConfig(path, &f); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return &f, nil
}

// Settings maps the pool section onto registry settings.
func (f *File) Settings() multiconn.Settings {
	return multiconn.Settings{
		MaxConnLifetime: f.Pool.MaxConnLifetime,
		MaxConnIdleTime: f.Pool.MaxConnIdleTime,
	}
}

// ConnectionConfigs maps the connection entries onto registry configs,
// resolving backend names and filling the pool-size default. An entry with
// an unknown backend fails the whole call.
func (f *File) ConnectionConfigs() ([]multiconn.ConnectionConfig, error) {
	configs := make([]multiconn.ConnectionConfig, 0, len(f.Connections))
	for _, entry := range f.Connections {
		backend, err := multiconn.ParseBackend(entry.Backend)
		if err != nil {
			return nil, fmt.Errorf("connection %q: %w", entry.Name, err)
		}
		poolSize := entry.PoolSize
		if poolSize <= 0 {
			poolSize = DefaultPoolSize
		}
		configs = append(configs, multiconn.ConnectionConfig{
			Name:     entry.Name,
			Backend:  backend,
			Database: entry.Database,
			HostURL:  entry.HostURL,
			Schema:   entry.Schema,
			PoolSize: poolSize,
			Options:  entry.Options,
		})
	}
	return configs, nil
}
