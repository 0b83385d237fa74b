package multiconn

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/ekaya-inc/multiconn/pkg/logging"
)

// Registry owns the name → pool mapping. It is built once by NewRegistry
// and read-only afterwards: lookups are plain map reads and need no
// locking. There is no way to add names to a live registry; extending the
// set means building a new one.
type Registry struct {
	conns     map[string]pool
	logger    *zap.Logger
	closeOnce sync.Once
}

// NewRegistry builds one pool per config, in input order, and returns the
// registry holding them. The first config whose pool cannot be built aborts
// the whole call: pools built so far are closed and a *BuildError is
// returned instead of a partial registry.
//
// When two configs share a Name the later one wins; the displaced pool is
// closed rather than leaked. A nil logger disables logging.
func NewRegistry(ctx context.Context, configs []ConnectionConfig, settings Settings, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	settings = settings.withDefaults()

	r := &Registry{
		conns:  make(map[string]pool, len(configs)),
		logger: logger,
	}

	for _, cfg := range configs {
		build, ok := builders[cfg.Backend]
		if !ok {
			r.closeAll()
			return nil, &BuildError{Backend: cfg.Backend, Name: cfg.Name, Err: ErrNotCompiledIn}
		}

		p, err := build(ctx, cfg, settings)
		if err != nil {
			r.closeAll()
			logger.Error("failed to build connection pool",
				zap.String("name", cfg.Name),
				zap.Stringer("backend", cfg.Backend),
				zap.String("error", logging.SanitizeError(err)),
			)
			return nil, &BuildError{Backend: cfg.Backend, Name: cfg.Name, Err: err}
		}

		if prev, exists := r.conns[cfg.Name]; exists {
			// Last write wins; close the displaced pool instead of leaking it.
			_ = prev.Close()
			logger.Warn("duplicate connection name, replacing earlier pool",
				zap.String("name", cfg.Name),
				zap.Stringer("backend", cfg.Backend),
			)
		}
		r.conns[cfg.Name] = p

		logger.Info("connection pool ready",
			zap.String("name", cfg.Name),
			zap.Stringer("backend", cfg.Backend),
			zap.Int("poolSize", cfg.PoolSize),
		)
	}

	return r, nil
}

// lookup resolves a name and checks its backend tag. Every accessor goes
// through it.
func (r *Registry) lookup(want Backend, name string) (pool, error) {
	p, ok := r.conns[name]
	if !ok {
		return nil, &UnknownConnectionError{Backend: want, Name: name}
	}
	if p.backend() != want {
		return nil, &WrongBackendError{Backend: want, Registered: p.backend(), Name: name}
	}
	return p, nil
}

// Names returns the registered connection names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.conns))
	for name := range r.conns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ping verifies every pool in the registry is reachable. It stops at the
// first failing pool and reports which one.
func (r *Registry) Ping(ctx context.Context) error {
	for name, p := range r.conns {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("ping %s connection %q: %w", p.backend(), name, err)
		}
	}
	return nil
}

// Stats describes the registry contents.
type Stats struct {
	Connections int            `json:"connections"`
	ByBackend   map[string]int `json:"by_backend"`
}

// Stats counts registered pools per backend. Safe to call concurrently
// with lookups.
func (r *Registry) Stats() Stats {
	stats := Stats{
		Connections: len(r.conns),
		ByBackend:   make(map[string]int),
	}
	for _, p := range r.conns {
		stats.ByBackend[p.backend().String()]++
	}
	return stats
}

// Close tears down every pool in the registry. Idempotent. Connections
// already checked out are released per the drivers' own shutdown
// contracts.
func (r *Registry) Close() {
	r.closeOnce.Do(func() {
		r.closeAll()
		r.logger.Info("connection registry closed")
	})
}

func (r *Registry) closeAll() {
	for name, p := range r.conns {
		if err := p.Close(); err != nil {
			r.logger.Warn("failed to close connection pool",
				zap.String("name", name),
				zap.String("error", logging.SanitizeError(err)),
			)
		}
	}
}
