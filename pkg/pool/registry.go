package pool

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ajitpratap0/spawnpool/pkg/errors"
	"github.com/ajitpratap0/spawnpool/pkg/metrics"
)

// autoCreateSize is the starting size for pools the registry creates
// implicitly when Acquire sees an unseen template.
const autoCreateSize = 1

// Provider supplies the lifecycle collaborator for a template. It is
// invoked once per pool creation; equal template keys must describe the
// same object kind for the lifetime of the registry.
//
// Template keys also name pools: the registry renders them with fmt's %v
// verb for logs, metrics labels, and the Stats map, so distinct keys must
// stringify distinctly or their pools will share one label set.
type Provider[K comparable, T comparable, P any] func(template K) Lifecycle[T, P]

// Registry routes acquire requests to per-template pools, creating a pool
// lazily on the first request for an unseen template. It holds at most one
// pool per distinct template key.
//
// A registry is an explicit value owned by whichever component runs the
// simulation loop; there is no process-wide instance. All methods are safe
// for concurrent use.
type Registry[K comparable, T comparable, P any] struct {
	mu       sync.RWMutex
	pools    map[K]*Pool[T, P]
	provider Provider[K, T, P]

	log           *zap.Logger
	enableMetrics bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	log           *zap.Logger
	enableMetrics bool
}

// WithRegistryLogger sets the logger passed down to every pool.
func WithRegistryLogger(log *zap.Logger) RegistryOption {
	return func(o *registryOptions) { o.log = log }
}

// WithMetrics enables Prometheus metrics on every pool the registry creates.
func WithMetrics() RegistryOption {
	return func(o *registryOptions) { o.enableMetrics = true }
}

// NewRegistry creates a registry whose pools build instances through the
// lifecycles the provider returns.
func NewRegistry[K comparable, T comparable, P any](provider Provider[K, T, P], opts ...RegistryOption) (*Registry[K, T, P], error) {
	if provider == nil {
		return nil, errors.New(errors.ErrorTypeValidation, "registry provider must not be nil")
	}

	var o registryOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	return &Registry[K, T, P]{
		pools:         make(map[K]*Pool[T, P]),
		provider:      provider,
		log:           o.log,
		enableMetrics: o.enableMetrics,
	}, nil
}

// CreatePool creates the pool for a template with the given starting size.
// Idempotent: if the pool already exists the call is a no-op and the
// existing pool keeps its population regardless of startingSize.
func (r *Registry[K, T, P]) CreatePool(template K, startingSize int) error {
	if startingSize < 0 {
		return errors.Newf(errors.ErrorTypeValidation, "starting size must be >= 0, got %d", startingSize)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pools[template]; ok {
		return nil
	}
	_, err := r.createLocked(template, startingSize)
	return err
}

// createLocked builds and registers the pool for a template. Caller holds
// the write lock.
func (r *Registry[K, T, P]) createLocked(template K, startingSize int) (*Pool[T, P], error) {
	life := r.provider(template)
	if life == nil {
		return nil, errors.New(errors.ErrorTypeValidation, "provider returned nil lifecycle").
			WithDetail("template", fmt.Sprintf("%v", template))
	}

	name := fmt.Sprintf("%v", template)
	opts := []Option{WithName(name), WithLogger(r.log)}
	if r.enableMetrics {
		opts = append(opts, WithCollector(metrics.NewCollector(name)))
	}

	p, err := New[T, P](life, startingSize, opts...)
	if err != nil {
		return nil, err
	}
	r.pools[template] = p

	r.log.Debug("registered pool",
		zap.String("template", name),
		zap.Int("starting_size", startingSize))
	return p, nil
}

// DestroyPool empties the pool for a template and removes it from the
// registry. No-op when no pool exists for the template; destroying an
// absent pool is idempotently safe, not an error.
func (r *Registry[K, T, P]) DestroyPool(template K) {
	r.mu.Lock()
	p, ok := r.pools[template]
	if ok {
		delete(r.pools, template)
	}
	r.mu.Unlock()

	if ok {
		p.Empty()
	}
}

// Acquire returns an activated instance of the template, creating a pool
// with a starting size of one when the template has not been seen before.
// It never fails for a template whose provider yields a valid lifecycle:
// pools grow on demand, and a pool destroyed concurrently is simply
// recreated on retry.
func (r *Registry[K, T, P]) Acquire(template K, placement P) (T, error) {
	for {
		r.mu.RLock()
		p, ok := r.pools[template]
		r.mu.RUnlock()

		if !ok {
			r.mu.Lock()
			p, ok = r.pools[template]
			if !ok {
				var err error
				p, err = r.createLocked(template, autoCreateSize)
				if err != nil {
					r.mu.Unlock()
					var zero T
					return zero, err
				}
			}
			r.mu.Unlock()
		}

		inst, err := p.Acquire(placement)
		if err == nil {
			return inst, nil
		}
		// The pool was emptied. DestroyPool and Close drop it from the
		// map, but Empty called on a pool handle does not, so drop the
		// entry here when it still points at the terminal pool; the next
		// iteration creates a fresh one.
		r.mu.Lock()
		if cur, ok := r.pools[template]; ok && cur == p {
			delete(r.pools, template)
		}
		r.mu.Unlock()
	}
}

// Release returns an instance to the pool for its template. When no pool
// exists for the template the instance cannot be owned by this registry, so
// the call is rejected as an ownership violation just like a release
// against a destroyed pool.
func (r *Registry[K, T, P]) Release(template K, instance T) error {
	r.mu.RLock()
	p, ok := r.pools[template]
	r.mu.RUnlock()

	if !ok {
		return errors.New(errors.ErrorTypeOwnership, "no pool for template").
			WithDetail("template", fmt.Sprintf("%v", template))
	}
	return p.Release(instance)
}

// Lookup returns the pool for a template, if one exists.
func (r *Registry[K, T, P]) Lookup(template K) (*Pool[T, P], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pools[template]
	return p, ok
}

// Templates returns the template keys with live pools.
func (r *Registry[K, T, P]) Templates() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, 0, len(r.pools))
	for k := range r.pools {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of live pools.
func (r *Registry[K, T, P]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pools)
}

// Stats returns a snapshot of every live pool keyed by pool name, the %v
// rendering of the template key (see Provider for the uniqueness contract).
func (r *Registry[K, T, P]) Stats() map[string]Stats {
	r.mu.RLock()
	pools := make([]*Pool[T, P], 0, len(r.pools))
	for _, p := range r.pools {
		pools = append(pools, p)
	}
	r.mu.RUnlock()

	stats := make(map[string]Stats, len(pools))
	for _, p := range pools {
		s := p.Stats()
		stats[s.Name] = s
	}
	return stats
}

// Close empties and removes every pool. The registry remains usable;
// subsequent acquires recreate pools on demand.
func (r *Registry[K, T, P]) Close() {
	r.mu.Lock()
	pools := make([]*Pool[T, P], 0, len(r.pools))
	for _, p := range r.pools {
		pools = append(pools, p)
	}
	r.pools = make(map[K]*Pool[T, P])
	r.mu.Unlock()

	for _, p := range pools {
		p.Empty()
	}
	r.log.Info("registry closed", zap.Int("pools_destroyed", len(pools)))
}
