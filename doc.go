// Package spawnpool provides typed object recycling for interactive
// simulations: per-template pools of reusable instances behind a generic
// registry, designed for frame-loop workloads where allocation spikes and
// garbage collection pauses are not acceptable.
//
// # Architecture
//
// Spawnpool is built from two collaborating components:
//
// 1. Pool[T, P] (pkg/pool): owns the reusable instances of one template.
// Instances are created through an external Lifecycle collaborator, handed
// out active with a placement applied, and reclaimed in FIFO order after an
// ownership check. Pools grow lazily by one instance and never shrink;
// teardown destroys everything at once.
//
// 2. Registry[K, T, P] (pkg/pool): routes acquire requests by template key,
// creating pools lazily for unseen templates. A registry is an explicit
// value owned by the simulation loop; there is no process-wide instance.
//
// # Quick Start
//
//	registry, err := pool.NewRegistry[string, *Enemy, placement.Placement](
//	    func(template string) pool.Lifecycle[*Enemy, placement.Placement] {
//	        return enemyLifecycle(template)
//	    },
//	    pool.WithRegistryLogger(logger.Get()),
//	    pool.WithMetrics(),
//	)
//	if err != nil {
//	    return err
//	}
//	defer registry.Close()
//
//	enemy, err := registry.Acquire("enemy/grunt", placement.At(10, 0, 4))
//	...
//	if err := registry.Release("enemy/grunt", enemy); err != nil {
//	    // ownership violation: caller bug, not a transient failure
//	}
//
// # Packages
//
//   - pkg/pool: the pool and registry core
//   - pkg/placement: the spatial payload applied on activation
//   - pkg/config: configuration with YAML loading and validation
//   - pkg/logger: structured logging (zap)
//   - pkg/metrics: Prometheus collectors for pool activity
//   - pkg/errors: structured errors with ownership/closed categories
//
// The spawnpool binary (cmd/spawnpool) runs deterministic spawn/despawn
// workloads against a registry and reports per-pool statistics.
package spawnpool
