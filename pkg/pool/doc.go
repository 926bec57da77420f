// Package pool implements typed object recycling for interactive
// simulations: per-template pools of reusable instances with lazy growth,
// ownership-validated release, and a registry that routes acquire requests
// by template key.
//
// # Architecture
//
// Two collaborating types:
//
//   - Pool[T, P]: owns the free queue and ownership table for one template.
//     Instances are created through an external Lifecycle collaborator,
//     handed out active, and reclaimed inactive in FIFO order
//     (oldest-released reused first).
//   - Registry[K, T, P]: maps template keys to pools, creating a pool
//     lazily on the first acquire for an unseen template.
//
// T is the pooled instance type and must be comparable; pointer types are
// the expected choice. P is the placement payload applied verbatim on
// activation; the pool never interprets it.
//
// # Growth Policy
//
// Pools grow by exactly one instance when the free queue is empty and never
// shrink. Unbounded growth is deliberate: the target workloads are
// frame-loop simulations where peak population is bounded by game logic,
// and a memory ceiling would trade simplicity for a failure mode the
// callers cannot handle mid-frame. Reclaim happens only through Empty,
// which destroys every tracked instance at once.
//
// # Usage
//
//	life := pool.LifecycleFuncs[*Enemy, Placement]{
//	    CreateFunc:     func() *Enemy { return &Enemy{} },
//	    ActivateFunc:   func(e *Enemy, at Placement) { e.Active = true; e.At = at },
//	    DeactivateFunc: func(e *Enemy) { e.Active = false },
//	}
//
//	p, err := pool.New[*Enemy, Placement](life, 8)
//	if err != nil {
//	    return err
//	}
//
//	enemy, err := p.Acquire(spawnPoint)
//	...
//	if err := p.Release(enemy); err != nil {
//	    // ownership violation: enemy belongs to another pool
//	}
//
// Releasing an instance the pool does not track is rejected with a
// distinguishable ownership error; accepting it would corrupt the free
// queue with instances the pool cannot legally re-activate.
package pool
