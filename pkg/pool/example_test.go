package pool_test

import (
	"fmt"

	"github.com/ajitpratap0/spawnpool/pkg/placement"
	"github.com/ajitpratap0/spawnpool/pkg/pool"
)

// Projectile is a pooled payload a shooter might recycle every frame.
type Projectile struct {
	Live bool
	At   placement.Placement
}

// Example demonstrates the registry end to end: lazy pool creation,
// FIFO reuse, and teardown.
func Example() {
	registry, err := pool.NewRegistry[string, *Projectile, placement.Placement](
		func(template string) pool.Lifecycle[*Projectile, placement.Placement] {
			return pool.LifecycleFuncs[*Projectile, placement.Placement]{
				CreateFunc: func() *Projectile { return &Projectile{} },
				ActivateFunc: func(p *Projectile, at placement.Placement) {
					p.Live = true
					p.At = at
				},
				DeactivateFunc: func(p *Projectile) { p.Live = false },
			}
		},
	)
	if err != nil {
		panic(err)
	}
	defer registry.Close()

	// First acquire creates the pool implicitly.
	shot, _ := registry.Acquire("projectile/arrow", placement.At(0, 2, 0))
	fmt.Println("live:", shot.Live)

	// Release re-enqueues; the next acquire reuses the same instance.
	_ = registry.Release("projectile/arrow", shot)
	again, _ := registry.Acquire("projectile/arrow", placement.At(5, 2, 0))
	fmt.Println("reused:", shot == again)

	stats := registry.Stats()["projectile/arrow"]
	fmt.Println("created:", stats.Created)

	// Output:
	// live: true
	// reused: true
	// created: 1
}
