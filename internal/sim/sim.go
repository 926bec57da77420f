// Package sim drives a registry through deterministic spawn/despawn waves.
// It is the in-process workload behind the CLI's simulate command and doubles
// as an end-to-end exercise of pool growth, FIFO reuse, and teardown.
package sim

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ajitpratap0/spawnpool/pkg/config"
	"github.com/ajitpratap0/spawnpool/pkg/errors"
	"github.com/ajitpratap0/spawnpool/pkg/placement"
	"github.com/ajitpratap0/spawnpool/pkg/pool"
)

// Entity is the pooled payload the simulation recycles.
type Entity struct {
	ID       string              `json:"id"`
	Template string              `json:"template"`
	At       placement.Placement `json:"at"`
	Active   bool                `json:"active"`
}

// entitySeq numbers entities across all templates for unique IDs.
var entitySeq uint64

func nextEntityID(template string) string {
	n := atomic.AddUint64(&entitySeq, 1)
	return template + "-" + strconv.FormatUint(n, 10)
}

// entityLifecycle builds the lifecycle collaborator for one template.
func entityLifecycle(template string) pool.Lifecycle[*Entity, placement.Placement] {
	return pool.LifecycleFuncs[*Entity, placement.Placement]{
		CreateFunc: func() *Entity {
			return &Entity{
				ID:       nextEntityID(template),
				Template: template,
			}
		},
		ActivateFunc: func(e *Entity, at placement.Placement) {
			e.Active = true
			e.At = at
		},
		DeactivateFunc: func(e *Entity) {
			e.Active = false
		},
		DestroyFunc: func(e *Entity) {
			e.Active = false
		},
	}
}

// Options parameterizes a simulation run.
type Options struct {
	// Waves is the number of spawn/release rounds
	Waves int `json:"waves"`
	// SpawnsPerWave is how many entities each wave acquires
	SpawnsPerWave int `json:"spawns_per_wave"`
	// ReleaseRatio is the fraction of live entities released after each
	// wave, oldest first
	ReleaseRatio float64 `json:"release_ratio"`
	// Seed makes runs reproducible
	Seed int64 `json:"seed"`
	// Templates are the template keys spawns are drawn from
	Templates []string `json:"templates"`
}

// Report summarizes a completed run.
type Report struct {
	Waves      int                   `json:"waves"`
	Spawned    int                   `json:"spawned"`
	Released   int                   `json:"released"`
	PeakActive int                   `json:"peak_active"`
	ElapsedMS  float64               `json:"elapsed_ms"`
	Pools      map[string]pool.Stats `json:"pools"`
}

func (o Options) validate() error {
	if o.Waves <= 0 {
		return errors.Newf(errors.ErrorTypeValidation, "waves must be > 0, got %d", o.Waves)
	}
	if o.SpawnsPerWave < 0 {
		return errors.Newf(errors.ErrorTypeValidation, "spawns per wave must be >= 0, got %d", o.SpawnsPerWave)
	}
	if o.ReleaseRatio < 0 || o.ReleaseRatio > 1 {
		return errors.Newf(errors.ErrorTypeValidation, "release ratio must be in [0,1], got %g", o.ReleaseRatio)
	}
	if len(o.Templates) == 0 {
		return errors.New(errors.ErrorTypeValidation, "at least one template is required")
	}
	return nil
}

// live pairs a spawned entity with the template that owns it, in spawn order.
type live struct {
	template string
	entity   *Entity
}

// Run executes the simulation and returns its report. The registry is torn
// down before returning; pool stats are captured first.
func Run(cfg *config.Config, opts Options, log *zap.Logger) (*Report, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	regOpts := []pool.RegistryOption{pool.WithRegistryLogger(log)}
	if cfg.Metrics.Enabled {
		regOpts = append(regOpts, pool.WithMetrics())
	}

	registry, err := pool.NewRegistry[string, *Entity, placement.Placement](
		func(template string) pool.Lifecycle[*Entity, placement.Placement] {
			return entityLifecycle(template)
		},
		regOpts...,
	)
	if err != nil {
		return nil, err
	}

	for template, size := range cfg.Prewarm {
		if err := registry.CreatePool(template, size); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "prewarm failed")
		}
	}
	if cfg.Pools.DefaultStartingSize > 0 {
		for _, template := range opts.Templates {
			if _, ok := cfg.Prewarm[template]; ok {
				continue
			}
			if err := registry.CreatePool(template, cfg.Pools.DefaultStartingSize); err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeConfig, "prewarm failed")
			}
		}
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	start := time.Now()

	report := &Report{Waves: opts.Waves}
	var alive []live

	for wave := 0; wave < opts.Waves; wave++ {
		for i := 0; i < opts.SpawnsPerWave; i++ {
			template := opts.Templates[rng.Intn(len(opts.Templates))]
			at := placement.At(
				rng.Float64()*100-50,
				0,
				rng.Float64()*100-50,
			)

			entity, err := registry.Acquire(template, at)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeInternal, "acquire failed")
			}
			alive = append(alive, live{template: template, entity: entity})
			report.Spawned++
		}

		if len(alive) > report.PeakActive {
			report.PeakActive = len(alive)
		}

		// Oldest entities die first, which keeps the free queues cycling
		// through every instance instead of hammering one.
		releases := int(float64(len(alive)) * opts.ReleaseRatio)
		for i := 0; i < releases; i++ {
			l := alive[i]
			if err := registry.Release(l.template, l.entity); err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeInternal, "release failed")
			}
			report.Released++
		}
		alive = alive[releases:]

		log.Debug("wave complete",
			zap.Int("wave", wave+1),
			zap.Int("alive", len(alive)),
			zap.Int("released", releases))
	}

	report.Pools = registry.Stats()
	report.ElapsedMS = float64(time.Since(start).Microseconds()) / 1000.0

	registry.Close()

	log.Info("simulation finished",
		zap.Int("waves", report.Waves),
		zap.Int("spawned", report.Spawned),
		zap.Int("released", report.Released),
		zap.Int("peak_active", report.PeakActive))

	return report, nil
}
