package pool

import (
	"sync"
	"time"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/ajitpratap0/spawnpool/pkg/errors"
	"github.com/ajitpratap0/spawnpool/pkg/metrics"
)

// instanceState tracks whether an owned instance is queued for reuse or
// handed out to a caller. An instance is always exactly one of the two.
type instanceState uint8

const (
	stateFree instanceState = iota
	stateActive
)

// Option configures a Pool or the pools a Registry creates.
type Option func(*options)

type options struct {
	name      string
	log       *zap.Logger
	collector *metrics.Collector
}

// WithName sets the pool name used in logs and errors.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger the pool writes growth and violation events to.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithCollector attaches a metrics collector. Without one the pool records
// no metrics.
func WithCollector(c *metrics.Collector) Option {
	return func(o *options) { o.collector = c }
}

// Pool owns the reusable instances of a single template. It hands out
// activated instances in FIFO order from its free queue, growing by exactly
// one instance when the queue is empty, and reclaims deactivated instances
// on release after validating ownership.
//
// All methods are safe for concurrent use; the free queue and the ownership
// table are updated atomically under one mutex. Lifecycle callbacks run
// while that mutex is held and must not call back into the pool.
type Pool[T comparable, P any] struct {
	mu      sync.Mutex
	life    Lifecycle[T, P]
	free    *queue.Queue
	owned   map[T]instanceState
	created int64
	emptied bool

	name      string
	log       *zap.Logger
	collector *metrics.Collector
}

// Stats is a point-in-time snapshot of a pool's population.
type Stats struct {
	// Name identifies the pool, normally the template key.
	Name string `json:"name"`
	// Created is the lifetime count of instances the pool has built.
	Created int64 `json:"created"`
	// Free is the number of inactive instances awaiting reuse.
	Free int `json:"free"`
	// Active is the number of instances currently handed out.
	Active int `json:"active"`
	// Emptied reports whether the pool has been torn down.
	Emptied bool `json:"emptied"`
}

// New creates a pool for one template, eagerly creating startingSize
// inactive instances through the lifecycle collaborator.
func New[T comparable, P any](life Lifecycle[T, P], startingSize int, opts ...Option) (*Pool[T, P], error) {
	if life == nil {
		return nil, errors.New(errors.ErrorTypeValidation, "pool lifecycle must not be nil")
	}
	if startingSize < 0 {
		return nil, errors.Newf(errors.ErrorTypeValidation, "starting size must be >= 0, got %d", startingSize)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	p := &Pool[T, P]{
		life:      life,
		free:      queue.New(),
		owned:     make(map[T]instanceState, startingSize),
		name:      o.name,
		log:       o.log,
		collector: o.collector,
	}

	for i := 0; i < startingSize; i++ {
		inst := life.Create()
		p.owned[inst] = stateFree
		p.free.Add(inst)
		p.created++
	}

	if p.collector != nil {
		metrics.PoolOpened()
		p.collector.ObserveCreated(startingSize)
		p.collector.SetDepth(startingSize, startingSize)
	}
	p.log.Debug("pool created",
		zap.String("pool", p.name),
		zap.Int("starting_size", startingSize))

	return p, nil
}

// Name returns the pool's name.
func (p *Pool[T, P]) Name() string {
	return p.name
}

// Acquire pops the oldest-released instance from the free queue, activates
// it with the given placement, and returns it. When the queue is empty the
// pool creates exactly one new instance first; growth is unbounded.
//
// The only error condition is acquiring from an emptied pool, which is
// terminal and signals a routing bug in the caller.
func (p *Pool[T, P]) Acquire(placement P) (T, error) {
	start := time.Now()

	p.mu.Lock()
	if p.emptied {
		p.mu.Unlock()
		var zero T
		return zero, errors.New(errors.ErrorTypeClosed, "pool has been emptied").
			WithDetail("pool", p.name)
	}

	var inst T
	grew := false
	if p.free.Length() == 0 {
		inst = p.life.Create()
		p.created++
		grew = true
	} else {
		inst = p.free.Remove().(T)
	}
	p.owned[inst] = stateActive
	p.life.Activate(inst, placement)

	freeLen := p.free.Length()
	tracked := len(p.owned)
	p.mu.Unlock()

	if grew {
		p.log.Debug("pool grew",
			zap.String("pool", p.name),
			zap.Int("tracked", tracked))
	}
	if p.collector != nil {
		if grew {
			p.collector.ObserveCreated(1)
		}
		p.collector.ObserveAcquire(grew, time.Since(start))
		p.collector.SetDepth(freeLen, tracked)
	}

	return inst, nil
}

// Release validates that the pool owns the instance, deactivates it, and
// appends it to the tail of the free queue so reuse is oldest-first.
//
// Foreign instances, instances already destroyed by Empty, and double
// releases are all rejected with an ownership error and leave the free
// queue untouched. Accepting them would enqueue instances the pool cannot
// legally re-activate.
func (p *Pool[T, P]) Release(instance T) error {
	p.mu.Lock()
	st, ok := p.owned[instance]
	if !ok {
		p.mu.Unlock()
		p.rejectRelease("instance not tracked by pool")
		return errors.New(errors.ErrorTypeOwnership, "instance not tracked by pool").
			WithDetail("pool", p.name)
	}
	if st == stateFree {
		p.mu.Unlock()
		p.rejectRelease("instance already inactive")
		return errors.New(errors.ErrorTypeOwnership, "instance already inactive").
			WithDetail("pool", p.name)
	}

	p.life.Deactivate(instance)
	p.owned[instance] = stateFree
	p.free.Add(instance)

	freeLen := p.free.Length()
	tracked := len(p.owned)
	p.mu.Unlock()

	if p.collector != nil {
		p.collector.ObserveRelease(true)
		p.collector.SetDepth(freeLen, tracked)
	}
	return nil
}

func (p *Pool[T, P]) rejectRelease(reason string) {
	p.log.Warn("release rejected",
		zap.String("pool", p.name),
		zap.String("reason", reason))
	if p.collector != nil {
		p.collector.ObserveRelease(false)
	}
}

// Empty permanently destroys every instance the pool tracks, free and
// active alike, and clears the ownership table so that any later release of
// a previously-owned instance is rejected as an ownership violation. The
// pool is terminal afterwards: Acquire fails and the owner is expected to
// drop it. Idempotent.
func (p *Pool[T, P]) Empty() {
	p.mu.Lock()
	if p.emptied {
		p.mu.Unlock()
		return
	}

	destroyed := len(p.owned)
	for inst := range p.owned {
		p.life.Destroy(inst)
	}
	p.owned = make(map[T]instanceState)
	p.free = queue.New()
	p.emptied = true
	created := p.created
	p.mu.Unlock()

	if p.collector != nil {
		p.collector.ObserveDestroyed(destroyed)
		p.collector.SetDepth(0, 0)
		metrics.PoolClosed()
	}
	p.log.Info("pool emptied",
		zap.String("pool", p.name),
		zap.Int("destroyed", destroyed),
		zap.Int64("lifetime_created", created))
}

// Stats returns a snapshot of the pool's population.
func (p *Pool[T, P]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	free := p.free.Length()
	return Stats{
		Name:    p.name,
		Created: p.created,
		Free:    free,
		Active:  len(p.owned) - free,
		Emptied: p.emptied,
	}
}
