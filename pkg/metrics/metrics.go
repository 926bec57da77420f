// Package metrics provides performance tracking and observability for
// spawnpool using Prometheus metrics. It exposes collectors for pool
// activity: acquires, releases, growth, free-queue depth, and ownership
// violations.
//
// # Basic Usage
//
//	// Count an acquire served from the free queue
//	metrics.AcquiresTotal.WithLabelValues("enemy/grunt", "reuse").Inc()
//
//	// Track free queue depth
//	metrics.FreeQueueDepth.WithLabelValues("enemy/grunt").Set(float64(depth))
//
// Pools normally record through a Collector rather than touching the
// package-level vectors directly:
//
//	collector := metrics.NewCollector("enemy/grunt")
//	collector.ObserveAcquire(true, latency)
//
// # Metric Types
//
// Counter: Monotonically increasing values (e.g., total instances created)
// Gauge: Values that can go up or down (e.g., free queue depth)
// Histogram: Distribution of values (e.g., acquire latency)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AcquiresTotal counts acquire calls per template. The source label
	// distinguishes reuse from the free queue ("reuse") from lazy growth
	// ("grow").
	AcquiresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spawnpool_acquires_total",
			Help: "Total number of instances handed out",
		},
		[]string{"template", "source"},
	)

	// ReleasesTotal counts release calls per template. The status label is
	// "accepted" for owned instances re-enqueued for reuse and "rejected"
	// for ownership violations.
	ReleasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spawnpool_releases_total",
			Help: "Total number of release attempts",
		},
		[]string{"template", "status"},
	)

	// InstancesCreated counts instances created by pools, whether from
	// prepopulation or lazy growth.
	InstancesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spawnpool_instances_created_total",
			Help: "Total number of pooled instances created",
		},
		[]string{"template"},
	)

	// InstancesDestroyed counts instances destroyed during pool teardown.
	InstancesDestroyed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spawnpool_instances_destroyed_total",
			Help: "Total number of pooled instances destroyed",
		},
		[]string{"template"},
	)

	// OwnershipViolations counts rejected releases of foreign or
	// already-destroyed instances. A nonzero value indicates a caller bug.
	OwnershipViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spawnpool_ownership_violations_total",
			Help: "Total number of releases rejected for ownership violations",
		},
		[]string{"template"},
	)

	// FreeQueueDepth tracks the number of inactive instances awaiting reuse.
	FreeQueueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "spawnpool_free_queue_depth",
			Help: "Current number of inactive instances in the free queue",
		},
		[]string{"template"},
	)

	// TrackedInstances tracks the total instances owned by a pool,
	// free plus active.
	TrackedInstances = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "spawnpool_tracked_instances",
			Help: "Current number of instances tracked by a pool",
		},
		[]string{"template"},
	)

	// PoolsActive tracks the number of live pools in all registries.
	PoolsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "spawnpool_pools_active",
			Help: "Number of live object pools",
		},
	)

	// AcquireLatency tracks the distribution of acquire latencies in
	// nanoseconds. Buckets are tuned for in-process operation: reuse is
	// expected in the sub-microsecond range, growth in the microsecond range.
	AcquireLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "spawnpool_acquire_latency_nanoseconds",
			Help: "Acquire latency in nanoseconds",
			Buckets: []float64{
				100,   // 100ns - free queue hit
				1000,  // 1μs - map update heavy path
				10000, // 10μs - lazy growth
				1e5,   // 100μs - factory-heavy growth
				1e6,   // 1ms - pathological
			},
		},
		[]string{"template"},
	)
)

// Collector records pool activity for a single template. Each pool owns one
// collector; all methods are safe for concurrent use since the underlying
// Prometheus primitives are.
type Collector struct {
	template string
}

// NewCollector creates a metrics collector labeled with the given template.
func NewCollector(template string) *Collector {
	return &Collector{template: template}
}

// Template returns the template label this collector reports under.
func (c *Collector) Template() string {
	return c.template
}

// ObserveAcquire records a successful acquire. grew indicates the pool had
// to create a new instance to service the request.
func (c *Collector) ObserveAcquire(grew bool, elapsed time.Duration) {
	source := "reuse"
	if grew {
		source = "grow"
	}
	AcquiresTotal.WithLabelValues(c.template, source).Inc()
	AcquireLatency.WithLabelValues(c.template).Observe(float64(elapsed.Nanoseconds()))
}

// ObserveRelease records a release attempt and its outcome.
func (c *Collector) ObserveRelease(accepted bool) {
	status := "accepted"
	if !accepted {
		status = "rejected"
		OwnershipViolations.WithLabelValues(c.template).Inc()
	}
	ReleasesTotal.WithLabelValues(c.template, status).Inc()
}

// ObserveCreated records n newly created instances.
func (c *Collector) ObserveCreated(n int) {
	InstancesCreated.WithLabelValues(c.template).Add(float64(n))
}

// ObserveDestroyed records n destroyed instances.
func (c *Collector) ObserveDestroyed(n int) {
	InstancesDestroyed.WithLabelValues(c.template).Add(float64(n))
}

// SetDepth updates the free queue and tracked instance gauges.
func (c *Collector) SetDepth(free, tracked int) {
	FreeQueueDepth.WithLabelValues(c.template).Set(float64(free))
	TrackedInstances.WithLabelValues(c.template).Set(float64(tracked))
}

// PoolOpened increments the live pool gauge.
func PoolOpened() {
	PoolsActive.Inc()
}

// PoolClosed decrements the live pool gauge.
func PoolClosed() {
	PoolsActive.Dec()
}
