package pool

// Lifecycle creates, activates, deactivates, and destroys pooled instances.
// The pool treats every operation as infallible: if an implementation can
// fail it must handle that failure itself (for example by returning a
// placeholder instance), because the pool has no recovery path mid-acquire.
//
// Implementations must not call back into the pool that invokes them; the
// pool holds its internal lock across lifecycle calls so that the free
// queue and ownership table always change together.
type Lifecycle[T comparable, P any] interface {
	// Create builds one inactive instance of the template.
	Create() T

	// Activate marks the instance live and applies the placement verbatim.
	Activate(instance T, placement P)

	// Deactivate returns the instance to its dormant state before it
	// re-enters the free queue.
	Deactivate(instance T)

	// Destroy irreversibly tears the instance down. Only invoked from
	// Pool.Empty; there is no per-instance destroy path.
	Destroy(instance T)
}

// LifecycleFuncs adapts plain functions to the Lifecycle interface, for
// callers that do not want a dedicated type. CreateFunc is required; the
// remaining funcs may be nil, in which case the corresponding transition is
// a no-op.
type LifecycleFuncs[T comparable, P any] struct {
	CreateFunc     func() T
	ActivateFunc   func(instance T, placement P)
	DeactivateFunc func(instance T)
	DestroyFunc    func(instance T)
}

// Create implements Lifecycle.
func (l LifecycleFuncs[T, P]) Create() T {
	return l.CreateFunc()
}

// Activate implements Lifecycle.
func (l LifecycleFuncs[T, P]) Activate(instance T, placement P) {
	if l.ActivateFunc != nil {
		l.ActivateFunc(instance, placement)
	}
}

// Deactivate implements Lifecycle.
func (l LifecycleFuncs[T, P]) Deactivate(instance T) {
	if l.DeactivateFunc != nil {
		l.DeactivateFunc(instance)
	}
}

// Destroy implements Lifecycle.
func (l LifecycleFuncs[T, P]) Destroy(instance T) {
	if l.DestroyFunc != nil {
		l.DestroyFunc(instance)
	}
}
