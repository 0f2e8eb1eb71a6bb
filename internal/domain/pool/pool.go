package pool

// Pool is a free list of reusable instances.
// It is not safe for concurrent use; the simulation runs on a single goroutine.
type Pool[T any] struct {
	free    []*T
	inFree  map[*T]struct{}
	newFn   func() *T
	resetFn func(*T)

	allocated int
}

// New creates a pool. resetFn restores an instance to its constructor defaults
// and runs on every Get of a recycled instance.
func New[T any](newFn func() *T, resetFn func(*T)) *Pool[T] {
	return &Pool[T]{
		free:    make([]*T, 0, 64),
		inFree:  make(map[*T]struct{}, 64),
		newFn:   newFn,
		resetFn: resetFn,
	}
}

// Get returns a recycled or freshly constructed instance in default state
func (p *Pool[T]) Get() *T {
	if n := len(p.free); n > 0 {
		item := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		delete(p.inFree, item)
		if p.resetFn != nil {
			p.resetFn(item)
		}
		return item
	}
	p.allocated++
	return p.newFn()
}

// Release returns an instance to the free list.
// Releasing nil or an instance already in the free list is a no-op.
func (p *Pool[T]) Release(item *T) {
	if item == nil {
		return
	}
	if _, ok := p.inFree[item]; ok {
		return
	}
	p.inFree[item] = struct{}{}
	p.free = append(p.free, item)
}

// Len returns the number of idle instances
func (p *Pool[T]) Len() int {
	return len(p.free)
}

// Allocated returns how many instances the pool has constructed
func (p *Pool[T]) Allocated() int {
	return p.allocated
}
