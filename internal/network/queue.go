package network

// alertQueue is a FIFO of propagators waiting to fire.
//
// Propagation is synchronous and single-threaded: a cell write enqueues
// its dependents and the queue is drained before the write returns. The
// queue replaces unbounded call-stack recursion, not the immediate-mode
// semantics. Firing order within a cascade is unspecified and firing is
// idempotent at a fixed point, so FIFO is merely one valid order.
//
// Alerts coalesce: a propagator already waiting is not enqueued again.
// It re-reads all of its cells when it fires, so one pending alert covers
// any number of triggering changes.
type alertQueue struct {
	pending []*Propagator
	queued  map[*Propagator]bool
}

func newAlertQueue() *alertQueue {
	return &alertQueue{
		pending: make([]*Propagator, 0, 16),
		queued:  make(map[*Propagator]bool),
	}
}

// enqueue adds a propagator unless it is already waiting.
func (q *alertQueue) enqueue(p *Propagator) {
	if q.queued[p] {
		return
	}
	q.queued[p] = true
	q.pending = append(q.pending, p)
}

// dequeue removes and returns the front propagator.
func (q *alertQueue) dequeue() (*Propagator, bool) {
	if len(q.pending) == 0 {
		return nil, false
	}
	p := q.pending[0]
	// Nil out the slot so the backing array does not retain the pointer.
	q.pending[0] = nil
	if len(q.pending) == 1 {
		q.pending = q.pending[:0]
	} else {
		q.pending = q.pending[1:]
	}
	delete(q.queued, p)
	return p, true
}

// len returns the number of waiting propagators.
func (q *alertQueue) len() int {
	return len(q.pending)
}
