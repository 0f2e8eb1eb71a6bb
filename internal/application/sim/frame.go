package sim

// FrameHandle identifies a pending frame request
type FrameHandle uint64

// FrameRequester schedules one callback on the host's next animation frame.
// now is the host clock in seconds.
type FrameRequester interface {
	RequestFrame(cb func(now float64)) FrameHandle
	CancelFrame(h FrameHandle)
}

type frameRequest struct {
	handle FrameHandle
	cb     func(now float64)
}

// FrameQueue is a FrameRequester pumped by the host loop (ebiten Update, a ticker).
// Callbacks requested during a pump run on the next pump.
type FrameQueue struct {
	next    FrameHandle
	pending []frameRequest
	running []frameRequest
}

// NewFrameQueue creates an empty queue
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{next: 1}
}

// RequestFrame queues cb for the next Pump
func (q *FrameQueue) RequestFrame(cb func(now float64)) FrameHandle {
	h := q.next
	q.next++
	q.pending = append(q.pending, frameRequest{handle: h, cb: cb})
	return h
}

// CancelFrame drops a queued request; unknown handles are ignored
func (q *FrameQueue) CancelFrame(h FrameHandle) {
	for i, r := range q.pending {
		if r.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pump runs every request queued before the call and returns how many ran
func (q *FrameQueue) Pump(now float64) int {
	q.running, q.pending = q.pending, q.running[:0]
	for _, r := range q.running {
		r.cb(now)
	}
	n := len(q.running)
	clear(q.running)
	q.running = q.running[:0]
	return n
}

// Pending returns the number of queued requests
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}
