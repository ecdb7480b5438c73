package notify

import (
	"context"
	"sync"
	"time"
)

// DefaultToastDuration is how long a toast stays at the head of the queue.
const DefaultToastDuration = 5 * time.Second

// Toast is an in-app notification waiting to be dismissed.
type Toast struct {
	Message string    `json:"message"`
	Added   time.Time `json:"added"`
	Expires time.Time `json:"expires"`
}

// Queue is a FIFO of toasts. Every entry is evicted from the front once its
// deadline passes. A burst of entries drains one per toast duration.
type Queue struct {
	mu       sync.Mutex
	entries  []Toast
	duration time.Duration
	now      func() time.Time
	wake     chan struct{}
	onChange func(head string, ok bool)
}

// NewQueue creates a queue. A non-positive duration uses DefaultToastDuration
// and a nil clock uses time.Now.
func NewQueue(duration time.Duration, now func() time.Time) *Queue {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	if now == nil {
		now = time.Now
	}
	return &Queue{
		duration: duration,
		now:      now,
		wake:     make(chan struct{}, 1),
	}
}

// OnChange registers fn to be called whenever the head of the queue changes.
// ok is false once the queue is empty.
func (q *Queue) OnChange(fn func(head string, ok bool)) {
	q.mu.Lock()
	q.onChange = fn
	q.mu.Unlock()
}

// Push appends a toast added at now.
func (q *Queue) Push(msg string, now time.Time) Toast {
	q.mu.Lock()
	expires := now.Add(q.duration)
	if n := len(q.entries); n > 0 {
		if after := q.entries[n-1].Expires.Add(q.duration); after.After(expires) {
			expires = after
		}
	}
	t := Toast{Message: msg, Added: now, Expires: expires}
	q.entries = append(q.entries, t)
	first := len(q.entries) == 1
	fn := q.onChange
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}

	if first && fn != nil {
		fn(msg, true)
	}
	return t
}

// Expire evicts every toast at the front of the queue whose deadline is at
// or before now and returns them.
func (q *Queue) Expire(now time.Time) []Toast {
	q.mu.Lock()
	var evicted []Toast
	for len(q.entries) > 0 && !q.entries[0].Expires.After(now) {
		evicted = append(evicted, q.entries[0])
		q.entries = q.entries[1:]
	}
	head, ok := q.headLocked()
	fn := q.onChange
	q.mu.Unlock()

	if len(evicted) > 0 && fn != nil {
		fn(head.Message, ok)
	}
	return evicted
}

// Head returns the toast currently on display.
func (q *Queue) Head() (Toast, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.headLocked()
}

// Pending returns all queued toasts, oldest first.
func (q *Queue) Pending() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Toast(nil), q.entries...)
}

// Len returns the number of queued toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Run dismisses toasts as their deadlines pass until ctx is cancelled.
func (q *Queue) Run(ctx context.Context) {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		if head, ok := q.Head(); ok {
			wait := head.Expires.Sub(q.now())
			if wait < 0 {
				wait = 0
			}
			timer.Reset(wait)
		}

		select {
		case <-ctx.Done():
			return
		case <-q.wake:
			timer.Stop()
		case <-timer.C:
			q.Expire(q.now())
		}
	}
}

func (q *Queue) headLocked() (Toast, bool) {
	if len(q.entries) == 0 {
		return Toast{}, false
	}
	return q.entries[0], true
}
