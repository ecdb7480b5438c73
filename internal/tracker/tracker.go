// Package tracker wires the task store, reminder monitor and notification
// queue into one controller that owns all mutable state.
package tracker

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/notexe/taskdeck/internal/notify"
	"github.com/notexe/taskdeck/internal/reminder"
	"github.com/notexe/taskdeck/internal/task"
)

// Tracker is the top-level controller used by the front ends.
type Tracker struct {
	store   *task.Store
	queue   *notify.Queue
	gate    *notify.Gate
	monitor *reminder.Monitor

	now          func() time.Time
	loc          *time.Location
	interval     time.Duration
	toast        time.Duration
	defaultColor task.Color

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLocation sets the zone due dates are read in.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) { t.loc = loc }
}

// WithInterval sets the monitor tick interval.
func WithInterval(d time.Duration) Option {
	return func(t *Tracker) { t.interval = d }
}

// WithToastDuration sets how long each toast stays on display.
func WithToastDuration(d time.Duration) Option {
	return func(t *Tracker) { t.toast = d }
}

// WithDefaultColor sets the swatch used when a draft names none.
func WithDefaultColor(c task.Color) Option {
	return func(t *Tracker) { t.defaultColor = c }
}

// New creates a tracker dispatching platform notifications to p.
func New(p notify.Platform, opts ...Option) *Tracker {
	t := &Tracker{
		now:          time.Now,
		loc:          time.Local,
		interval:     reminder.DefaultInterval,
		toast:        notify.DefaultToastDuration,
		defaultColor: task.DefaultColor,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.store = task.NewStore(t.now)
	t.queue = notify.NewQueue(t.toast, t.now)
	t.gate = notify.NewGate(p)
	t.monitor = reminder.NewMonitor(t.store, t.queue, t.gate, t.interval, t.now)
	return t
}

// Add creates a task from the draft. When the draft carries a due time the
// notification permission is resolved before the task is stored. ok is false
// when the title is blank; err is set only for a malformed due date/time.
func (t *Tracker) Add(ctx context.Context, d task.Draft) (task.Task, bool, error) {
	due, err := task.ParseDue(d.DueDate, d.DueTime, t.loc)
	if err != nil {
		return task.Task{}, false, err
	}

	if d.Color == "" {
		d.Color = string(t.defaultColor)
	}

	if due != nil && strings.TrimSpace(d.Title) != "" {
		t.gate.Ensure(ctx)
	}

	added, ok := t.store.Add(d, due)
	return added, ok, nil
}

// Toggle flips the completed flag of a task.
func (t *Tracker) Toggle(id string) (task.Task, bool) {
	return t.store.Toggle(id)
}

// Delete removes a task.
func (t *Tracker) Delete(id string) bool {
	return t.store.Delete(id)
}

// Get returns one task.
func (t *Tracker) Get(id string) (task.Task, bool) {
	return t.store.Get(id)
}

// Tasks returns all tasks in insertion order.
func (t *Tracker) Tasks() []task.Task {
	return t.store.List()
}

// Notifications returns the toasts waiting to be dismissed.
func (t *Tracker) Notifications() []notify.Toast {
	return t.queue.Pending()
}

// OnToast registers fn to be called when the displayed toast changes.
func (t *Tracker) OnToast(fn func(msg string, ok bool)) {
	t.queue.OnChange(fn)
}

// Permission returns the notification permission state.
func (t *Tracker) Permission() notify.Permission {
	return t.gate.State()
}

// Platform returns the name of the notification platform.
func (t *Tracker) Platform() string {
	return t.gate.Platform().Name()
}

// Now returns the tracker clock's current time.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// Tick runs a single monitor pass at the current time. Platform
// notifications it triggers are delivered in the background; Close waits
// for them.
func (t *Tracker) Tick(ctx context.Context) []task.Task {
	return t.monitor.Tick(ctx, t.now())
}

// Start launches the reminder monitor and the toast dismissal loop. They run
// until Close is called or ctx is cancelled.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		return
	}
	ctx, t.cancel = context.WithCancel(ctx)

	t.wg.Add(2)
	go func() {
		defer t.wg.Done()
		if err := t.monitor.Run(ctx); err != nil {
			log.Printf("[reminder] Error: %v", err)
		}
	}()
	go func() {
		defer t.wg.Done()
		t.queue.Run(ctx)
	}()
}

// Close stops the background loops and waits for them to exit.
func (t *Tracker) Close() error {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	t.wg.Wait()
	t.monitor.Wait()
	return nil
}
