package reminder

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/notexe/taskdeck/internal/notify"
	"github.com/notexe/taskdeck/internal/task"
)

// DefaultInterval is how often the monitor checks for due tasks.
const DefaultInterval = time.Second

// NotificationTitle is the title of every platform reminder.
const NotificationTitle = "Task Reminder"

// Message returns the in-app toast text for a due task.
func Message(t task.Task) string {
	return "Reminder: " + t.Title
}

// Monitor periodically flags due tasks and emits their reminders.
type Monitor struct {
	store    *task.Store
	queue    *notify.Queue
	gate     *notify.Gate
	interval time.Duration
	now      func() time.Time

	sends sync.WaitGroup
}

// NewMonitor creates a monitor. A nil clock uses time.Now.
func NewMonitor(store *task.Store, queue *notify.Queue, gate *notify.Gate, interval time.Duration, now func() time.Time) *Monitor {
	if now == nil {
		now = time.Now
	}
	return &Monitor{
		store:    store,
		queue:    queue,
		gate:     gate,
		interval: interval,
		now:      now,
	}
}

// Run blocks and calls Tick on every interval, plus once immediately.
// It exits when ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	if m.interval <= 0 {
		return fmt.Errorf("monitor interval must be positive, got %s", m.interval)
	}

	log.Printf("[reminder] Started. Interval: %s", m.interval)

	m.Tick(ctx, m.now())

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[reminder] Shutting down...")
			return nil
		case <-ticker.C:
			m.Tick(ctx, m.now())
		}
	}
}

// Tick flags every task that became due at now and queues its toast.
// Platform notifications are sent in the background, in order, so a slow
// platform never holds up the tick; ctx cancels them. It returns the tasks
// flagged by this tick.
func (m *Monitor) Tick(ctx context.Context, now time.Time) []task.Task {
	due := m.store.FlagDue(now)
	if len(due) == 0 {
		return nil
	}

	notes := make([]notify.Notification, 0, len(due))
	for _, t := range due {
		log.Printf("[reminder] %q is due (%s)", t.Title, t.Due.Format(time.RFC3339))

		m.queue.Push(Message(t), now)
		notes = append(notes, notify.Notification{
			Title: NotificationTitle,
			Body:  t.Title,
		})
	}

	m.sends.Add(1)
	go func() {
		defer m.sends.Done()
		for _, n := range notes {
			if ctx.Err() != nil {
				return
			}
			m.gate.Dispatch(ctx, n)
		}
	}()

	return due
}

// Wait blocks until every platform notification started by Tick has been
// sent or abandoned.
func (m *Monitor) Wait() {
	m.sends.Wait()
}
