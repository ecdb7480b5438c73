package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/notexe/taskdeck/internal/notify"
	"github.com/notexe/taskdeck/internal/task"
)

var start = time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC)

type recordingPlatform struct {
	sent []notify.Notification
}

func (p *recordingPlatform) Name() string    { return "recording" }
func (p *recordingPlatform) Supported() bool { return true }

func (p *recordingPlatform) RequestPermission(context.Context) (notify.Permission, error) {
	return notify.Granted, nil
}

func (p *recordingPlatform) Send(_ context.Context, n notify.Notification) error {
	p.sent = append(p.sent, n)
	return nil
}

func newTestMonitor(granted bool) (*Monitor, *task.Store, *notify.Queue, *recordingPlatform) {
	store := task.NewStore(nil)
	queue := notify.NewQueue(5*time.Second, nil)
	platform := &recordingPlatform{}
	gate := notify.NewGate(platform)
	if granted {
		gate.Ensure(context.Background())
	}
	return NewMonitor(store, queue, gate, time.Second, nil), store, queue, platform
}

func due(d time.Duration) *time.Time {
	t := start.Add(d)
	return &t
}

func TestTickPayBill(t *testing.T) {
	m, store, queue, platform := newTestMonitor(true)
	ctx := context.Background()

	bill, _ := store.Add(task.Draft{Title: "Pay bill"}, due(2*time.Second))

	if flagged := m.Tick(ctx, start.Add(time.Second)); len(flagged) != 0 {
		t.Fatalf("Expected nothing due after 1s, got %+v", flagged)
	}

	flagged := m.Tick(ctx, start.Add(2*time.Second))
	if len(flagged) != 1 || flagged[0].ID != bill.ID {
		t.Fatalf("Expected Pay bill to be flagged, got %+v", flagged)
	}

	m.Wait()

	got, _ := store.Get(bill.ID)
	if !got.Reminded {
		t.Error("Expected task to be flagged in the store")
	}

	pending := queue.Pending()
	if len(pending) != 1 || pending[0].Message != "Reminder: Pay bill" {
		t.Fatalf("Expected one toast, got %+v", pending)
	}
	if len(platform.sent) != 1 || platform.sent[0].Title != NotificationTitle || platform.sent[0].Body != "Pay bill" {
		t.Errorf("Expected one platform notification, got %+v", platform.sent)
	}

	m.Tick(ctx, start.Add(3*time.Second))
	m.Wait()
	if queue.Len() != 1 || len(platform.sent) != 1 {
		t.Error("Expected no duplicate reminder on the next tick")
	}

	queue.Expire(start.Add(7 * time.Second))
	if queue.Len() != 0 {
		t.Error("Expected toast dismissed 5s after it was added")
	}
}

func TestTickBurst(t *testing.T) {
	m, store, queue, _ := newTestMonitor(true)

	store.Add(task.Draft{Title: "a"}, due(-time.Hour))
	store.Add(task.Draft{Title: "b"}, due(-time.Minute))

	if flagged := m.Tick(context.Background(), start); len(flagged) != 2 {
		t.Fatalf("Expected both tasks flagged on the same tick, got %+v", flagged)
	}
	m.Wait()
	if queue.Len() != 2 {
		t.Fatalf("Expected two toasts, got %d", queue.Len())
	}

	queue.Expire(start.Add(5 * time.Second))
	if head, _ := queue.Head(); queue.Len() != 1 || head.Message != "Reminder: b" {
		t.Errorf("Expected b still on display after 5s, got %+v", queue.Pending())
	}
	queue.Expire(start.Add(10 * time.Second))
	if queue.Len() != 0 {
		t.Error("Expected b dismissed 5s after a")
	}
}

func TestTickWithoutPermission(t *testing.T) {
	m, store, queue, platform := newTestMonitor(false)

	store.Add(task.Draft{Title: "quiet"}, due(0))
	m.Tick(context.Background(), start)
	m.Wait()

	if queue.Len() != 1 {
		t.Error("Expected in-app toast even without permission")
	}
	if len(platform.sent) != 0 {
		t.Errorf("Expected no platform notification, got %+v", platform.sent)
	}
}

func TestTickSkipsCompletedAndDeleted(t *testing.T) {
	m, store, queue, _ := newTestMonitor(true)

	done, _ := store.Add(task.Draft{Title: "done"}, due(time.Second))
	gone, _ := store.Add(task.Draft{Title: "gone"}, due(time.Second))
	store.Toggle(done.ID)
	store.Delete(gone.ID)

	m.Tick(context.Background(), start.Add(time.Hour))
	if queue.Len() != 0 {
		t.Errorf("Expected no reminders, got %+v", queue.Pending())
	}
}

func TestRun(t *testing.T) {
	store := task.NewStore(nil)
	queue := notify.NewQueue(time.Minute, nil)
	m := NewMonitor(store, queue, notify.NewGate(nil), 10*time.Millisecond, nil)

	store.Add(task.Draft{Title: "soon"}, func() *time.Time { d := time.Now().Add(30 * time.Millisecond); return &d }())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for queue.Len() == 0 {
		select {
		case <-deadline:
			t.Fatal("Expected reminder to fire")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run returned %v", err)
	}
}

func TestRunRejectsBadInterval(t *testing.T) {
	m := NewMonitor(task.NewStore(nil), notify.NewQueue(0, nil), notify.NewGate(nil), 0, nil)
	if err := m.Run(context.Background()); err == nil {
		t.Error("Expected error for zero interval")
	}
}

type blockingPlatform struct {
	release chan struct{}

	mu   sync.Mutex
	sent []string
}

func (p *blockingPlatform) Name() string    { return "blocking" }
func (p *blockingPlatform) Supported() bool { return true }

func (p *blockingPlatform) RequestPermission(context.Context) (notify.Permission, error) {
	return notify.Granted, nil
}

func (p *blockingPlatform) Send(ctx context.Context, n notify.Notification) error {
	select {
	case <-p.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	p.mu.Lock()
	p.sent = append(p.sent, n.Body)
	p.mu.Unlock()
	return nil
}

func newBlockingMonitor() (*Monitor, *task.Store, *notify.Queue, *blockingPlatform) {
	store := task.NewStore(nil)
	queue := notify.NewQueue(5*time.Second, nil)
	platform := &blockingPlatform{release: make(chan struct{})}
	gate := notify.NewGate(platform)
	gate.Ensure(context.Background())
	return NewMonitor(store, queue, gate, time.Second, nil), store, queue, platform
}

func TestTickDoesNotWaitForSlowPlatform(t *testing.T) {
	m, store, queue, platform := newBlockingMonitor()

	store.Add(task.Draft{Title: "a"}, due(-time.Hour))
	store.Add(task.Draft{Title: "b"}, due(-time.Minute))

	done := make(chan []task.Task, 1)
	go func() { done <- m.Tick(context.Background(), start) }()

	select {
	case flagged := <-done:
		if len(flagged) != 2 {
			t.Fatalf("Expected both tasks flagged, got %+v", flagged)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected Tick to return while the platform is still sending")
	}
	if queue.Len() != 2 {
		t.Errorf("Expected toasts queued before delivery, got %d", queue.Len())
	}

	close(platform.release)
	m.Wait()

	if len(platform.sent) != 2 || platform.sent[0] != "a" || platform.sent[1] != "b" {
		t.Errorf("Expected notifications delivered in order, got %q", platform.sent)
	}
}

func TestTickSendsStopOnCancel(t *testing.T) {
	m, store, _, platform := newBlockingMonitor()
	store.Add(task.Draft{Title: "a"}, due(-time.Hour))
	store.Add(task.Draft{Title: "b"}, due(-time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	m.Tick(ctx, start)
	cancel()

	waited := make(chan struct{})
	go func() {
		m.Wait()
		close(waited)
	}()

	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("Expected pending sends to stop after cancel")
	}
	if len(platform.sent) != 0 {
		t.Errorf("Expected nothing sent, got %q", platform.sent)
	}
}
