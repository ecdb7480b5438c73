package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

type fakePlatform struct {
	supported bool
	answer    Permission
	err       error
	sendErr   error
	requests  int
	sent      []Notification
}

func (f *fakePlatform) Name() string    { return "fake" }
func (f *fakePlatform) Supported() bool { return f.supported }

func (f *fakePlatform) RequestPermission(context.Context) (Permission, error) {
	f.requests++
	return f.answer, f.err
}

func (f *fakePlatform) Send(_ context.Context, n Notification) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, n)
	return nil
}

func TestGateRequestsOnce(t *testing.T) {
	p := &fakePlatform{supported: true, answer: Granted}
	g := NewGate(p)

	if g.State() != NotRequested {
		t.Fatalf("Expected not-requested initially, got %s", g.State())
	}

	ctx := context.Background()
	if got := g.Ensure(ctx); got != Granted {
		t.Fatalf("Expected granted, got %s", got)
	}
	g.Ensure(ctx)
	if p.requests != 1 {
		t.Errorf("Expected exactly one permission request, got %d", p.requests)
	}

	n := Notification{Title: "Task Reminder", Body: "Pay bill"}
	if !g.Dispatch(ctx, n) {
		t.Fatal("Expected dispatch when granted")
	}
	if len(p.sent) != 1 || p.sent[0] != n {
		t.Errorf("Expected notification to be sent, got %+v", p.sent)
	}
}

func TestGateDenied(t *testing.T) {
	p := &fakePlatform{supported: true, answer: Denied}
	g := NewGate(p)
	ctx := context.Background()

	g.Ensure(ctx)
	g.Ensure(ctx)
	if p.requests != 1 {
		t.Errorf("Expected denial to be remembered, got %d requests", p.requests)
	}
	if g.Dispatch(ctx, Notification{Title: "x"}) {
		t.Error("Expected dispatch to be suppressed when denied")
	}
	if len(p.sent) != 0 {
		t.Errorf("Expected nothing sent, got %+v", p.sent)
	}
}

func TestGateUnsupported(t *testing.T) {
	p := &fakePlatform{supported: false, answer: Granted}
	g := NewGate(p)
	ctx := context.Background()

	if got := g.Ensure(ctx); got != NotRequested {
		t.Errorf("Expected unsupported platform to stay not-requested, got %s", got)
	}
	if p.requests != 0 {
		t.Errorf("Expected no request on unsupported platform, got %d", p.requests)
	}
	if g.Dispatch(ctx, Notification{Title: "x"}) {
		t.Error("Expected dispatch to be skipped")
	}

	if NewGate(nil).Dispatch(ctx, Notification{}) {
		t.Error("Expected nil platform to behave like none")
	}
}

func TestGateRequestErrorDenies(t *testing.T) {
	p := &fakePlatform{supported: true, err: errors.New("boom")}
	g := NewGate(p)

	if got := g.Ensure(context.Background()); got != Denied {
		t.Errorf("Expected failed request to deny, got %s", got)
	}
}

func TestGateDismissedAsksAgain(t *testing.T) {
	p := &fakePlatform{supported: true, answer: NotRequested}
	g := NewGate(p)
	ctx := context.Background()

	g.Ensure(ctx)
	p.answer = Granted
	if got := g.Ensure(ctx); got != Granted {
		t.Errorf("Expected second request after dismissal, got %s", got)
	}
	if p.requests != 2 {
		t.Errorf("Expected two requests, got %d", p.requests)
	}
}

func TestGateSendFailureIsSwallowed(t *testing.T) {
	p := &fakePlatform{supported: true, answer: Granted, sendErr: errors.New("offline")}
	g := NewGate(p)
	ctx := context.Background()
	g.Ensure(ctx)

	if g.Dispatch(ctx, Notification{Title: "x"}) {
		t.Error("Expected failed send to report false")
	}
}

func TestTerminal(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, AlwaysAllow, false)

	if term.Supported() {
		t.Error("Expected a buffer not to count as a terminal")
	}

	perm, err := term.RequestPermission(context.Background())
	if err != nil || perm != Granted {
		t.Errorf("Expected consent to grant, got %s, %v", perm, err)
	}

	if err := term.Send(context.Background(), Notification{Title: "Task Reminder", Body: "Pay bill"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\a") || !strings.Contains(out, "Task Reminder: Pay bill") {
		t.Errorf("Unexpected terminal output %q", out)
	}

	denied := NewTerminal(&buf, AlwaysDeny, false)
	if perm, _ := denied.RequestPermission(context.Background()); perm != Denied {
		t.Errorf("Expected deny consent to deny, got %s", perm)
	}
	if perm, _ := NewTerminal(&buf, nil, false).RequestPermission(context.Background()); perm != Denied {
		t.Errorf("Expected missing consent to deny, got %s", perm)
	}
}
