package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Notification is a platform-level notification.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Platform is a system notification channel.
type Platform interface {
	Name() string
	Supported() bool
	RequestPermission(ctx context.Context) (Permission, error)
	Send(ctx context.Context, n Notification) error
}

// Consent asks the user whether notifications may be shown. ok=false means
// the question was not answered.
type Consent func(ctx context.Context, question string) (allow bool, ok bool)

// AlwaysAllow and AlwaysDeny are consents for non-interactive use.
func AlwaysAllow(context.Context, string) (bool, bool) { return true, true }
func AlwaysDeny(context.Context, string) (bool, bool)  { return false, true }

func askConsent(ctx context.Context, consent Consent, question string) (Permission, error) {
	if consent == nil {
		return Denied, nil
	}
	allow, ok := consent(ctx, question)
	if !ok {
		return NotRequested, ctx.Err()
	}
	if allow {
		return Granted, nil
	}
	return Denied, nil
}

// None is a platform without notification support.
type None struct{}

func (None) Name() string                                          { return "none" }
func (None) Supported() bool                                       { return false }
func (None) RequestPermission(context.Context) (Permission, error) { return Denied, nil }
func (None) Send(context.Context, Notification) error              { return nil }

var bannerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("0")).
	Background(lipgloss.Color("222")).
	Bold(true).
	Padding(0, 1)

// Terminal rings the bell and writes a banner line to a terminal.
type Terminal struct {
	mu      sync.Mutex
	out     io.Writer
	consent Consent
	colored bool
	tty     bool
}

// NewTerminal creates a terminal notifier writing to out. Notifications are
// only supported when out is a terminal.
func NewTerminal(out io.Writer, consent Consent, colored bool) *Terminal {
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &Terminal{out: out, consent: consent, colored: colored, tty: tty}
}

// SetOutput redirects notifications, e.g. through a line editor, without
// changing whether the terminal counts as supported.
func (t *Terminal) SetOutput(w io.Writer) {
	t.mu.Lock()
	t.out = w
	t.mu.Unlock()
}

func (t *Terminal) Name() string { return "terminal" }

func (t *Terminal) Supported() bool { return t.tty }

func (t *Terminal) RequestPermission(ctx context.Context) (Permission, error) {
	return askConsent(ctx, t.consent, "Allow terminal notifications for due tasks?")
}

func (t *Terminal) Send(_ context.Context, n Notification) error {
	line := n.Title + ": " + n.Body
	if t.colored {
		line = bannerStyle.Render(line)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintf(t.out, "\a\r\033[K%s\n", line)
	return err
}
