package repl

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type lineWriter struct {
	r *REPL
}

// Write goes through the line editor so the prompt is redrawn below the output.
func (w lineWriter) Write(p []byte) (int, error) {
	w.r.mu.Lock()
	defer w.r.mu.Unlock()
	if w.r.rl != nil {
		return w.r.rl.Stdout().Write(p)
	}
	return os.Stdout.Write(p)
}

// Output returns a writer that is safe to use while input is being read.
func (r *REPL) Output() io.Writer {
	return lineWriter{r: r}
}

// showToast is called by the dismissal loop whenever the displayed toast
// changes. The toast rides in the prompt until it is dismissed.
func (r *REPL) showToast(msg string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !ok {
		msg = ""
	}
	r.toast = msg
	if msg != "" {
		r.status.Toast(msg)
	}

	if r.rl != nil {
		r.rl.SetPrompt(r.formatter.FormatPrompt(msg))
		r.rl.Refresh()
	}
}

func (r *REPL) currentToast() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.toast
}

func (r *REPL) displayTasks() {
	fmt.Println(r.formatter.FormatTaskList(r.tracker.Tasks(), r.tracker.Now()))
	fmt.Println()
	os.Stdout.Sync()
}

func (r *REPL) displayNotifications() {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Platform: %s, permission: %s\n", r.tracker.Platform(), r.tracker.Permission())

	toasts := r.tracker.Notifications()
	if len(toasts) == 0 {
		sb.WriteString("No reminders on display.")
	} else {
		for i, t := range toasts {
			fmt.Fprintf(&sb, "%d. %s (until %s)", i+1, t.Message, t.Expires.Format("15:04:05"))
			if i < len(toasts)-1 {
				sb.WriteString("\n")
			}
		}
	}

	r.displayInfo(sb.String())
}

func (r *REPL) displayError(err error) {
	fmt.Println(r.formatter.FormatError(err))
	fmt.Println()
}

func (r *REPL) displayWelcome() {
	fmt.Print(r.formatter.FormatWelcome(r.tracker.Platform(), r.tracker.Permission().String()))
}

func (r *REPL) displayHelp() {
	fmt.Print(r.formatter.FormatHelp())
}

func (r *REPL) displayInfo(msg string) {
	fmt.Println(r.formatter.FormatInfo(msg))
	fmt.Println()
}

func (r *REPL) displaySystem(msg string) {
	fmt.Println(r.formatter.FormatSystem(msg))
	fmt.Println()
}
