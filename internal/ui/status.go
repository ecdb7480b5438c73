package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// StatusDisplay prints transient lines above the input prompt.
type StatusDisplay struct {
	mu        sync.Mutex
	formatter *Formatter
	out       io.Writer
	enabled   bool
}

func NewStatusDisplay(formatter *Formatter, enabled bool) *StatusDisplay {
	return &StatusDisplay{
		formatter: formatter,
		out:       os.Stdout,
		enabled:   enabled,
	}
}

// SetOutput redirects the display.
func (s *StatusDisplay) SetOutput(w io.Writer) {
	s.mu.Lock()
	s.out = w
	s.mu.Unlock()
}

// Toast clears the current line and prints msg as a toast.
func (s *StatusDisplay) Toast(msg string) {
	if !s.enabled {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, "\r\033[K")
	fmt.Fprintln(s.out, s.formatter.FormatToast(msg))
}
