package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// errInputClosed is returned once line editing could not be restored.
var errInputClosed = errors.New("input closed")

// newReadline is swapped in tests.
var newReadline = setupReadline

func (r *REPL) readInput() (string, error) {
	r.mu.Lock()
	rl := r.rl
	r.mu.Unlock()
	if rl == nil {
		return "", errInputClosed
	}

	line, err := rl.Readline()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func (r *REPL) parseCommand(input string) (bool, string, string) {
	if !strings.HasPrefix(input, "/") {
		return false, "", ""
	}

	parts := strings.SplitN(input, " ", 2)
	command := strings.ToLower(parts[0])

	args := ""
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}

	return true, command, args
}

// ask reads one form field with a temporary prompt.
func (r *REPL) ask(label, hint string) (string, error) {
	r.mu.Lock()
	rl := r.rl
	if rl == nil {
		r.mu.Unlock()
		return "", errInputClosed
	}
	rl.SetPrompt(r.formatter.FormatField(label, hint))
	r.mu.Unlock()

	defer r.restorePrompt()

	line, err := rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *REPL) restorePrompt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rl != nil {
		r.rl.SetPrompt(r.formatter.FormatPrompt(r.toast))
	}
}

// suspendReadline hands the terminal to a raw-mode widget and returns a
// func that restores line editing. When restoring fails the REPL has no
// input left and every later read returns errInputClosed.
func (r *REPL) suspendReadline() func() error {
	r.mu.Lock()
	if r.rl != nil {
		r.rl.Close()
		r.rl = nil
	}
	r.status.SetOutput(os.Stdout)
	r.mu.Unlock()

	return func() error {
		rl, err := newReadline(r.formatter.FormatPrompt(r.currentToast()))
		if err != nil {
			return fmt.Errorf("%w: failed to restore readline: %v", errInputClosed, err)
		}
		r.mu.Lock()
		r.rl = rl
		r.status.SetOutput(rl.Stdout())
		r.mu.Unlock()
		return nil
	}
}

func setupReadline(prompt string) (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              prompt,
		HistoryFile:         "",
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})

	return rl, err
}

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func isEOF(err error) bool {
	return err == io.EOF || err == readline.ErrInterrupt
}
