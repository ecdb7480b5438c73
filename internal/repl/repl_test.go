package repl

import (
	"context"
	"errors"
	"testing"

	"github.com/chzyer/readline"

	"github.com/notexe/taskdeck/internal/config"
	"github.com/notexe/taskdeck/internal/task"
	"github.com/notexe/taskdeck/internal/tracker"
	"github.com/notexe/taskdeck/internal/ui"
)

func newTestREPL(t *testing.T) *REPL {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	formatter := ui.NewFormatter(false, false)
	return &REPL{
		tracker:   tracker.New(nil),
		config:    cfg,
		formatter: formatter,
		status:    ui.NewStatusDisplay(formatter, false),
	}
}

func TestParseCommand(t *testing.T) {
	r := newTestREPL(t)

	tests := []struct {
		input   string
		isCmd   bool
		command string
		args    string
	}{
		{"Buy milk", false, "", ""},
		{"/list", true, "/list", ""},
		{"/DONE  2 ", true, "/done", "2"},
		{"/del 10", true, "/del", "10"},
	}

	for _, tt := range tests {
		isCmd, command, args := r.parseCommand(tt.input)
		if isCmd != tt.isCmd || command != tt.command || args != tt.args {
			t.Errorf("parseCommand(%q) = %v, %q, %q; want %v, %q, %q",
				tt.input, isCmd, command, args, tt.isCmd, tt.command, tt.args)
		}
	}
}

func TestToggleAndDeleteCommands(t *testing.T) {
	r := newTestREPL(t)
	ctx := context.Background()

	if err := r.addTask(ctx, task.Draft{Title: "first"}); err != nil {
		t.Fatal(err)
	}
	if err := r.addTask(ctx, task.Draft{Title: "   "}); err != nil {
		t.Fatal(err)
	}
	r.addTask(ctx, task.Draft{Title: "second"})

	if n := len(r.tracker.Tasks()); n != 2 {
		t.Fatalf("Expected blank title to be ignored, got %d tasks", n)
	}

	if err := r.handleCommand(ctx, "/done", "1"); err != nil {
		t.Fatalf("/done failed: %v", err)
	}
	if !r.tracker.Tasks()[0].Completed {
		t.Error("Expected first task completed")
	}

	if err := r.handleCommand(ctx, "/del", "2"); err != nil {
		t.Fatalf("/del failed: %v", err)
	}
	tasks := r.tracker.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "first" {
		t.Errorf("Expected only first to remain, got %+v", tasks)
	}

	for _, args := range []string{"", "x", "0", "5"} {
		if err := r.handleCommand(ctx, "/done", args); err == nil {
			t.Errorf("Expected /done %q to fail", args)
		}
	}

	if err := r.handleCommand(ctx, "/bogus", ""); err == nil {
		t.Error("Expected unknown command to fail")
	}
}

func TestShowToast(t *testing.T) {
	r := newTestREPL(t)

	r.showToast("Reminder: Pay bill", true)
	if got := r.currentToast(); got != "Reminder: Pay bill" {
		t.Errorf("Expected toast to be current, got %q", got)
	}

	r.showToast("", false)
	if got := r.currentToast(); got != "" {
		t.Errorf("Expected toast cleared, got %q", got)
	}
}

func TestFailedReadlineRestoreClosesInput(t *testing.T) {
	r := newTestREPL(t)

	orig := newReadline
	newReadline = func(string) (*readline.Instance, error) {
		return nil, errors.New("no tty")
	}
	t.Cleanup(func() { newReadline = orig })

	resume := r.suspendReadline()
	if err := resume(); !errors.Is(err, errInputClosed) {
		t.Fatalf("Expected errInputClosed from resume, got %v", err)
	}

	if _, err := r.readInput(); !errors.Is(err, errInputClosed) {
		t.Errorf("Expected readInput to report closed input, got %v", err)
	}
	if _, err := r.ask("Title", ""); !errors.Is(err, errInputClosed) {
		t.Errorf("Expected ask to report closed input, got %v", err)
	}
	if err := r.runAddForm(context.Background()); !errors.Is(err, errInputClosed) {
		t.Errorf("Expected the add form to surface closed input, got %v", err)
	}
	if err := r.Start(context.Background()); !errors.Is(err, errInputClosed) {
		t.Errorf("Expected Start to exit with closed input, got %v", err)
	}
}
