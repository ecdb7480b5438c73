package repl

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/chzyer/readline"
	"github.com/notexe/taskdeck/internal/config"
	"github.com/notexe/taskdeck/internal/task"
	"github.com/notexe/taskdeck/internal/tracker"
	"github.com/notexe/taskdeck/internal/ui"
)

type REPL struct {
	tracker   *tracker.Tracker
	config    *config.Config
	formatter *ui.Formatter
	status    *ui.StatusDisplay

	mu    sync.Mutex // guards rl and toast; toasts arrive from the dismissal loop
	rl    *readline.Instance
	toast string
}

func NewREPL(tr *tracker.Tracker, cfg *config.Config) (*REPL, error) {
	formatter := ui.NewFormatter(cfg.UI.ColoredOutput, cfg.UI.ShowTimestamps)

	rl, err := newReadline(formatter.FormatPrompt(""))
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}

	status := ui.NewStatusDisplay(formatter, true)
	status.SetOutput(rl.Stdout())

	r := &REPL{
		tracker:   tr,
		config:    cfg,
		formatter: formatter,
		status:    status,
		rl:        rl,
	}
	tr.OnToast(r.showToast)

	return r, nil
}

func (r *REPL) Start(ctx context.Context) error {
	defer r.Stop()

	r.displayWelcome()

	for {
		input, err := r.readInput()
		if err != nil {
			if isEOF(err) {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			continue
		}

		isCommand, command, args := r.parseCommand(input)
		if isCommand {
			if err := r.handleCommand(ctx, command, args); err != nil {
				r.displayError(err)
			}

			if command == "/quit" || command == "/exit" || command == "/q" {
				return nil
			}

			continue
		}

		// Enter on a bare title submits a plain task.
		if err := r.addTask(ctx, task.Draft{Title: input}); err != nil {
			r.displayError(err)
		}
	}
}

func (r *REPL) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rl != nil {
		r.rl.Close()
	}
}

func (r *REPL) handleCommand(ctx context.Context, command, args string) error {
	switch command {
	case "/help", "/h":
		r.displayHelp()
		return nil

	case "/add", "/a":
		return r.runAddForm(ctx)

	case "/list", "/ls", "/l":
		r.displayTasks()
		return nil

	case "/done", "/d", "/toggle":
		t, err := r.taskAt(args)
		if err != nil {
			return err
		}
		r.tracker.Toggle(t.ID)
		r.displayTasks()
		return nil

	case "/del", "/rm":
		t, err := r.taskAt(args)
		if err != nil {
			return err
		}
		r.tracker.Delete(t.ID)
		r.displaySystem(fmt.Sprintf("Deleted %q.", t.Title))
		r.displayTasks()
		return nil

	case "/notifications", "/n":
		r.displayNotifications()
		return nil

	case "/quit", "/exit", "/q":
		fmt.Println("\nGoodbye!")
		return nil

	default:
		return fmt.Errorf("unknown command: %s (type /help for available commands)", command)
	}
}

func (r *REPL) addTask(ctx context.Context, d task.Draft) error {
	added, ok, err := r.tracker.Add(ctx, d)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	r.displaySystem(fmt.Sprintf("Added %q.", added.Title))
	r.displayTasks()
	return nil
}

// taskAt resolves the 1-based list number given to /done and /del.
func (r *REPL) taskAt(args string) (task.Task, error) {
	if args == "" {
		return task.Task{}, fmt.Errorf("usage: <command> <task number>")
	}

	n, err := strconv.Atoi(args)
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid task number: %s", args)
	}

	tasks := r.tracker.Tasks()
	if n < 1 || n > len(tasks) {
		return task.Task{}, fmt.Errorf("no task %d (have %d)", n, len(tasks))
	}
	return tasks[n-1], nil
}

// Confirm asks a yes/no question on the input line. ok is false when the
// user interrupted instead of answering.
func (r *REPL) Confirm(_ context.Context, question string) (bool, bool) {
	answer, err := r.ask(question+" [y/N]", "")
	if err != nil {
		return false, false
	}
	switch answer {
	case "y", "Y", "yes", "Yes", "YES":
		return true, true
	default:
		return false, true
	}
}
