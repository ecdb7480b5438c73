package repl

import (
	"context"
	"errors"
	"time"

	"github.com/notexe/taskdeck/internal/task"
	"github.com/notexe/taskdeck/internal/ui"
)

// runAddForm collects a task field by field. A blank title abandons the form
// and the time is only asked for once a date was given.
func (r *REPL) runAddForm(ctx context.Context) error {
	var d task.Draft
	var err error

	if d.Title, err = r.ask("Title", ""); err != nil {
		return abandon(err)
	}
	if d.Title == "" {
		return nil
	}

	if d.Tags, err = r.ask("Tags", "comma separated"); err != nil {
		return abandon(err)
	}

	color, err := r.chooseColor()
	if err != nil {
		return abandon(err)
	}
	d.Color = string(color)

	if d.DueDate, err = r.askValid("Due date", "YYYY-MM-DD, empty for none", task.DateLayout); err != nil {
		return abandon(err)
	}
	if d.DueDate != "" {
		if d.DueTime, err = r.askValid("Due time", "HH:MM", task.TimeLayout); err != nil {
			return abandon(err)
		}
	}

	return r.addTask(ctx, d)
}

// abandon drops the form quietly on Ctrl+C or EOF but reports lost input.
func abandon(err error) error {
	if errors.Is(err, errInputClosed) {
		return err
	}
	return nil
}

// askValid repeats the question until the answer is empty or parses with layout.
func (r *REPL) askValid(label, hint, layout string) (string, error) {
	for {
		answer, err := r.ask(label, hint)
		if err != nil {
			return "", err
		}
		if answer == "" {
			return "", nil
		}
		if _, err := time.Parse(layout, answer); err == nil {
			return answer, nil
		}
		r.displayInfo("Expected " + hint + ".")
	}
}

// chooseColor shows the swatch selector, starting on the default color.
func (r *REPL) chooseColor() (task.Color, error) {
	def := task.ParseColor(r.config.UI.DefaultColor)

	options := make([]ui.SelectorOption, len(task.Palette))
	initial := 0
	for i, c := range task.Palette {
		options[i] = ui.SelectorOption{Label: string(c), Marker: r.formatter.Swatch(c)}
		if c == def {
			initial = i
		}
	}

	resume := r.suspendReadline()
	idx, err := ui.NewSelector("Color", options, initial, r.formatter.Colored()).Run()
	if rerr := resume(); rerr != nil {
		return "", rerr
	}
	if err != nil {
		return "", err
	}

	return task.Palette[idx], nil
}
