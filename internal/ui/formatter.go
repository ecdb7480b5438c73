package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/notexe/taskdeck/internal/task"
)

var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	SystemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("183")). // Soft purple
			Italic(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Medium gray
			Italic(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	TagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")) // Light purple

	DueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	OverdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Bold(true)

	DoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	ToastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("222")).
			Bold(true).
			Padding(0, 1)
)

// swatches maps the task palette to terminal colors.
var swatches = map[task.Color]lipgloss.Color{
	task.ColorGray:   lipgloss.Color("245"),
	task.ColorRed:    lipgloss.Color("203"),
	task.ColorYellow: lipgloss.Color("221"),
	task.ColorGreen:  lipgloss.Color("114"),
	task.ColorBlue:   lipgloss.Color("75"),
	task.ColorPurple: lipgloss.Color("141"),
}

const dueLayout = "Mon 2006-01-02 15:04"

type Formatter struct {
	colored        bool
	showTimestamps bool
}

func NewFormatter(colored, showTimestamps bool) *Formatter {
	return &Formatter{
		colored:        colored,
		showTimestamps: showTimestamps,
	}
}

// Colored reports whether output is styled.
func (f *Formatter) Colored() bool {
	return f.colored
}

func (f *Formatter) FormatError(err error) string {
	prefix := "Error: "
	if f.colored {
		prefix = ErrorStyle.Render("Error: ")
	}
	return prefix + err.Error()
}

func (f *Formatter) FormatInfo(info string) string {
	if f.colored {
		return InfoStyle.Render(info)
	}
	return info
}

func (f *Formatter) FormatSystem(msg string) string {
	if f.colored {
		return SystemStyle.Render(msg)
	}
	return msg
}

func (f *Formatter) FormatStatus(msg string) string {
	if f.colored {
		return StatusStyle.Render(msg)
	}
	return msg
}

// FormatToast renders an in-app reminder.
func (f *Formatter) FormatToast(msg string) string {
	if f.colored {
		return ToastStyle.Render(msg)
	}
	return "[" + msg + "]"
}

// Swatch renders the color marker of a task.
func (f *Formatter) Swatch(c task.Color) string {
	if f.colored {
		return lipgloss.NewStyle().Foreground(swatches[c]).Render("●")
	}
	return "(" + string(c) + ")"
}

// FormatTask renders one list row. index is the 1-based number used by the
// /done and /del commands.
func (f *Formatter) FormatTask(index int, t task.Task, now time.Time) string {
	var sb strings.Builder

	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	fmt.Fprintf(&sb, "%2d. %s %s ", index, check, f.Swatch(t.Color))

	title := t.Title
	if f.colored && t.Completed {
		title = DoneStyle.Render(title)
	}
	sb.WriteString(title)

	if len(t.Tags) > 0 {
		tags := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			tags[i] = "#" + tag
		}
		line := strings.Join(tags, " ")
		if f.colored {
			line = TagStyle.Render(line)
		}
		sb.WriteString("  " + line)
	}

	if t.Due != nil {
		sb.WriteString("  " + f.formatDue(t, now))
	}

	if f.showTimestamps {
		added := "added " + t.CreatedAt.Format("15:04:05")
		if f.colored {
			added = DimStyle.Render(added)
		}
		sb.WriteString("  " + added)
	}

	return sb.String()
}

func (f *Formatter) formatDue(t task.Task, now time.Time) string {
	due := "due " + t.Due.In(now.Location()).Format(dueLayout)
	if t.Reminded && !t.Completed {
		due += " ⏰"
	}

	if t.Overdue(now) {
		due += " (overdue)"
		if f.colored {
			return OverdueStyle.Render(due)
		}
		return due
	}

	if f.colored {
		return DueStyle.Render(due)
	}
	return due
}

// FormatTaskList renders all tasks followed by a summary line.
func (f *Formatter) FormatTaskList(tasks []task.Task, now time.Time) string {
	if len(tasks) == 0 {
		return f.FormatStatus("No tasks yet. Type a title and press Enter to add one.")
	}

	lines := make([]string, 0, len(tasks)+2)
	open, overdue := 0, 0
	for i, t := range tasks {
		lines = append(lines, f.FormatTask(i+1, t, now))
		if !t.Completed {
			open++
		}
		if t.Overdue(now) {
			overdue++
		}
	}

	summary := fmt.Sprintf("%d open, %d done", open, len(tasks)-open)
	if overdue > 0 {
		summary += fmt.Sprintf(", %d overdue", overdue)
	}
	lines = append(lines, "", f.FormatStatus(summary))

	return strings.Join(lines, "\n")
}

// FormatWelcome renders the startup banner.
func (f *Formatter) FormatWelcome(platform, permission string) string {
	if f.colored {
		titleStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

		labelStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

		valueStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

		hintStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

		boxStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Width(41)

		body := strings.Join([]string{
			titleStyle.Render("taskdeck"),
			labelStyle.Render("Notifications: ") + valueStyle.Render(platform+" ("+permission+")"),
			"",
			hintStyle.Render("Type a task and press Enter, /help for more"),
		}, "\n")

		return "\n" + boxStyle.Render(body) + "\n\n"
	}

	lines := []string{
		"",
		"taskdeck",
		fmt.Sprintf("Notifications: %s (%s)", platform, permission),
		"Type a task and press Enter, /help for more",
		"",
		"",
	}
	return strings.Join(lines, "\n")
}

// FormatPrompt returns the input prompt, carrying the toast on display.
func (f *Formatter) FormatPrompt(toast string) string {
	prompt := "task > "
	if f.colored {
		prompt = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true).
			Render("task > ")
	}
	if toast == "" {
		return prompt
	}
	return f.FormatToast(toast) + " " + prompt
}

// FormatField returns the prompt for one form field.
func (f *Formatter) FormatField(label, hint string) string {
	if hint != "" {
		label += " (" + hint + ")"
	}
	label += ": "
	if f.colored {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(label)
	}
	return label
}
