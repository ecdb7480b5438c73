package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# taskdeck

Type a title and press **Enter** to add a plain task.

| Command | Description |
|---|---|
| ` + "`/add`" + ` | Add a task with tags, color and due date/time |
| ` + "`/list`, `/ls`" + ` | Show all tasks |
| ` + "`/done N`" + ` | Toggle task N between open and completed |
| ` + "`/del N`" + ` | Delete task N |
| ` + "`/notifications`" + ` | Show queued reminders and notification permission |
| ` + "`/help`, `/h`" + ` | Show this help |
| ` + "`/quit`, `/q`" + ` | Exit |

Due tasks are checked every second. When one comes due you get a
*Reminder* toast and, once you allowed it, a system notification.
Dates use ` + "`YYYY-MM-DD`" + ` and times ` + "`HH:MM`" + `; the time is only asked
for once a date is given.
`

// FormatHelp renders the command reference.
func (f *Formatter) FormatHelp() string {
	if !f.colored {
		return helpMarkdown
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return helpMarkdown
	}

	rendered, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}

	return strings.TrimSpace(rendered) + "\n"
}
