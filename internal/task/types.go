package task

import (
	"strings"
	"time"
)

// Color is one of the fixed swatches a task can be marked with.
type Color string

// The six-swatch palette.
const (
	ColorGray   Color = "gray"
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
)

// DefaultColor is used when no swatch (or an unknown one) is chosen.
const DefaultColor = ColorGray

// Palette lists the swatches in display order.
var Palette = []Color{ColorGray, ColorRed, ColorYellow, ColorGreen, ColorBlue, ColorPurple}

// ParseColor maps a swatch name to a Color, falling back to DefaultColor.
func ParseColor(name string) Color {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range Palette {
		if string(c) == name {
			return c
		}
	}
	return DefaultColor
}

// Valid reports whether c is part of the palette.
func (c Color) Valid() bool {
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}

// Task is a single to-do entry.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	Tags      []string   `json:"tags"`
	Color     Color      `json:"color"`
	Due       *time.Time `json:"due,omitempty"`
	Reminded  bool       `json:"reminded"`
	CreatedAt time.Time  `json:"created_at"`
}

// Overdue reports whether the task is still open and its due time has passed.
func (t Task) Overdue(now time.Time) bool {
	return t.Due != nil && !t.Completed && t.Due.Before(now)
}

// reminderDue is the eligibility check applied by the monitor on every tick.
func (t Task) reminderDue(now time.Time) bool {
	return t.Due != nil && !t.Reminded && !t.Completed && !t.Due.After(now)
}

func (t Task) clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.Due != nil {
		d := *t.Due
		c.Due = &d
	}
	return c
}

// Draft holds the raw form fields a task is created from.
type Draft struct {
	Title   string
	Tags    string
	Color   string
	DueDate string
	DueTime string
}
