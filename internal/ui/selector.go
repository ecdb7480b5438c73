package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// SelectorOption is one entry of a selector menu.
type SelectorOption struct {
	Label       string
	Description string
	Marker      string // rendered before the label, e.g. a color swatch
}

// Selector is an arrow-key navigable single choice menu.
type Selector struct {
	question string
	options  []SelectorOption
	selected int
	colored  bool

	cursorStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	optionStyle   lipgloss.Style
	dimStyle      lipgloss.Style
	questionStyle lipgloss.Style
	hintStyle     lipgloss.Style
}

// NewSelector creates a selector with the cursor on the initial option.
func NewSelector(question string, options []SelectorOption, initial int, colored bool) *Selector {
	if initial < 0 || initial >= len(options) {
		initial = 0
	}
	return &Selector{
		question: question,
		options:  options,
		selected: initial,
		colored:  colored,

		cursorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true),
		optionStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		dimStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		questionStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		hintStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	}
}

// Run displays the menu and returns the index of the chosen option.
func (s *Selector) Run() (int, error) {
	if len(s.options) == 0 {
		return -1, fmt.Errorf("no options to select from")
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return s.runSimple(bufio.NewReader(os.Stdin))
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return s.runSimple(bufio.NewReader(os.Stdin))
	}
	defer func() {
		term.Restore(fd, oldState)
		fmt.Print("\033[?25h") // Show cursor
	}()

	fmt.Print("\033[?25l")
	totalLines := len(s.options) + 3
	s.printMenu()

	reader := bufio.NewReader(os.Stdin)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return -1, err
		}

		switch b {
		case 13, 10: // Enter
			s.clearMenu(totalLines)
			return s.selected, nil
		case 3, 4: // Ctrl+C, Ctrl+D
			s.clearMenu(totalLines)
			return -1, fmt.Errorf("cancelled")
		case 'j':
			s.moveDown()
		case 'k':
			s.moveUp()
		case 27: // Escape sequence
			b2, _ := reader.ReadByte()
			if b2 == '[' {
				b3, _ := reader.ReadByte()
				switch b3 {
				case 'A':
					s.moveUp()
				case 'B':
					s.moveDown()
				}
			}
		default:
			if b >= '1' && b <= '9' {
				if idx := int(b - '1'); idx < len(s.options) {
					s.clearMenu(totalLines)
					return idx, nil
				}
			}
		}

		s.clearMenu(totalLines)
		s.printMenu()
	}
}

func (s *Selector) label(opt SelectorOption) string {
	label := opt.Label
	if opt.Marker != "" {
		label = opt.Marker + " " + label
	}
	if opt.Description != "" {
		label += " - " + opt.Description
	}
	return label
}

func (s *Selector) printMenu() {
	var sb strings.Builder

	if s.colored {
		sb.WriteString(s.questionStyle.Render(s.question))
	} else {
		sb.WriteString(s.question)
	}
	sb.WriteString("\r\n")

	hint := "[j/k or arrows] move  [1-9] pick  [enter] select"
	if s.colored {
		sb.WriteString(s.hintStyle.Render(hint))
	} else {
		sb.WriteString(hint)
	}
	sb.WriteString("\r\n\r\n")

	for i, opt := range s.options {
		label := s.label(opt)
		switch {
		case !s.colored && i == s.selected:
			sb.WriteString("> " + label)
		case !s.colored:
			sb.WriteString("  " + label)
		case i == s.selected:
			sb.WriteString(s.cursorStyle.Render("> "))
			sb.WriteString(s.selectedStyle.Render(label))
		default:
			sb.WriteString(s.dimStyle.Render("  "))
			sb.WriteString(s.optionStyle.Render(label))
		}
		sb.WriteString("\r\n")
	}

	fmt.Print(sb.String())
	os.Stdout.Sync()
}

func (s *Selector) clearMenu(lines int) {
	for i := 0; i < lines; i++ {
		fmt.Print("\033[A\033[2K\r")
	}
	os.Stdout.Sync()
}

// runSimple is the fallback for non-terminal input: a numbered list read
// line by line. An empty or invalid answer keeps the initial option.
func (s *Selector) runSimple(reader *bufio.Reader) (int, error) {
	fmt.Println(s.question)
	for i, opt := range s.options {
		fmt.Printf("  [%d] %s\n", i+1, s.label(opt))
	}
	fmt.Print("Enter number: ")

	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return -1, err
	}

	return s.pick(strings.TrimSpace(input)), nil
}

func (s *Selector) pick(input string) int {
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(s.options) {
		return n - 1
	}
	return s.selected
}

func (s *Selector) moveUp() {
	if s.selected > 0 {
		s.selected--
	} else {
		s.selected = len(s.options) - 1
	}
}

func (s *Selector) moveDown() {
	if s.selected < len(s.options)-1 {
		s.selected++
	} else {
		s.selected = 0
	}
}
