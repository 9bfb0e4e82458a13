// Package prompt collects interactive input with small bubbletea programs:
// list selection, yes/no confirmation, and free text entry.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user cancels a prompt (esc or ctrl+c).
var ErrAborted = errors.New("aborted")

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type selectModel struct {
	title   string
	options []string
	cursor  int
	choice  string
	aborted bool
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		m.choice = m.options[m.cursor]
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.choice != "" || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for i, opt := range m.options {
		if i == m.cursor {
			fmt.Fprintf(&b, "%s %s\n", cursorStyle.Render(">"), selectedStyle.Render(opt))
		} else {
			fmt.Fprintf(&b, "  %s\n", opt)
		}
	}
	b.WriteString(helpStyle.Render("↑/↓ move · enter select · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// Select prompts the user to pick one of options.
func Select(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to select from")
	}

	final, err := tea.NewProgram(selectModel{title: title, options: options}).Run()
	if err != nil {
		return "", fmt.Errorf("selection failed: %w", err)
	}
	m := final.(selectModel)
	if m.aborted {
		return "", ErrAborted
	}
	fmt.Printf("%s %s\n", titleStyle.Render(m.title), answerStyle.Render(m.choice))
	return m.choice, nil
}
