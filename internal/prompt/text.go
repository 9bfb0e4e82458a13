package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type textModel struct {
	label    string
	input    textinput.Model
	required bool
	done     bool
	aborted  bool
	errMsg   string
}

func newTextModel(label, def string, required bool) textModel {
	ti := textinput.New()
	ti.Placeholder = def
	ti.Focus()
	ti.CharLimit = 512
	return textModel{label: label, input: ti, required: required}
}

func (m textModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textModel) value() string {
	v := strings.TrimSpace(m.input.Value())
	if v == "" {
		return m.input.Placeholder
	}
	return v
}

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if m.required && m.value() == "" {
				m.errMsg = "a value is required"
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	view := fmt.Sprintf("%s %s", titleStyle.Render(m.label), m.input.View())
	if m.errMsg != "" {
		view += "\n" + helpStyle.Render(m.errMsg)
	}
	return view + "\n"
}

// Text prompts for a line of text. An empty entry falls back to def; when
// required, empty entries are rejected until something is typed.
func Text(label, def string, required bool) (string, error) {
	final, err := tea.NewProgram(newTextModel(label, def, required)).Run()
	if err != nil {
		return "", fmt.Errorf("text entry failed: %w", err)
	}
	m := final.(textModel)
	if m.aborted {
		return "", ErrAborted
	}
	fmt.Printf("%s %s\n", titleStyle.Render(m.label), answerStyle.Render(m.value()))
	return m.value(), nil
}
