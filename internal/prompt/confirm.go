package prompt

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type confirmModel struct {
	question string
	def      bool
	answer   bool
	answered bool
	aborted  bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "y", "Y":
		m.answer, m.answered = true, true
		return m, tea.Quit
	case "n", "N":
		m.answer, m.answered = false, true
		return m, tea.Quit
	case "enter":
		m.answer, m.answered = m.def, true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.answered || m.aborted {
		return ""
	}
	hint := "y/N"
	if m.def {
		hint = "Y/n"
	}
	return fmt.Sprintf("%s %s ", titleStyle.Render(m.question), helpStyle.Render("("+hint+")"))
}

// Confirm asks a yes/no question; enter accepts the default.
func Confirm(question string, def bool) (bool, error) {
	final, err := tea.NewProgram(confirmModel{question: question, def: def}).Run()
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	m := final.(confirmModel)
	if m.aborted {
		return false, ErrAborted
	}
	answer := "no"
	if m.answer {
		answer = "yes"
	}
	fmt.Printf("%s %s\n", titleStyle.Render(m.question), answerStyle.Render(answer))
	return m.answer, nil
}
