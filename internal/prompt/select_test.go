package prompt

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestSelectModelNavigation(t *testing.T) {
	m := selectModel{title: "Pick:", options: []string{"one", "two", "three"}}

	step := func(key string) selectModel {
		updated, _ := m.Update(keyMsg(key))
		return updated.(selectModel)
	}

	m = step("down")
	m = step("down")
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	// Bottom edge clamps.
	m = step("down")
	if m.cursor != 2 {
		t.Fatalf("cursor = %d after clamp, want 2", m.cursor)
	}
	m = step("up")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}

	m = step("enter")
	if m.choice != "two" {
		t.Fatalf("choice = %q, want two", m.choice)
	}
}

func TestSelectModelAbort(t *testing.T) {
	m := selectModel{title: "Pick:", options: []string{"one"}}
	updated, _ := m.Update(keyMsg("esc"))
	if !updated.(selectModel).aborted {
		t.Fatal("esc should abort")
	}
}

func TestSelectModelView(t *testing.T) {
	m := selectModel{title: "Pick:", options: []string{"one", "two"}, cursor: 1}
	view := m.View()
	if !strings.Contains(view, "Pick:") {
		t.Errorf("view missing title: %q", view)
	}
	if !strings.Contains(view, "> two") {
		t.Errorf("view missing cursor on selected option: %q", view)
	}
}

func TestConfirmModelKeys(t *testing.T) {
	tests := []struct {
		key  string
		def  bool
		want bool
	}{
		{"y", false, true},
		{"n", true, false},
		{"enter", true, true},
		{"enter", false, false},
	}
	for _, tt := range tests {
		m := confirmModel{question: "Continue?", def: tt.def}
		updated, _ := m.Update(keyMsg(tt.key))
		got := updated.(confirmModel)
		if !got.answered || got.answer != tt.want {
			t.Errorf("key %q with default %v: answer = %v, want %v", tt.key, tt.def, got.answer, tt.want)
		}
	}
}

func TestTextModelRequired(t *testing.T) {
	m := newTextModel("Enter tag:", "", true)

	updated, _ := m.Update(keyMsg("enter"))
	got := updated.(textModel)
	if got.done {
		t.Fatal("empty required input should not complete")
	}
	if got.errMsg == "" {
		t.Fatal("empty required input should set an error message")
	}
}

func TestTextModelDefault(t *testing.T) {
	m := newTextModel("Enter tag:", "latest", false)

	updated, _ := m.Update(keyMsg("enter"))
	got := updated.(textModel)
	if !got.done {
		t.Fatal("enter should complete an optional input")
	}
	if got.value() != "latest" {
		t.Fatalf("value = %q, want the default", got.value())
	}
}
