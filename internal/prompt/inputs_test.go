package prompt

import (
	"errors"
	"fmt"
	"testing"

	"github.com/s41290/gh-dispatch/internal/github"
)

// stubCollector records which prompt kinds fired and returns canned values.
func stubCollector(calls *[]string) *Collector {
	return &Collector{
		Select: func(title string, options []string) (string, error) {
			*calls = append(*calls, "select")
			return options[0], nil
		},
		Confirm: func(question string, def bool) (bool, error) {
			*calls = append(*calls, "confirm")
			return def, nil
		},
		Text: func(label, def string, required bool) (string, error) {
			*calls = append(*calls, "text")
			if def != "" {
				return def, nil
			}
			return "typed", nil
		},
	}
}

func TestCollectInputsByType(t *testing.T) {
	schema := &github.WorkflowSchema{Inputs: []github.WorkflowInput{
		{Name: "environment", Type: "choice", Options: []string{"staging", "production"}},
		{Name: "push", Type: "boolean", Default: "true"},
		{Name: "tag", Type: "string", Default: "latest"},
		{Name: "note"},
	}}

	var calls []string
	values, err := stubCollector(&calls).CollectInputs(schema, nil)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	want := []InputValue{
		{Name: "environment", Value: "staging"},
		{Name: "push", Value: "true"},
		{Name: "tag", Value: "latest"},
		{Name: "note", Value: "typed"},
	}
	if len(values) != len(want) {
		t.Fatalf("got %d values, want %d", len(values), len(want))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("value %d = %+v, want %+v", i, values[i], want[i])
		}
	}

	wantCalls := []string{"select", "confirm", "text", "text"}
	if fmt.Sprint(calls) != fmt.Sprint(wantCalls) {
		t.Errorf("prompt calls = %v, want %v", calls, wantCalls)
	}
}

func TestCollectInputsPrefilledSkipsPrompts(t *testing.T) {
	schema := &github.WorkflowSchema{Inputs: []github.WorkflowInput{
		{Name: "app", Required: true},
		{Name: "environment", Type: "choice", Options: []string{"staging"}},
	}}

	var calls []string
	values, err := stubCollector(&calls).CollectInputs(schema, map[string]string{
		"app":         "website",
		"environment": "production",
	})
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("prompts fired for prefilled inputs: %v", calls)
	}
	if values[0].Value != "website" || values[1].Value != "production" {
		t.Fatalf("unexpected values: %+v", values)
	}
}

func TestCollectInputsChoiceWithoutOptions(t *testing.T) {
	schema := &github.WorkflowSchema{Inputs: []github.WorkflowInput{
		{Name: "environment", Type: "choice"},
	}}

	var calls []string
	_, err := stubCollector(&calls).CollectInputs(schema, nil)
	if err == nil {
		t.Fatal("expected error for choice input without options")
	}
}

func TestCollectInputsPropagatesAbort(t *testing.T) {
	schema := &github.WorkflowSchema{Inputs: []github.WorkflowInput{
		{Name: "tag"},
	}}

	c := &Collector{
		Text: func(string, string, bool) (string, error) { return "", ErrAborted },
	}
	_, err := c.CollectInputs(schema, nil)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("error = %v, want ErrAborted", err)
	}
}

func TestToMap(t *testing.T) {
	m := ToMap([]InputValue{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}})
	if len(m) != 2 || m["a"] != "1" || m["b"] != "2" {
		t.Fatalf("unexpected map: %v", m)
	}
	if ToMap(nil) != nil {
		t.Fatal("empty values should map to nil for the dispatch body")
	}
}
