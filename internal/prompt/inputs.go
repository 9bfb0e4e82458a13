package prompt

import (
	"fmt"
	"strconv"

	"github.com/s41290/gh-dispatch/internal/github"
)

// InputValue is one collected workflow input, in schema order.
type InputValue struct {
	Name  string
	Value string
}

// Collector gathers workflow input values. The prompt functions are fields
// so tests can stub them out.
type Collector struct {
	Select  func(title string, options []string) (string, error)
	Confirm func(question string, def bool) (bool, error)
	Text    func(label, def string, required bool) (string, error)
}

// NewCollector returns a collector backed by the interactive prompts.
func NewCollector() *Collector {
	return &Collector{
		Select:  Select,
		Confirm: Confirm,
		Text:    Text,
	}
}

// CollectInputs walks the workflow's input schema in order. Inputs with a
// prefilled value are taken as-is without prompting; the rest prompt
// according to their declared type (choice, boolean, or string).
func (c *Collector) CollectInputs(schema *github.WorkflowSchema, prefilled map[string]string) ([]InputValue, error) {
	var values []InputValue

	for _, input := range schema.Inputs {
		if v, ok := prefilled[input.Name]; ok {
			values = append(values, InputValue{Name: input.Name, Value: v})
			continue
		}

		var value string
		var err error
		switch input.Type {
		case "choice":
			if len(input.Options) == 0 {
				return nil, fmt.Errorf("choice input %q has no options", input.Name)
			}
			value, err = c.Select(fmt.Sprintf("Select %s:", input.Label()), input.Options)
		case "boolean":
			var answer bool
			answer, err = c.Confirm(input.Label(), input.Default == "true")
			value = strconv.FormatBool(answer)
		default:
			value, err = c.Text(fmt.Sprintf("Enter %s:", input.Label()), input.Default, input.Required)
		}
		if err != nil {
			return nil, err
		}

		values = append(values, InputValue{Name: input.Name, Value: value})
	}

	return values, nil
}

// ToMap converts collected values to the map form the dispatch API takes.
func ToMap(values []InputValue) map[string]string {
	if len(values) == 0 {
		return nil
	}
	m := make(map[string]string, len(values))
	for _, v := range values {
		m[v.Name] = v.Value
	}
	return m
}
