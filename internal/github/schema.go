package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"
)

// WorkflowSchema is the dispatch-relevant part of a workflow file: its
// display name and the workflow_dispatch input definitions, in file order.
type WorkflowSchema struct {
	Name   string
	Inputs []WorkflowInput
}

// WorkflowInput is one entry of on.workflow_dispatch.inputs.
type WorkflowInput struct {
	Name        string
	Description string
	Type        string // string, boolean, or choice
	Default     string
	Options     []string // choice type only
	Required    bool
}

// UnmarshalYAML decodes an input definition. Defaults may be written as
// bare booleans or numbers in workflow files; dispatch inputs are strings
// on the wire, so scalar defaults are kept as their literal text.
func (i *WorkflowInput) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Description string    `yaml:"description"`
		Type        string    `yaml:"type"`
		Default     yaml.Node `yaml:"default"`
		Options     []string  `yaml:"options"`
		Required    bool      `yaml:"required"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	i.Description = raw.Description
	i.Type = raw.Type
	i.Options = raw.Options
	i.Required = raw.Required
	if raw.Default.Kind == yaml.ScalarNode {
		i.Default = raw.Default.Value
	}
	return nil
}

// Label returns the human-facing prompt label for the input.
func (i *WorkflowInput) Label() string {
	if i.Description != "" {
		return i.Description
	}
	return i.Name
}

// GetWorkflowSchema fetches a workflow file from the repository and parses
// its input schema. workflow is the filename under .github/workflows/.
func (c *Client) GetWorkflowSchema(ctx context.Context, owner, repo, workflow string) (*WorkflowSchema, error) {
	var content struct {
		Content string `json:"content"`
	}
	path := fmt.Sprintf("/repos/%s/%s/contents/.github/workflows/%s", owner, repo, url.PathEscape(workflow))
	if err := c.get(ctx, path, &content); err != nil {
		return nil, fmt.Errorf("failed to fetch workflow file: %w", err)
	}
	if content.Content == "" {
		return nil, fmt.Errorf("workflow file %s has no content", workflow)
	}

	// The contents API returns base64 with embedded newlines.
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' {
			return -1
		}
		return r
	}, content.Content)
	decoded, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to decode workflow file: %w", err)
	}

	return ParseWorkflowSchema(decoded)
}

// ParseWorkflowSchema extracts the name and workflow_dispatch inputs from
// workflow YAML. Inputs keep their order from the file, which is why this
// walks yaml nodes instead of decoding into a map.
func ParseWorkflowSchema(data []byte) (*WorkflowSchema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse workflow YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty workflow file")
	}
	root := doc.Content[0]

	schema := &WorkflowSchema{Name: "Unnamed workflow"}

	if name := mappingValue(root, "name"); name != nil && name.Kind == yaml.ScalarNode && name.Value != "" {
		schema.Name = name.Value
	}

	// YAML 1.1 resolves a bare `on:` key to boolean true, so the trigger
	// section can appear under either key.
	on := mappingValue(root, "on")
	if on == nil {
		on = mappingValue(root, "true")
	}
	if on == nil {
		return schema, nil
	}

	inputs := mappingValue(mappingValue(on, "workflow_dispatch"), "inputs")
	if inputs == nil || inputs.Kind != yaml.MappingNode {
		return schema, nil
	}

	for i := 0; i+1 < len(inputs.Content); i += 2 {
		key, val := inputs.Content[i], inputs.Content[i+1]
		input := WorkflowInput{Name: key.Value}
		if val.Kind == yaml.MappingNode {
			if err := val.Decode(&input); err != nil {
				return nil, fmt.Errorf("failed to parse input %q: %w", key.Value, err)
			}
		}
		schema.Inputs = append(schema.Inputs, input)
	}

	return schema, nil
}

// mappingValue returns the value node for key within a mapping node, or nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
