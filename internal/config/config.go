// Package config loads the gh-dispatch configuration: a map of application
// names to the build and deploy workflows that can be dispatched for them.
//
// Example config.yaml:
//
//	apps:
//	  my-app:
//	    build:
//	      repo: owner/repo
//	      workflow: build.yml
//	      inputs:
//	        app: my-app
//	    deploy:
//	      repo: owner/repo
//	      workflow: deploy.yml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// configFile is the name of the config file
const configFile = "config.yaml"

// Config holds gh-dispatch configuration.
type Config struct {
	Apps     map[string]*App `yaml:"apps"`
	LogLevel string          `yaml:"log_level"`
}

// App holds the workflow references of one application.
type App struct {
	Build  *WorkflowRef `yaml:"build"`
	Deploy *WorkflowRef `yaml:"deploy"`
}

// WorkflowRef points at a dispatchable workflow.
type WorkflowRef struct {
	Owner    string
	Repo     string
	Workflow string
	// Prefilled input values; inputs listed here are not prompted for.
	Inputs map[string]string
}

// UnmarshalYAML splits the combined owner/repo form used in config files.
func (r *WorkflowRef) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Repo     string            `yaml:"repo"`
		Workflow string            `yaml:"workflow"`
		Inputs   map[string]string `yaml:"inputs"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	owner, repo, ok := strings.Cut(raw.Repo, "/")
	if !ok || owner == "" || repo == "" {
		return fmt.Errorf("invalid repo %q, expected owner/repo", raw.Repo)
	}
	if raw.Workflow == "" {
		return fmt.Errorf("workflow reference for %s/%s has no workflow file", owner, repo)
	}

	r.Owner = owner
	r.Repo = repo
	r.Workflow = raw.Workflow
	r.Inputs = raw.Inputs
	return nil
}

// AppNames returns the configured application names, sorted.
func (c *Config) AppNames() []string {
	names := make([]string, 0, len(c.Apps))
	for name := range c.Apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads configuration, checking in order:
//  1. ./config.yaml (current directory)
//  2. ~/.config/gh-dispatch/config.yaml
func Load() (*Config, error) {
	local := "config.yaml"
	global := globalConfigPath()

	path := ""
	switch {
	case fileExists(local):
		path = local
	case global != "" && fileExists(global):
		path = global
	default:
		return nil, fmt.Errorf("no config file found, checked:\n  %s\n  %s", local, global)
	}

	return loadFromFile(path)
}

// loadFromFile reads and validates one config file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(cfg.Apps) == 0 {
		return nil, fmt.Errorf("%s defines no apps", path)
	}
	for name, app := range cfg.Apps {
		if app == nil || (app.Build == nil && app.Deploy == nil) {
			return nil, fmt.Errorf("app %q defines no workflows", name)
		}
	}

	return cfg, nil
}

// globalConfigPath returns the path to the global config
func globalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gh-dispatch", configFile)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
