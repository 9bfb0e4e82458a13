package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
apps:
  website:
    build:
      repo: acme/site
      workflow: build.yml
      inputs:
        app: website
    deploy:
      repo: acme/site
      workflow: deploy.yml
  worker:
    build:
      repo: acme/worker
      workflow: build.yml
log_level: debug
`)

	cfg, err := loadFromFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}

	build := cfg.Apps["website"].Build
	if build.Owner != "acme" || build.Repo != "site" || build.Workflow != "build.yml" {
		t.Errorf("unexpected build ref: %+v", build)
	}
	if build.Inputs["app"] != "website" {
		t.Errorf("prefilled inputs = %v", build.Inputs)
	}

	if cfg.Apps["worker"].Deploy != nil {
		t.Error("worker should have no deploy workflow")
	}

	names := cfg.AppNames()
	if len(names) != 2 || names[0] != "website" || names[1] != "worker" {
		t.Errorf("app names = %v, want sorted [website worker]", names)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "repo missing owner",
			content: "apps:\n  a:\n    build:\n      repo: just-a-repo\n      workflow: b.yml\n",
			wantErr: "expected owner/repo",
		},
		{
			name:    "missing workflow file",
			content: "apps:\n  a:\n    build:\n      repo: acme/site\n",
			wantErr: "no workflow file",
		},
		{
			name:    "no apps",
			content: "log_level: info\n",
			wantErr: "defines no apps",
		},
		{
			name:    "app without workflows",
			content: "apps:\n  a: {}\n",
			wantErr: "defines no workflows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFromFile(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want one containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadPrefersLocalConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("apps:\n  local-app:\n    build:\n      repo: acme/site\n      workflow: b.yml\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Chdir(dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, ok := cfg.Apps["local-app"]; !ok {
		t.Fatalf("expected local config, got apps %v", cfg.AppNames())
	}
}

func TestLoadNoConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "no config file found") {
		t.Fatalf("error = %v, want missing-config error", err)
	}
}
