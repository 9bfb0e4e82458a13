package cli

import (
	"testing"

	"github.com/s41290/gh-dispatch/internal/config"
	"github.com/spf13/cobra"
)

func newLogLevelCmd(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("log-level", "warn", "")
	return cmd
}

func TestResolveLogLevel(t *testing.T) {
	old := globalOpts.LogLevel
	t.Cleanup(func() { globalOpts.LogLevel = old })

	globalOpts.LogLevel = "warn"
	cmd := newLogLevelCmd(t)

	if got := resolveLogLevel(nil, cmd); got != "warn" {
		t.Errorf("no config: level = %q, want warn", got)
	}

	cfg := &config.Config{LogLevel: "debug"}
	if got := resolveLogLevel(cfg, cmd); got != "debug" {
		t.Errorf("config level ignored: level = %q, want debug", got)
	}

	// An explicit flag wins over the config file.
	if err := cmd.Flags().Set("log-level", "error"); err != nil {
		t.Fatal(err)
	}
	globalOpts.LogLevel = "error"
	if got := resolveLogLevel(cfg, cmd); got != "error" {
		t.Errorf("flag override ignored: level = %q, want error", got)
	}
}

func TestRootCommandInvokesDispatch(t *testing.T) {
	if rootCmd.RunE == nil {
		t.Fatal("root command has no RunE")
	}
	if !rootCmd.HasAvailableSubCommands() {
		t.Fatal("watch subcommand not registered")
	}
}
