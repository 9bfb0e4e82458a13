package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/s41290/gh-dispatch/internal/prompt"
	"github.com/s41290/gh-dispatch/internal/ui"
	"github.com/spf13/cobra"
)

// Exit codes
const (
	ExitOK            = 0
	ExitConfigError   = 2
	ExitAuthError     = 3
	ExitDispatchError = 4
	ExitWatchError    = 5
	ExitRunFailed     = 6
	ExitInternalError = 10
)

// GlobalOptions holds options shared across all commands
type GlobalOptions struct {
	LogLevel string
}

var globalOpts = &GlobalOptions{}

var dispatchOpts = &dispatchOptions{}

// rootCmd represents the base command: dispatch a workflow and watch it.
var rootCmd = &cobra.Command{
	Use:   "gh-dispatch [APP]",
	Short: "Trigger GitHub Actions workflows and watch them run",
	Long: `gh-dispatch triggers a build or deploy workflow for a configured
application, collects the workflow's inputs interactively, and then watches
the resulting run with per-job progress until it completes.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := ""
		if len(args) > 0 {
			app = args[0]
		}
		return runDispatch(cmd, app, dispatchOpts)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.LogLevel, "log-level", "warn", "Log level (error|warn|info|debug)")

	rootCmd.Flags().StringVarP(&dispatchOpts.Workflow, "workflow", "w", "", "Workflow to run (build|deploy)")
	rootCmd.Flags().BoolVar(&dispatchOpts.NoWait, "no-wait", false, "Don't wait for the workflow to complete")
	rootCmd.Flags().BoolVarP(&dispatchOpts.Yes, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(newWatchCmd())
}

// Execute runs the root command and translates errors to exit codes.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			ui.Warning("Aborted")
			os.Exit(ExitOK)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// codedError pairs an error with the process exit code it should produce.
type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withCode(err error, code int) error {
	return &codedError{err: err, code: code}
}

func exitCode(err error) int {
	var coded *codedError
	if errors.As(err, &coded) {
		return coded.code
	}
	return ExitInternalError
}
