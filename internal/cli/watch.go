package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/s41290/gh-dispatch/internal/github"
	"github.com/s41290/gh-dispatch/internal/ui"
	"github.com/s41290/gh-dispatch/pkg/logger"
	"github.com/spf13/cobra"
)

type watchOptions struct {
	Repo     string
	Interval time.Duration
	Timeout  time.Duration
}

func newWatchCmd() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch RUN_ID",
		Short: "Watch an existing workflow run",
		Long: `Attach to a workflow run that is already dispatched and watch its
jobs, steps, and annotations until it completes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Repo, "repo", "R", "", "Repository in owner/repo form (required)")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 0, "Poll interval (default 5s)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Give up after this long (default 30m)")
	cmd.MarkFlagRequired("repo")

	return cmd
}

func runWatch(cmd *cobra.Command, runIDArg string, opts *watchOptions) error {
	runID, err := strconv.ParseInt(runIDArg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", runIDArg)
	}
	owner, repo, ok := strings.Cut(opts.Repo, "/")
	if !ok || owner == "" || repo == "" {
		return withCode(fmt.Errorf("invalid repo %q, expected owner/repo", opts.Repo), ExitConfigError)
	}

	token, err := github.ResolveToken()
	if err != nil {
		return withCode(err, ExitAuthError)
	}
	log := logger.New(globalOpts.LogLevel)
	client := github.NewClient(token, github.WithLogger(log.With("component", "github")))

	ui.Info(fmt.Sprintf("Watching run %d in %s", runID, opts.Repo))
	return watchRun(cmd.Context(), client, log, owner, repo, runID, opts.Interval, opts.Timeout)
}
