package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/s41290/gh-dispatch/internal/config"
	"github.com/s41290/gh-dispatch/internal/github"
	"github.com/s41290/gh-dispatch/internal/prompt"
	"github.com/s41290/gh-dispatch/internal/ui"
	"github.com/s41290/gh-dispatch/internal/watch"
	"github.com/s41290/gh-dispatch/pkg/logger"
	"github.com/spf13/cobra"
)

type dispatchOptions struct {
	Workflow string
	NoWait   bool
	Yes      bool
}

// runDispatch is the main flow: resolve app and workflow, collect inputs,
// dispatch, then watch the run to completion unless --no-wait.
func runDispatch(cmd *cobra.Command, appArg string, opts *dispatchOptions) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return withCode(err, ExitConfigError)
	}
	log := newLogger(cfg, cmd)

	appName, err := resolveApp(cfg, appArg)
	if err != nil {
		return err
	}
	app := cfg.Apps[appName]

	kind, err := resolveKind(app, opts.Workflow)
	if err != nil {
		return err
	}
	ref, err := workflowRef(app, kind)
	if err != nil {
		return withCode(err, ExitConfigError)
	}

	token, err := github.ResolveToken()
	if err != nil {
		return withCode(err, ExitAuthError)
	}
	client := github.NewClient(token, github.WithLogger(log.With("component", "github")))

	spin := ui.StartSpinner("Fetching workflow...")
	schema, err := client.GetWorkflowSchema(ctx, ref.Owner, ref.Repo, ref.Workflow)
	if err != nil {
		spin.Stop()
		return withCode(err, ExitDispatchError)
	}
	branch, err := client.GetDefaultBranch(ctx, ref.Owner, ref.Repo)
	spin.Stop()
	if err != nil {
		return withCode(err, ExitDispatchError)
	}
	ui.Info(fmt.Sprintf("Workflow: '%s' (%s)", schema.Name, branch))

	values, err := prompt.NewCollector().CollectInputs(schema, ref.Inputs)
	if err != nil {
		return err
	}

	styles := ui.DefaultStyles()
	fmt.Printf("\n%s %s with inputs:\n", kind.Verb(), styles.Bold.Render(appName))
	for _, v := range values {
		fmt.Printf("  %s = %s\n", styles.Muted.Render(v.Name), styles.Warning.Render(v.Value))
	}
	fmt.Println()

	if !opts.Yes {
		ok, err := prompt.Confirm("Continue?", true)
		if err != nil {
			return err
		}
		if !ok {
			ui.Warning("Aborted")
			return nil
		}
	}

	spin = ui.StartSpinner("Dispatching workflow...")
	err = client.DispatchWorkflow(ctx, ref.Owner, ref.Repo, ref.Workflow, branch, prompt.ToMap(values))
	spin.Stop()
	if err != nil {
		return withCode(err, ExitDispatchError)
	}

	if opts.NoWait {
		ui.Success("Workflow dispatched (not waiting for completion)")
		return nil
	}
	ui.Success("Workflow dispatched")

	spin = ui.StartSpinner("Finding workflow run...")
	run, err := findDispatchedRun(ctx, client, ref, branch)
	spin.Stop()
	if err != nil {
		return withCode(err, ExitDispatchError)
	}

	ui.Info(fmt.Sprintf("Run #%s", styles.Active.Render(fmt.Sprintf("%d", run.RunNumber))))
	fmt.Printf("  %s\n", styles.URL.Render(run.HTMLURL))

	return watchRun(ctx, client, log, ref.Owner, ref.Repo, run.ID, 0, 0)
}

// findDispatchedRun locates the run the dispatch created. The dispatch API
// reports nothing about the run it starts, so this filters recent runs by
// branch, event, and the authenticated actor.
func findDispatchedRun(ctx context.Context, client *github.Client, ref *config.WorkflowRef, branch string) (*github.Run, error) {
	actor, err := client.GetCurrentLogin(ctx)
	if err != nil {
		return nil, err
	}
	return client.FindDispatchedRun(ctx, ref.Owner, ref.Repo, ref.Workflow, branch, actor)
}

// watchRun attaches the watch engine to a run and frames its conclusion.
func watchRun(ctx context.Context, client *github.Client, log *logger.Logger, owner, repo string, runID int64, interval, timeout time.Duration) error {
	watcher := watch.New(client, ui.NewRenderer(os.Stdout), watch.Options{
		Owner:    owner,
		Repo:     repo,
		RunID:    runID,
		Interval: interval,
		MaxWait:  timeout,
		Logger:   log.With("component", "watch"),
	})

	run, err := watcher.Watch(ctx)
	if err != nil {
		return withCode(err, ExitWatchError)
	}
	return frameConclusion(run)
}

// resolveApp picks the application from the argument or a prompt.
func resolveApp(cfg *config.Config, appArg string) (string, error) {
	if appArg != "" {
		if _, ok := cfg.Apps[appArg]; !ok {
			return "", withCode(fmt.Errorf("app %q not found in config", appArg), ExitConfigError)
		}
		return appArg, nil
	}
	return prompt.Select("Select application:", cfg.AppNames())
}

// resolveKind picks the workflow kind from the flag or a prompt.
func resolveKind(app *config.App, flag string) (WorkflowKind, error) {
	if flag != "" {
		kind, err := ParseWorkflowKind(flag)
		if err != nil {
			return "", withCode(err, ExitConfigError)
		}
		return kind, nil
	}

	kinds := availableKinds(app)
	if len(kinds) == 1 {
		return WorkflowKind(kinds[0]), nil
	}
	choice, err := prompt.Select("Select workflow:", kinds)
	if err != nil {
		return "", err
	}
	return WorkflowKind(choice), nil
}

func newLogger(cfg *config.Config, cmd *cobra.Command) *logger.Logger {
	return logger.New(resolveLogLevel(cfg, cmd))
}

// resolveLogLevel prefers an explicit --log-level flag, then the config
// file's log_level, then the flag default.
func resolveLogLevel(cfg *config.Config, cmd *cobra.Command) string {
	level := globalOpts.LogLevel
	if cfg != nil && cfg.LogLevel != "" && !cmd.Flags().Changed("log-level") {
		level = cfg.LogLevel
	}
	return level
}
