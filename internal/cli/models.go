package cli

import (
	"fmt"

	"github.com/s41290/gh-dispatch/internal/config"
	"github.com/s41290/gh-dispatch/internal/github"
	"github.com/s41290/gh-dispatch/internal/ui"
)

// WorkflowKind selects which of an app's workflows to dispatch.
type WorkflowKind string

const (
	WorkflowBuild  WorkflowKind = "build"
	WorkflowDeploy WorkflowKind = "deploy"
)

// ParseWorkflowKind converts a flag value to a WorkflowKind.
func ParseWorkflowKind(s string) (WorkflowKind, error) {
	switch WorkflowKind(s) {
	case WorkflowBuild, WorkflowDeploy:
		return WorkflowKind(s), nil
	default:
		return "", fmt.Errorf("invalid workflow %q (expected build or deploy)", s)
	}
}

// Verb returns the progressive verb for flow messages.
func (k WorkflowKind) Verb() string {
	if k == WorkflowDeploy {
		return "Deploying"
	}
	return "Building"
}

// availableKinds lists the workflow kinds the app actually configures.
func availableKinds(app *config.App) []string {
	var kinds []string
	if app.Build != nil {
		kinds = append(kinds, string(WorkflowBuild))
	}
	if app.Deploy != nil {
		kinds = append(kinds, string(WorkflowDeploy))
	}
	return kinds
}

// workflowRef resolves the app's workflow reference for the kind.
func workflowRef(app *config.App, kind WorkflowKind) (*config.WorkflowRef, error) {
	var ref *config.WorkflowRef
	switch kind {
	case WorkflowBuild:
		ref = app.Build
	case WorkflowDeploy:
		ref = app.Deploy
	}
	if ref == nil {
		return nil, fmt.Errorf("no %s workflow configured for this app", kind)
	}
	return ref, nil
}

// frameConclusion maps a completed run's conclusion to the caller-visible
// outcome: success and cancelled are informational, failure is an error,
// and anything else passes through without being treated as failure.
func frameConclusion(run *github.Run) error {
	switch run.Conclusion {
	case github.ConclusionSuccess:
		ui.Success("Workflow completed successfully")
		return nil
	case github.ConclusionFailure:
		return withCode(fmt.Errorf("workflow failed"), ExitRunFailed)
	case github.ConclusionCancelled:
		ui.Warning("Workflow was cancelled")
		return nil
	default:
		conclusion := string(run.Conclusion)
		if conclusion == "" {
			conclusion = "unknown"
		}
		ui.Info(fmt.Sprintf("Workflow finished: %s", conclusion))
		return nil
	}
}
