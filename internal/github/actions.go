package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ErrRunNotFound means no workflow run matched the dispatch discovery filter.
var ErrRunNotFound = errors.New("no workflow runs found")

// dispatchDelay gives GitHub a moment to register a freshly dispatched run
// before we go looking for it. Variable so tests can shorten it.
var dispatchDelay = 2 * time.Second

// GetRun fetches a single workflow run.
func (c *Client) GetRun(ctx context.Context, owner, repo string, runID int64) (*Run, error) {
	var run Run
	path := fmt.Sprintf("/repos/%s/%s/actions/runs/%d", owner, repo, runID)
	if err := c.get(ctx, path, &run); err != nil {
		return nil, fmt.Errorf("failed to fetch run %d: %w", runID, err)
	}
	return &run, nil
}

// ListRunJobs fetches the jobs of a workflow run.
func (c *Client) ListRunJobs(ctx context.Context, owner, repo string, runID int64) ([]Job, error) {
	var resp jobsResponse
	path := fmt.Sprintf("/repos/%s/%s/actions/runs/%d/jobs?per_page=100", owner, repo, runID)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	return resp.Jobs, nil
}

// ListAnnotations fetches the annotations of a check run. These carry the
// messages emitted by ::notice::, ::warning::, and ::error:: commands.
func (c *Client) ListAnnotations(ctx context.Context, owner, repo string, checkRunID int64) ([]Annotation, error) {
	var anns []Annotation
	path := fmt.Sprintf("/repos/%s/%s/check-runs/%d/annotations", owner, repo, checkRunID)
	if err := c.get(ctx, path, &anns); err != nil {
		return nil, fmt.Errorf("failed to fetch annotations: %w", err)
	}
	return anns, nil
}

// DispatchWorkflow triggers a workflow_dispatch event on the given ref.
// The API returns 204 with no run id; use FindDispatchedRun to locate the
// run it created.
func (c *Client) DispatchWorkflow(ctx context.Context, owner, repo, workflow, ref string, inputs map[string]string) error {
	body := struct {
		Ref    string            `json:"ref"`
		Inputs map[string]string `json:"inputs,omitempty"`
	}{Ref: ref, Inputs: inputs}

	path := fmt.Sprintf("/repos/%s/%s/actions/workflows/%s/dispatches", owner, repo, url.PathEscape(workflow))
	if err := c.post(ctx, path, body, nil); err != nil {
		return fmt.Errorf("failed to dispatch workflow %s: %w", workflow, err)
	}
	return nil
}

// FindDispatchedRun locates the run created by a just-issued dispatch: the
// newest workflow_dispatch run of the workflow on the branch, triggered by
// actor. Filtering by actor keeps us from picking up someone else's run,
// though two concurrent dispatches by the same actor on the same branch can
// still be confused.
func (c *Client) FindDispatchedRun(ctx context.Context, owner, repo, workflow, branch, actor string) (*Run, error) {
	select {
	case <-time.After(dispatchDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	q := url.Values{}
	q.Set("branch", branch)
	q.Set("event", "workflow_dispatch")
	q.Set("actor", actor)
	q.Set("per_page", "1")

	var resp runsResponse
	path := fmt.Sprintf("/repos/%s/%s/actions/workflows/%s/runs?%s", owner, repo, url.PathEscape(workflow), q.Encode())
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("failed to list workflow runs: %w", err)
	}
	if len(resp.WorkflowRuns) == 0 {
		return nil, ErrRunNotFound
	}
	return &resp.WorkflowRuns[0], nil
}

// GetDefaultBranch returns the repository's default branch.
func (c *Client) GetDefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	var repository struct {
		DefaultBranch string `json:"default_branch"`
	}
	if err := c.get(ctx, fmt.Sprintf("/repos/%s/%s", owner, repo), &repository); err != nil {
		return "", fmt.Errorf("failed to fetch repository: %w", err)
	}
	if repository.DefaultBranch == "" {
		return "", fmt.Errorf("repository %s/%s has no default branch", owner, repo)
	}
	return repository.DefaultBranch, nil
}

// GetCurrentLogin returns the login of the authenticated user.
func (c *Client) GetCurrentLogin(ctx context.Context) (string, error) {
	var user struct {
		Login string `json:"login"`
	}
	if err := c.get(ctx, "/user", &user); err != nil {
		return "", fmt.Errorf("failed to fetch current user: %w", err)
	}
	return user.Login, nil
}
