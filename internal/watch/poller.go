package watch

import (
	"context"
	"fmt"

	"github.com/s41290/gh-dispatch/internal/github"
)

// Client is the slice of the GitHub API the watch engine needs.
// *github.Client satisfies it.
type Client interface {
	GetRun(ctx context.Context, owner, repo string, runID int64) (*github.Run, error)
	ListRunJobs(ctx context.Context, owner, repo string, runID int64) ([]github.Job, error)
	ListAnnotations(ctx context.Context, owner, repo string, checkRunID int64) ([]github.Annotation, error)
}

// Poller performs one complete polling cycle against a run.
type Poller struct {
	client  Client
	owner   string
	repo    string
	runID   int64
	tracker *Tracker
}

// NewPoller creates a poller bound to one run, with fresh cursors.
func NewPoller(client Client, owner, repo string, runID int64) *Poller {
	return &Poller{
		client:  client,
		owner:   owner,
		repo:    repo,
		runID:   runID,
		tracker: NewTracker(),
	}
}

// PollOnce fetches the run and its jobs, reconciles every job, and fetches
// annotations for jobs that just completed. Any fetch error aborts the
// cycle; events produced before the failure are still returned so partial
// progress can be rendered before the session fails.
func (p *Poller) PollOnce(ctx context.Context) (*github.Run, []Event, error) {
	run, err := p.client.GetRun(ctx, p.owner, p.repo, p.runID)
	if err != nil {
		return nil, nil, err
	}

	jobs, err := p.client.ListRunJobs(ctx, p.owner, p.repo, p.runID)
	if err != nil {
		return nil, nil, err
	}

	var events []Event
	for _, job := range jobs {
		jobEvents, needAnnotations := p.tracker.Reconcile(job)
		events = append(events, jobEvents...)

		if !needAnnotations {
			continue
		}
		// Jobs without a parseable check-run reference have nothing to fetch.
		checkRunID, ok := job.CheckRunID()
		if !ok {
			continue
		}
		annotations, err := p.client.ListAnnotations(ctx, p.owner, p.repo, checkRunID)
		if err != nil {
			return run, events, fmt.Errorf("annotations for job %q: %w", job.Name, err)
		}
		for _, ann := range annotations {
			events = append(events, AnnotationEmitted{
				JobID:      job.ID,
				JobName:    job.Name,
				Annotation: ann,
			})
		}
	}

	return run, events, nil
}
