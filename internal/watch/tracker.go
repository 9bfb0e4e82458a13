package watch

import (
	"sort"

	"github.com/s41290/gh-dispatch/internal/github"
)

// cursor tracks what has already been reported for one job.
type cursor struct {
	lastEmittedStep    int
	annotationsFetched bool
}

// Tracker owns the per-job cursors of one watch session and computes the
// delta between a freshly fetched job and what was already reported.
type Tracker struct {
	cursors map[int64]*cursor
}

// NewTracker creates an empty tracker. One tracker serves one watch session.
func NewTracker() *Tracker {
	return &Tracker{
		cursors: make(map[int64]*cursor),
	}
}

// Reconcile produces the events needed to reflect new information in job
// and advances the job's cursor so the same information is never emitted
// twice. It returns true when the job just completed and its annotations
// should be fetched; the cursor is marked before the caller fetches, so
// annotations stay at-most-once even if that fetch fails.
func (t *Tracker) Reconcile(job github.Job) ([]Event, bool) {
	cur, ok := t.cursors[job.ID]
	if !ok {
		cur = &cursor{}
		t.cursors[job.ID] = cur
	}

	var events []Event

	// Steps are not guaranteed sorted in the response. Collect the newly
	// completed ones, emit in ascending number, and advance the cursor to
	// the maximum seen this cycle. Steps at or below the cursor are skipped,
	// which also self-heals against shrinking or reordered step arrays.
	var completed []github.Step
	for _, step := range job.Steps {
		if step.Number > cur.lastEmittedStep && step.Status == github.StatusCompleted {
			completed = append(completed, step)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].Number < completed[j].Number
	})
	for _, step := range completed {
		events = append(events, StepCompleted{
			JobID:      job.ID,
			JobName:    job.Name,
			StepName:   step.Name,
			Number:     step.Number,
			Conclusion: step.Conclusion,
		})
		cur.lastEmittedStep = step.Number
	}

	events = append(events, JobUpdated{Job: job})

	needAnnotations := false
	if job.Status == github.StatusCompleted && !cur.annotationsFetched {
		cur.annotationsFetched = true
		needAnnotations = true
	}

	return events, needAnnotations
}
