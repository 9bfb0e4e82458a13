// Package watch implements the run watch engine: it polls a workflow run,
// reconciles each poll against what was already reported, and drives the
// session to a terminal state within a bounded wait.
//
// The engine is a single cooperative loop. Per-job cursors live for one
// watch session and are never shared, so nothing here needs locking.
package watch

import (
	"github.com/s41290/gh-dispatch/internal/github"
)

// Event is a render event produced by one polling cycle. Within one job,
// events arrive as completed steps in ascending number, then JobUpdated,
// then any annotations; no order is guaranteed across jobs.
type Event interface {
	event()
}

// StepCompleted reports a step finishing. Emitted at most once per step.
type StepCompleted struct {
	JobID      int64
	JobName    string
	StepName   string
	Number     int
	Conclusion github.Conclusion
}

// JobUpdated carries the current state of a job. Emitted every cycle for
// every job, whether or not anything changed.
type JobUpdated struct {
	Job github.Job
}

// AnnotationEmitted reports one check-run annotation of a completed job.
// Annotations for a job are only ever emitted in the cycle where the job
// was first observed completed.
type AnnotationEmitted struct {
	JobID      int64
	JobName    string
	Annotation github.Annotation
}

func (StepCompleted) event()     {}
func (JobUpdated) event()        {}
func (AnnotationEmitted) event() {}

// Sink consumes render events. Render is called once per event, in emission
// order; Flush is called exactly once, after the run completes, so the sink
// can settle any in-progress output.
type Sink interface {
	Render(ev Event)
	Flush()
}

// DiscardSink drops all events. Useful for callers that only want the
// terminal result.
type DiscardSink struct{}

func (DiscardSink) Render(Event) {}
func (DiscardSink) Flush()       {}
