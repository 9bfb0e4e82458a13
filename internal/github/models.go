package github

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Status represents the lifecycle state of a run, job, or step.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusWaiting    Status = "waiting"
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusUnknown    Status = "unknown"
)

// ParseStatus converts a string to a Status. GitHub adds new statuses over
// time ("waiting" postdates most client libraries), so anything unrecognized
// maps to StatusUnknown instead of failing.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusQueued, StatusWaiting, StatusPending, StatusInProgress, StatusCompleted:
		return Status(s)
	default:
		return StatusUnknown
	}
}

// UnmarshalJSON coerces unrecognized statuses to StatusUnknown.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseStatus(raw)
	return nil
}

// Conclusion represents the terminal outcome of a completed run, job, or
// step. The zero value means no conclusion yet.
type Conclusion string

const (
	ConclusionNone           Conclusion = ""
	ConclusionSuccess        Conclusion = "success"
	ConclusionFailure        Conclusion = "failure"
	ConclusionCancelled      Conclusion = "cancelled"
	ConclusionSkipped        Conclusion = "skipped"
	ConclusionNeutral        Conclusion = "neutral"
	ConclusionActionRequired Conclusion = "action_required"
	ConclusionTimedOut       Conclusion = "timed_out"
	ConclusionUnknown        Conclusion = "unknown"
)

// ParseConclusion converts a string to a Conclusion, preserving absence ("")
// and mapping unrecognized values to ConclusionUnknown.
func ParseConclusion(s string) Conclusion {
	switch Conclusion(s) {
	case ConclusionNone, ConclusionSuccess, ConclusionFailure, ConclusionCancelled,
		ConclusionSkipped, ConclusionNeutral, ConclusionActionRequired, ConclusionTimedOut:
		return Conclusion(s)
	default:
		return ConclusionUnknown
	}
}

// UnmarshalJSON coerces unrecognized conclusions to ConclusionUnknown.
// GitHub sends null for jobs that have not concluded; that stays "".
func (c *Conclusion) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ConclusionNone
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = ParseConclusion(raw)
	return nil
}

// AnnotationLevel classifies a check-run annotation.
type AnnotationLevel string

const (
	AnnotationNotice  AnnotationLevel = "notice"
	AnnotationWarning AnnotationLevel = "warning"
	AnnotationFailure AnnotationLevel = "failure"
)

// ParseAnnotationLevel defaults missing or unrecognized levels to notice.
func ParseAnnotationLevel(s string) AnnotationLevel {
	switch AnnotationLevel(s) {
	case AnnotationWarning, AnnotationFailure:
		return AnnotationLevel(s)
	default:
		return AnnotationNotice
	}
}

// Run represents one execution of a workflow.
type Run struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Status     Status     `json:"status"`
	Conclusion Conclusion `json:"conclusion"`
	RunNumber  int        `json:"run_number"`
	HTMLURL    string     `json:"html_url"`
	HeadBranch string     `json:"head_branch"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Job represents a single job within a workflow run.
type Job struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Status      Status     `json:"status"`
	Conclusion  Conclusion `json:"conclusion"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	// URL like https://api.github.com/repos/{owner}/{repo}/check-runs/{id}
	CheckRunURL string `json:"check_run_url"`
	// Present but empty while the job is queued.
	Steps []Step `json:"steps"`
}

// CheckRunID extracts the check-run id (trailing path segment) from the
// job's check_run_url. Returns false if the URL has no numeric tail.
func (j *Job) CheckRunID() (int64, bool) {
	idx := strings.LastIndex(j.CheckRunURL, "/")
	if idx < 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(j.CheckRunURL[idx+1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Duration returns how long the job ran, or false if timestamps are missing.
func (j *Job) Duration() (time.Duration, bool) {
	if j.StartedAt == nil || j.CompletedAt == nil {
		return 0, false
	}
	d := j.CompletedAt.Sub(*j.StartedAt)
	if d < 0 {
		d = 0
	}
	return d, true
}

// Step represents a single step within a job. Numbers are 1-based and
// unique within the job.
type Step struct {
	Name       string     `json:"name"`
	Number     int        `json:"number"`
	Status     Status     `json:"status"`
	Conclusion Conclusion `json:"conclusion"`
}

// Annotation is a diagnostic attached to a completed job's check run,
// emitted by ::notice::, ::warning::, and ::error:: workflow commands.
type Annotation struct {
	Level   AnnotationLevel `json:"annotation_level"`
	Title   string          `json:"title"`
	Message string          `json:"message"`
}

// UnmarshalJSON applies the notice default for absent or unrecognized levels.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	var raw struct {
		Level   string `json:"annotation_level"`
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Level = ParseAnnotationLevel(raw.Level)
	a.Title = raw.Title
	a.Message = raw.Message
	return nil
}

// jobsResponse is the envelope of GET .../actions/runs/{id}/jobs.
type jobsResponse struct {
	TotalCount int   `json:"total_count"`
	Jobs       []Job `json:"jobs"`
}

// runsResponse is the envelope of GET .../actions/workflows/{id}/runs.
type runsResponse struct {
	TotalCount   int   `json:"total_count"`
	WorkflowRuns []Run `json:"workflow_runs"`
}
