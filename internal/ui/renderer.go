package ui

import (
	"fmt"
	"io"

	"github.com/s41290/gh-dispatch/internal/github"
	"github.com/s41290/gh-dispatch/internal/watch"
)

// Renderer writes watch events as styled terminal lines. It implements
// watch.Sink. Job lines are reprinted only when a job's display state
// changes, so a long queue wait does not scroll the terminal.
type Renderer struct {
	w      io.Writer
	styles Styles

	// Last rendered message per job id.
	jobLines map[int64]string
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		w:        w,
		styles:   DefaultStyles(),
		jobLines: make(map[int64]string),
	}
}

// Render writes one event.
func (r *Renderer) Render(ev watch.Event) {
	switch ev := ev.(type) {
	case watch.StepCompleted:
		fmt.Fprintf(r.w, "  %s %s\n", r.stepIcon(ev.Conclusion), ev.StepName)
	case watch.JobUpdated:
		msg := r.jobMessage(&ev.Job)
		if r.jobLines[ev.Job.ID] == msg {
			return
		}
		r.jobLines[ev.Job.ID] = msg
		fmt.Fprintln(r.w, msg)
	case watch.AnnotationEmitted:
		prefix, body := r.formatAnnotation(ev.Annotation)
		fmt.Fprintf(r.w, "    %s %s\n", prefix, body)
	}
}

// Flush ends the run output with a separating blank line.
func (r *Renderer) Flush() {
	fmt.Fprintln(r.w)
}

func (r *Renderer) stepIcon(conclusion github.Conclusion) string {
	switch conclusion {
	case github.ConclusionSuccess:
		return r.styles.Success.Render("✓")
	case github.ConclusionFailure:
		return r.styles.Failure.Render("✗")
	case github.ConclusionSkipped:
		return r.styles.Muted.Render("○")
	default:
		return r.styles.Muted.Render("?")
	}
}

// jobMessage builds the one-line display state of a job: an icon, the job
// name, and a status suffix (queue state, current step, or duration).
func (r *Renderer) jobMessage(job *github.Job) string {
	var icon string
	switch {
	case job.Status == github.StatusCompleted && job.Conclusion == github.ConclusionSuccess:
		icon = r.styles.Success.Render("✓")
	case job.Status == github.StatusCompleted && job.Conclusion == github.ConclusionFailure:
		icon = r.styles.Failure.Render("✗")
	case job.Status == github.StatusCompleted && job.Conclusion == github.ConclusionCancelled:
		icon = r.styles.Warning.Render("○")
	case job.Status == github.StatusCompleted:
		icon = r.styles.Muted.Render("○")
	case job.Status == github.StatusInProgress:
		icon = r.styles.Active.Render("●")
	default: // queued, waiting, pending
		icon = r.styles.Muted.Render("○")
	}

	var suffix string
	switch job.Status {
	case github.StatusQueued:
		suffix = r.styles.Muted.Render(" (queued)")
	case github.StatusWaiting:
		suffix = r.styles.Muted.Render(" (waiting)")
	case github.StatusInProgress:
		suffix = r.styles.Muted.Render(" (running)")
		for _, step := range job.Steps {
			if step.Status == github.StatusInProgress {
				suffix = " → " + r.styles.Muted.Render(step.Name)
				break
			}
		}
	case github.StatusCompleted:
		if d, ok := job.Duration(); ok {
			secs := int(d.Seconds())
			suffix = r.styles.Muted.Render(fmt.Sprintf(" (%d:%02d)", secs/60, secs%60))
		}
	}

	return fmt.Sprintf("%s %s%s", icon, r.styles.Bold.Render(job.Name), suffix)
}

// formatAnnotation returns the level prefix and message body for one
// annotation line.
func (r *Renderer) formatAnnotation(ann github.Annotation) (string, string) {
	var prefix string
	switch ann.Level {
	case github.AnnotationFailure:
		prefix = r.styles.Failure.Render("✗")
	case github.AnnotationWarning:
		prefix = r.styles.Warning.Render("!")
	default:
		prefix = r.styles.Info.Render("→")
	}

	var body string
	switch {
	case ann.Title != "" && ann.Message != "":
		body = fmt.Sprintf("%s: %s", r.styles.Bold.Render(ann.Title), ann.Message)
	case ann.Title != "":
		body = r.styles.Bold.Render(ann.Title)
	default:
		body = ann.Message
	}

	return prefix, body
}
