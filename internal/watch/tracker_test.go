package watch

import (
	"testing"

	"github.com/s41290/gh-dispatch/internal/github"
)

func step(number int, status github.Status, conclusion github.Conclusion) github.Step {
	return github.Step{
		Name:       "step",
		Number:     number,
		Status:     status,
		Conclusion: conclusion,
	}
}

func stepNumbers(events []Event) []int {
	var nums []int
	for _, ev := range events {
		if sc, ok := ev.(StepCompleted); ok {
			nums = append(nums, sc.Number)
		}
	}
	return nums
}

func TestReconcileEmitsCompletedStepsOnce(t *testing.T) {
	tracker := NewTracker()

	job := github.Job{ID: 1, Name: "build", Status: github.StatusInProgress, Steps: []github.Step{
		step(1, github.StatusCompleted, github.ConclusionSuccess),
		step(2, github.StatusInProgress, github.ConclusionNone),
	}}

	events, _ := tracker.Reconcile(job)
	if got := stepNumbers(events); len(got) != 1 || got[0] != 1 {
		t.Fatalf("first poll emitted steps %v, want [1]", got)
	}

	// Same snapshot again: only JobUpdated, no step repeats.
	events, _ = tracker.Reconcile(job)
	if got := stepNumbers(events); len(got) != 0 {
		t.Fatalf("idempotent re-poll emitted steps %v, want none", got)
	}
	if len(events) != 1 {
		t.Fatalf("re-poll emitted %d events, want 1 JobUpdated", len(events))
	}
	if _, ok := events[0].(JobUpdated); !ok {
		t.Fatalf("re-poll event is %T, want JobUpdated", events[0])
	}
}

func TestReconcileUnsortedStepsEmitAscending(t *testing.T) {
	tracker := NewTracker()

	job := github.Job{ID: 1, Name: "build", Status: github.StatusInProgress, Steps: []github.Step{
		step(3, github.StatusCompleted, github.ConclusionSuccess),
		step(1, github.StatusCompleted, github.ConclusionSuccess),
		step(2, github.StatusCompleted, github.ConclusionFailure),
	}}

	events, _ := tracker.Reconcile(job)
	got := stepNumbers(events)
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("emitted steps %v, want [1 2 3]", got)
	}

	// Cursor advanced to the max: a reordered/shrunk array emits nothing new.
	job.Steps = job.Steps[:2]
	events, _ = tracker.Reconcile(job)
	if got := stepNumbers(events); len(got) != 0 {
		t.Fatalf("after shrink emitted steps %v, want none", got)
	}
}

func TestReconcileZeroStepsStillUpdatesJob(t *testing.T) {
	tracker := NewTracker()

	job := github.Job{ID: 7, Name: "queued-job", Status: github.StatusQueued}
	for i := 0; i < 3; i++ {
		events, _ := tracker.Reconcile(job)
		if len(events) != 1 {
			t.Fatalf("cycle %d emitted %d events, want 1", i, len(events))
		}
		if _, ok := events[0].(JobUpdated); !ok {
			t.Fatalf("cycle %d event is %T, want JobUpdated", i, events[0])
		}
	}
}

func TestReconcileAnnotationsAtMostOnce(t *testing.T) {
	tracker := NewTracker()

	running := github.Job{ID: 1, Name: "build", Status: github.StatusInProgress}
	if _, need := tracker.Reconcile(running); need {
		t.Fatal("in-progress job should not need annotations")
	}

	done := running
	done.Status = github.StatusCompleted
	done.Conclusion = github.ConclusionSuccess
	if _, need := tracker.Reconcile(done); !need {
		t.Fatal("first completed observation should need annotations")
	}
	if _, need := tracker.Reconcile(done); need {
		t.Fatal("second completed observation should not need annotations again")
	}
}

func TestReconcileMonotonicCursor(t *testing.T) {
	tracker := NewTracker()

	polls := [][]github.Step{
		{step(1, github.StatusCompleted, github.ConclusionSuccess)},
		{step(1, github.StatusCompleted, github.ConclusionSuccess), step(2, github.StatusCompleted, github.ConclusionSuccess)},
		// Upstream anomaly: poll reports only an older step.
		{step(1, github.StatusCompleted, github.ConclusionSuccess)},
		{step(3, github.StatusCompleted, github.ConclusionSuccess)},
	}

	var emitted []int
	for _, steps := range polls {
		events, _ := tracker.Reconcile(github.Job{ID: 1, Status: github.StatusInProgress, Steps: steps})
		emitted = append(emitted, stepNumbers(events)...)
	}

	// Every step at most once, in strictly increasing order.
	for i := 1; i < len(emitted); i++ {
		if emitted[i] <= emitted[i-1] {
			t.Fatalf("emission order %v is not strictly increasing", emitted)
		}
	}
	if len(emitted) != 3 {
		t.Fatalf("emitted %v, want steps 1, 2, 3 exactly once each", emitted)
	}
}

func TestReconcileUnknownStatusDoesNotAbort(t *testing.T) {
	tracker := NewTracker()

	job := github.Job{ID: 1, Name: "odd", Status: github.StatusUnknown, Steps: []github.Step{
		step(1, github.StatusUnknown, github.ConclusionUnknown),
	}}

	events, need := tracker.Reconcile(job)
	if need {
		t.Fatal("unknown status should not trigger annotation fetch")
	}
	if len(events) != 1 {
		t.Fatalf("emitted %d events, want only JobUpdated", len(events))
	}
}
