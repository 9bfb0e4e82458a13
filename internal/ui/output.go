package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// tickInterval is how often spinner frames advance.
const tickInterval = 80 * time.Millisecond

var out = DefaultStyles()

// Success prints a green checkmark message.
func Success(msg string) {
	fmt.Printf("%s %s\n", out.Success.Render("✓"), msg)
}

// Info prints a blue arrow message.
func Info(msg string) {
	fmt.Printf("%s %s\n", out.Info.Render("→"), msg)
}

// Warning prints a yellow exclamation message.
func Warning(msg string) {
	fmt.Printf("%s %s\n", out.Warning.Render("!"), msg)
}

// Spinner is a transient single-line spinner for the phases between user
// input and run output (fetching the workflow, dispatching, finding the
// run). Stop clears the line so finished phases leave no trace.
type Spinner struct {
	w      io.Writer
	msg    string
	stop   chan struct{}
	done   sync.WaitGroup
	styles Styles
}

// StartSpinner starts a spinner with the given message.
func StartSpinner(msg string) *Spinner {
	s := &Spinner{
		w:      os.Stderr,
		msg:    msg,
		stop:   make(chan struct{}),
		styles: DefaultStyles(),
	}
	s.done.Add(1)
	go s.run()
	return s
}

func (s *Spinner) run() {
	defer s.done.Done()
	frames := spinner.Dot.Frames
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	i := 0
	for {
		select {
		case <-s.stop:
			fmt.Fprintf(s.w, "\r\033[K")
			return
		case <-ticker.C:
			frame := frames[i%len(frames)]
			fmt.Fprintf(s.w, "\r%s %s", s.styles.Active.Render(frame), s.msg)
			i++
		}
	}
}

// Stop halts the spinner and clears its line.
func (s *Spinner) Stop() {
	close(s.stop)
	s.done.Wait()
}
