package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a one-line status while a remote font loads. Only the
// animation goroutine writes to out.
type spinner struct {
	msg  string
	out  io.Writer
	stop context.CancelFunc
	done chan struct{}
}

// startSpinner starts animating msg on out. The animation ends when Stop is
// called or ctx is cancelled; either way the line is cleared.
func startSpinner(ctx context.Context, out io.Writer, msg string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{msg: msg, out: out, stop: cancel, done: make(chan struct{})}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.done)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", utf8.RuneCountInString(s.msg)+2))
			return
		case <-tick.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(s.out, "\r%s %s", StyleHighlight.Render(frame), StyleDim.Render(s.msg))
		}
	}
}

// Stop ends the animation and waits for the line to be cleared. It may be
// called more than once.
func (s *spinner) Stop() {
	s.stop()
	<-s.done
}

// whileLoading runs fn with a spinner on out when show is set.
func whileLoading[T any](ctx context.Context, out io.Writer, show bool, fn func() (T, error)) (T, error) {
	if !show {
		return fn()
	}
	s := startSpinner(ctx, out, "Loading font...")
	defer s.Stop()
	return fn()
}
