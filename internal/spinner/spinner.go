// Package spinner draws a one-line progress indicator on a terminal while a
// long step, such as reading regional workbooks, is running.
package spinner

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Interval is the time between frames.
var Interval = 80 * time.Millisecond

// Start draws message behind an animated frame on w until the returned stop
// function is called. stop clears the line and may be called more than once.
func Start(w io.Writer, message string) (stop func()) {
	done := make(chan struct{})
	cleared := make(chan struct{})
	blank := "\r" + strings.Repeat(" ", runewidth.StringWidth(message)+2) + "\r"

	go func() {
		defer close(cleared)
		ticker := time.NewTicker(Interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-done:
				fmt.Fprint(w, blank) //nolint:errcheck
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], message) //nolint:errcheck
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-cleared
	}
}

// StartIf is Start when enabled is true and a no-op otherwise.
func StartIf(enabled bool, w io.Writer, message string) (stop func()) {
	if !enabled {
		return func() {}
	}
	return Start(w, message)
}
