package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess   = 0 // Panel selected, every quota met (or shortfalls tolerated)
	ExitShortfall = 1 // --strict run with one or more quota shortfalls
	ExitError     = 2 // Configuration, input or runtime error
)

// ShortfallError indicates that selection completed, but one or more quotas
// could not be filled and the run was asked to treat that as a failure.
type ShortfallError struct {
	Message string
}

func (e *ShortfallError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var shortfallErr *ShortfallError
		if errors.As(err, &shortfallErr) {
			os.Exit(ExitShortfall)
		}

		os.Exit(ExitError)
	}
}
