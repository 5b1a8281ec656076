package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess          = 0 // Skill passed validation
	ExitValidationFailed = 1 // Report rendered with overall FAIL
	ExitError            = 2 // Usage, configuration or runtime error
)

// ValidationFailedError indicates that validation ran to completion and
// the report was written, but the skill failed.
type ValidationFailedError struct {
	Message string
}

func (e *ValidationFailedError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var failed *ValidationFailedError
		if errors.As(err, &failed) {
			os.Exit(ExitValidationFailed)
		}

		os.Exit(ExitError)
	}
}
