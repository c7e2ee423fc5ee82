package server

import (
	"errors"
	"fmt"
	"time"
)

// TimeoutError reports a wait whose wall-clock budget ran out before the
// server converged.
type TimeoutError struct {
	// Op describes what was being waited for.
	Op string
	// Timeout is the budget that was exhausted.
	Timeout time.Duration
}

// Error returns a message naming the wait and its budget.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s did not complete within %s", e.Op, e.Timeout)
}

// IsTimeout checks if an error is a TimeoutError.
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// ProcessExitError reports a tracked server process that exited while the
// toolkit was still waiting for the server to come up. Startup cannot
// succeed once the process is gone, so this preempts any remaining budget.
type ProcessExitError struct {
	// Code is the process exit code.
	Code int
}

// Error returns a message carrying the exit code.
func (e *ProcessExitError) Error() string {
	return fmt.Sprintf("the server process exited unexpectedly with code %d", e.Code)
}

// IsProcessExit checks if an error is a ProcessExitError.
func IsProcessExit(err error) bool {
	var exitErr *ProcessExitError
	return errors.As(err, &exitErr)
}
