// Package deployment turns management response documents into deployment
// verdicts: a success/failure flag, a human-readable failure message and the
// raw response for callers that need to dig further.
package deployment

import (
	"errors"
	"fmt"

	"github.com/jamezp/wildfly-plugin-tools/pkg/mgmt"
)

// Result is the verdict of a deployment-related operation. The zero value
// is a successful result with no response document.
type Result struct {
	failureMessage string
	failed         bool
	response       *mgmt.Response
}

// ResultFrom derives a verdict from a response document. A nil or undefined
// response counts as successful with no document, matching operations that
// complete without producing one. For failed outcomes the failure message
// is extracted from the document, descending into composite steps, with a
// generic fallback when the server provided none.
func ResultFrom(response *mgmt.Response) Result {
	if response == nil || !response.Defined() {
		return Result{}
	}
	if response.Successful() {
		return Result{response: response}
	}
	return Result{
		failed:         true,
		failureMessage: response.FailureMessage(),
		response:       response,
	}
}

// Failuref creates a failed verdict with a formatted message and no
// response document.
func Failuref(format string, args ...any) Result {
	return Result{
		failed:         true,
		failureMessage: fmt.Sprintf(format, args...),
	}
}

// Successful reports whether the operation succeeded.
func (r Result) Successful() bool {
	return !r.failed
}

// FailureMessage returns the failure message, or "" for successful results.
func (r Result) FailureMessage() string {
	return r.failureMessage
}

// Response returns the raw response document the verdict was derived from,
// or nil when there was none.
func (r Result) Response() *mgmt.Response {
	return r.response
}

// AssertSuccess converts a failed verdict into an *Error and returns nil
// for successful ones. It is the single point where callers escalate a soft
// result into a hard failure.
func (r Result) AssertSuccess() error {
	if r.failed {
		return &Error{Message: r.failureMessage, Result: r}
	}
	return nil
}

// Error reports a deployment operation that failed.
type Error struct {
	Message string
	Result  Result
}

// Error returns the failure message.
func (e *Error) Error() string {
	return e.Message
}

// IsError checks if an error is a deployment Error.
func IsError(err error) bool {
	var deploymentErr *Error
	return errors.As(err, &deploymentErr)
}
