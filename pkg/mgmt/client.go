package mgmt

import (
	"context"
	"errors"
	"fmt"
)

// Client executes management operations against one server or domain
// controller. The error return is transport-level only: a reachable server
// answering with a failed outcome is a valid *Response, not an error.
// Implementations must be safe for concurrent use.
type Client interface {
	Execute(ctx context.Context, op *Operation) (*Response, error)
}

// OperationError reports an operation that executed but came back with a
// non-successful outcome. It carries the request and the full response so
// callers can inspect what the server actually said.
type OperationError struct {
	Operation *Operation
	Response  *Response
}

// Error returns a message combining the operation and the extracted
// failure description.
func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %s failed: %s", e.Operation, e.Response.FailureMessage())
}

// IsOperationError checks if an error is an OperationError.
func IsOperationError(err error) bool {
	var operationErr *OperationError
	return errors.As(err, &operationErr)
}

// ExecuteForResult executes op and returns its result value. A transport
// failure returns a wrapped error; a non-successful outcome returns an
// *OperationError.
func ExecuteForResult(ctx context.Context, client Client, op *Operation) (Value, error) {
	response, err := client.Execute(ctx, op)
	if err != nil {
		return Value{}, fmt.Errorf("failed to execute %s: %w", op, err)
	}
	if !response.Successful() {
		return Value{}, &OperationError{Operation: op, Response: response}
	}
	return response.Result(), nil
}
