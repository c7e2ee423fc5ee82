package mgmt

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient returns canned responses keyed by operation name.
type scriptedClient struct {
	responses map[string]string
	err       error
	executed  []*Operation
}

func (c *scriptedClient) Execute(ctx context.Context, op *Operation) (*Response, error) {
	c.executed = append(c.executed, op)
	if c.err != nil {
		return nil, c.err
	}
	doc, ok := c.responses[op.Name]
	if !ok {
		return nil, fmt.Errorf("no scripted response for %s", op.Name)
	}
	return ParseResponse([]byte(doc))
}

var _ Client = (*scriptedClient)(nil)

func TestExecuteForResult(t *testing.T) {
	client := &scriptedClient{responses: map[string]string{
		OpReadAttribute: `{"outcome":"success","result":"running"}`,
	}}

	result, err := ExecuteForResult(context.Background(), client, ReadAttribute(nil, "server-state"))
	require.NoError(t, err)
	assert.Equal(t, "running", result.String())
}

func TestExecuteForResultFailedOutcome(t *testing.T) {
	client := &scriptedClient{responses: map[string]string{
		OpReadAttribute: `{"outcome":"failed","failure-description":"WFLYCTL0216: Management resource not found"}`,
	}}

	op := ReadAttribute(nil, "local-host-name")
	_, err := ExecuteForResult(context.Background(), client, op)
	require.Error(t, err)
	assert.True(t, IsOperationError(err))

	var operationErr *OperationError
	require.ErrorAs(t, err, &operationErr)
	assert.Same(t, op, operationErr.Operation)
	assert.Contains(t, operationErr.Error(), "WFLYCTL0216")
	assert.Contains(t, operationErr.Error(), "read-attribute")
}

func TestExecuteForResultTransportError(t *testing.T) {
	transportErr := errors.New("connection refused")
	client := &scriptedClient{err: transportErr}

	_, err := ExecuteForResult(context.Background(), client, ReadAttribute(nil, "server-state"))
	require.Error(t, err)
	assert.ErrorIs(t, err, transportErr)
	assert.False(t, IsOperationError(err))
}

func TestIsOperationErrorNil(t *testing.T) {
	assert.False(t, IsOperationError(nil))
	assert.False(t, IsOperationError(errors.New("other")))
}
