package cli

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jamezp/wildfly-plugin-tools/pkg/mgmt"
)

// mockClient scripts management responses keyed by the CLI notation of the
// executed operation. Operations without a script get a failed outcome so
// code paths that tolerate failures keep going.
type mockClient struct {
	mu        sync.Mutex
	t         *testing.T
	responses map[string]string
	err       error
	executed  []string
}

func newMockClient(t *testing.T, responses map[string]string) *mockClient {
	return &mockClient{t: t, responses: responses}
}

func (c *mockClient) Execute(_ context.Context, op *mgmt.Operation) (*mgmt.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.executed = append(c.executed, op.String())
	if c.err != nil {
		return nil, c.err
	}
	if result, ok := c.responses[op.String()]; ok {
		return successResponse(c.t, result), nil
	}
	return failedResponse(c.t, "no such resource"), nil
}

func successResponse(t *testing.T, result string) *mgmt.Response {
	t.Helper()
	response, err := mgmt.ParseResponse([]byte(`{"outcome":"success","result":` + result + `}`))
	require.NoError(t, err)
	return response
}

func failedResponse(t *testing.T, message string) *mgmt.Response {
	t.Helper()
	response, err := mgmt.ParseResponse([]byte(`{"outcome":"failed","failure-description":"` + message + `"}`))
	require.NoError(t, err)
	return response
}
