package console

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamezp/wildfly-plugin-tools/pkg/mgmt"
)

type scriptedClient struct {
	mu        sync.Mutex
	t         *testing.T
	responses map[string]string
	err       error
	executed  []string
}

func (c *scriptedClient) Execute(_ context.Context, op *mgmt.Operation) (*mgmt.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.executed = append(c.executed, op.String())
	if c.err != nil {
		return nil, c.err
	}
	if result, ok := c.responses[op.String()]; ok {
		response, err := mgmt.ParseResponse([]byte(`{"outcome":"success","result":` + result + `}`))
		require.NoError(c.t, err)
		return response, nil
	}
	response, err := mgmt.ParseResponse([]byte(`{"outcome":"failed","failure-description":"no such resource"}`))
	require.NoError(c.t, err)
	return response, nil
}

func newConsole(t *testing.T, client *scriptedClient) (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	c := New(Options{
		Client:   client,
		Endpoint: "http://localhost:9990/management",
		Out:      &buf,
	})
	return c, &buf
}

func TestHandleLineQuit(t *testing.T) {
	c, _ := newConsole(t, &scriptedClient{t: t})

	for _, input := range []string{"quit", "exit", "  quit  "} {
		quit, err := c.handleLine(context.Background(), input)
		require.NoError(t, err)
		assert.True(t, quit, input)
	}
}

func TestHandleLineEmpty(t *testing.T) {
	c, buf := newConsole(t, &scriptedClient{t: t})

	quit, err := c.handleLine(context.Background(), "   ")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Empty(t, buf.String())
}

func TestHandleLineHelp(t *testing.T) {
	c, buf := newConsole(t, &scriptedClient{t: t})

	quit, err := c.handleLine(context.Background(), "help")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, buf.String(), "status")
	assert.Contains(t, buf.String(), `{"operation":"read-attribute","name":"server-state"}`)
}

func TestHandleLineUnrecognized(t *testing.T) {
	c, _ := newConsole(t, &scriptedClient{t: t})

	_, err := c.handleLine(context.Background(), "ls")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "help")
}

func TestHandleLineOperation(t *testing.T) {
	client := &scriptedClient{t: t, responses: map[string]string{
		`:read-attribute(name="server-state")`: `"running"`,
	}}
	c, buf := newConsole(t, client)

	quit, err := c.handleLine(context.Background(), `{"operation":"read-attribute","name":"server-state"}`)
	require.NoError(t, err)
	assert.False(t, quit)
	require.Len(t, client.executed, 1)
	assert.Contains(t, buf.String(), `"outcome": "success"`)
	assert.Contains(t, buf.String(), `"result": "running"`)
}

func TestHandleLineOperationParseError(t *testing.T) {
	client := &scriptedClient{t: t}
	c, _ := newConsole(t, client)

	_, err := c.handleLine(context.Background(), `{"address":[]}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation")
	assert.Empty(t, client.executed)
}

func TestHandleLineOperationTransportError(t *testing.T) {
	client := &scriptedClient{t: t, err: errors.New("connection refused")}
	c, _ := newConsole(t, client)

	_, err := c.handleLine(context.Background(), `{"operation":"read-resource"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestHandleLineStatusStandalone(t *testing.T) {
	client := &scriptedClient{t: t, responses: map[string]string{
		":read-attribute(name=launch-type)":  `"STANDALONE"`,
		":read-attribute(name=server-state)": `"running"`,
	}}
	c, buf := newConsole(t, client)

	quit, err := c.handleLine(context.Background(), "status")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, buf.String(), "topology: standalone")
	assert.Contains(t, buf.String(), "running: true")
	assert.Contains(t, buf.String(), "server-state: running")
}

func TestHandleLineStatusUnreachable(t *testing.T) {
	client := &scriptedClient{t: t, err: errors.New("connection refused")}
	c, _ := newConsole(t, client)

	_, err := c.handleLine(context.Background(), "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPrompt(t *testing.T) {
	client := &scriptedClient{t: t, responses: map[string]string{
		":read-attribute(name=launch-type)": `"STANDALONE"`,
	}}
	c, _ := newConsole(t, client)

	assert.Equal(t, "[standalone@localhost:9990] ", c.prompt(context.Background()))
}

func TestPromptUnreachable(t *testing.T) {
	client := &scriptedClient{t: t, err: errors.New("connection refused")}
	c, _ := newConsole(t, client)

	assert.Equal(t, "[unknown@localhost:9990] ", c.prompt(context.Background()))
}
