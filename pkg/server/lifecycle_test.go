package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamezp/wildfly-plugin-tools/pkg/mgmt"
)

// fakeProcess is a scriptable ProcessHandle.
type fakeProcess struct {
	mu        sync.Mutex
	alive     bool
	exitCode  int
	destroyed bool
}

func (p *fakeProcess) Alive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.alive
}

func (p *fakeProcess) ExitCode() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.alive {
		return -1
	}
	return p.exitCode
}

func (p *fakeProcess) Destroy() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.destroyed = true
	p.alive = false
	return nil
}

func (p *fakeProcess) wasDestroyed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.destroyed
}

// standaloneStates scripts successive server-state reads, repeating the
// last state once the script runs out.
func standaloneStates(t *testing.T, states ...string) func(op *mgmt.Operation) (*mgmt.Response, error) {
	t.Helper()
	var calls int
	return func(op *mgmt.Operation) (*mgmt.Response, error) {
		require.Equal(t, mgmt.OpReadAttribute, op.Name)
		state := states[len(states)-1]
		if calls < len(states) {
			state = states[calls]
		}
		calls++
		return successResponse(t, fmt.Sprintf("%q", state)), nil
	}
}

func TestManager_WaitUntilRunning_AlreadyRunning(t *testing.T) {
	client := &mockClient{handler: standaloneStates(t, "running")}
	err := NewManager(client).WaitUntilRunning(context.Background(), TopologyStandalone, 5*time.Second, nil)
	require.NoError(t, err)
	assert.Len(t, client.executed, 1)
}

func TestManager_WaitUntilRunning_BecomesRunning(t *testing.T) {
	client := &mockClient{handler: standaloneStates(t, "starting", "starting", "running")}
	start := time.Now()
	err := NewManager(client).WaitUntilRunning(context.Background(), TopologyStandalone, 5*time.Second, nil)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Len(t, client.executed, 3)
}

func TestManager_WaitUntilRunning_DetectsTopology(t *testing.T) {
	var reachable bool
	client := &mockClient{}
	client.handler = func(op *mgmt.Operation) (*mgmt.Response, error) {
		if !reachable {
			reachable = true
			return nil, errors.New("connection refused")
		}
		if name, _ := op.Get(mgmt.ParamName); name == "launch-type" {
			return successResponse(t, `"STANDALONE"`), nil
		}
		return successResponse(t, `"running"`), nil
	}

	// The endpoint is down on the first check, so the topology resolves on
	// the second one and the state read follows it.
	err := NewManager(client).WaitUntilRunning(context.Background(), TopologyUnknown, 5*time.Second, nil)
	require.NoError(t, err)
	assert.Len(t, client.executed, 3)
}

func TestManager_WaitUntilRunning_Timeout(t *testing.T) {
	client := &mockClient{handler: standaloneStates(t, "starting")}
	process := &fakeProcess{alive: true}

	err := NewManager(client).WaitUntilRunning(context.Background(), TopologyStandalone, 250*time.Millisecond, process)
	require.Error(t, err)
	assert.True(t, IsTimeout(err))

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 250*time.Millisecond, timeoutErr.Timeout)
	assert.True(t, process.wasDestroyed(), "a timed out wait must terminate the process it was handed")
}

func TestManager_WaitUntilRunning_ZeroTimeout(t *testing.T) {
	client := &mockClient{}
	err := NewManager(client).WaitUntilRunning(context.Background(), TopologyStandalone, 0, nil)
	assert.True(t, IsTimeout(err))
	assert.Empty(t, client.executed)
}

func TestManager_WaitUntilRunning_ProcessExit(t *testing.T) {
	client := &mockClient{handler: standaloneStates(t, "starting")}
	process := &fakeProcess{alive: false, exitCode: 3}

	err := NewManager(client).WaitUntilRunning(context.Background(), TopologyStandalone, 5*time.Second, process)
	require.Error(t, err)
	assert.True(t, IsProcessExit(err))

	var exitErr *ProcessExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.False(t, process.wasDestroyed(), "a dead process must not be destroyed again")
}

func TestManager_WaitUntilRunning_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := &mockClient{handler: standaloneStates(t, "starting")}
	err := NewManager(client).WaitUntilRunning(ctx, TopologyStandalone, 5*time.Second, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestManager_ShutdownStandalone(t *testing.T) {
	var shutdownSeen bool
	client := &mockClient{}
	client.handler = func(op *mgmt.Operation) (*mgmt.Response, error) {
		switch op.Name {
		case mgmt.OpShutdown:
			assert.Empty(t, op.Address)
			timeout, ok := op.Get(mgmt.ParamTimeout)
			require.True(t, ok)
			assert.Equal(t, 10, timeout)
			shutdownSeen = true
			return successResponse(t, "null"), nil
		case mgmt.OpReadAttribute:
			require.True(t, shutdownSeen, "state must only be polled after the shutdown was issued")
			return successResponse(t, `"stopping"`), nil
		}
		return nil, fmt.Errorf("unexpected operation %s", op)
	}

	err := NewManager(client).ShutdownStandalone(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{mgmt.OpShutdown, mgmt.OpReadAttribute}, client.operations())
}

func TestManager_ShutdownStandaloneFailure(t *testing.T) {
	client := &mockClient{handler: func(*mgmt.Operation) (*mgmt.Response, error) {
		return failedResponse(t, "suspend refused"), nil
	}}
	err := NewManager(client).ShutdownStandalone(context.Background(), -1)
	require.Error(t, err)
	assert.True(t, mgmt.IsOperationError(err))
	assert.Contains(t, err.Error(), "suspend refused")
}

func TestManager_ShutdownDomain(t *testing.T) {
	var down bool
	client := &mockClient{}
	client.handler = func(op *mgmt.Operation) (*mgmt.Response, error) {
		if down {
			return nil, errors.New("connection refused")
		}
		switch op.Name {
		case mgmt.OpStopServers:
			assert.Empty(t, op.Address)
			blocking, ok := op.Get(mgmt.ParamBlocking)
			require.True(t, ok)
			assert.Equal(t, true, blocking)
			timeout, ok := op.Get(mgmt.ParamTimeout)
			require.True(t, ok)
			assert.Equal(t, 30, timeout)
			return successResponse(t, "null"), nil
		case mgmt.OpReadAttribute:
			name, _ := op.Get(mgmt.ParamName)
			require.Equal(t, "local-host-name", name)
			return successResponse(t, `"primary"`), nil
		case mgmt.OpShutdown:
			assert.Equal(t, "/host=primary", op.Address.String())
			down = true
			return successResponse(t, "null"), nil
		}
		return nil, fmt.Errorf("unexpected operation %s", op)
	}

	err := NewManager(client).ShutdownDomain(context.Background(), 30)
	require.NoError(t, err)
	// The convergence probe after the shutdown hits the refused connection.
	assert.Equal(t, []string{mgmt.OpStopServers, mgmt.OpReadAttribute, mgmt.OpShutdown, mgmt.OpReadAttribute},
		client.operations())
}

func TestManager_ShutdownDomainDrainsRoster(t *testing.T) {
	down := false
	rosterReads := 0
	client := &mockClient{}
	client.handler = func(op *mgmt.Operation) (*mgmt.Response, error) {
		if !down {
			switch op.Name {
			case mgmt.OpStopServers:
				return successResponse(t, "null"), nil
			case mgmt.OpReadAttribute:
				return successResponse(t, `"primary"`), nil
			case mgmt.OpShutdown:
				down = true
				return successResponse(t, "null"), nil
			}
			return nil, fmt.Errorf("unexpected operation %s", op)
		}
		// The host stays reachable while its last server drains.
		switch op.Name {
		case mgmt.OpReadAttribute:
			return successResponse(t, `"primary"`), nil
		case mgmt.OpComposite:
			return successResponse(t,
				`{"step-1":{"outcome":"success","result":"NORMAL"},"step-2":{"outcome":"success","result":"running"}}`), nil
		case mgmt.OpReadChildrenNames:
			return successResponse(t, `["primary"]`), nil
		case mgmt.OpReadChildrenResources:
			rosterReads++
			if rosterReads == 1 {
				return successResponse(t, `{"server-one":{"status":"STOPPING"}}`), nil
			}
			return successResponse(t, `{}`), nil
		}
		return nil, fmt.Errorf("unexpected operation %s", op)
	}

	err := NewManager(client).ShutdownDomain(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, rosterReads, "the wait must continue until the roster is empty")
}

func TestManager_ShutdownDomainStopFailure(t *testing.T) {
	client := &mockClient{handler: func(op *mgmt.Operation) (*mgmt.Response, error) {
		require.Equal(t, mgmt.OpStopServers, op.Name)
		return failedResponse(t, "server-two refused to stop"), nil
	}}
	err := NewManager(client).ShutdownDomain(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, mgmt.IsOperationError(err))
	assert.Equal(t, []string{mgmt.OpStopServers}, client.operations(),
		"the host controller must not be shut down when stopping the servers failed")
}

func TestManager_ReloadIfRequired_NotStandalone(t *testing.T) {
	client := &mockClient{handler: func(*mgmt.Operation) (*mgmt.Response, error) {
		return successResponse(t, `"DOMAIN"`), nil
	}}
	err := NewManager(client).ReloadIfRequired(context.Background(), time.Second)
	require.NoError(t, err)
	assert.NotContains(t, client.operations(), mgmt.OpReload)
}

func TestManager_ReloadIfRequired_NoReloadNeeded(t *testing.T) {
	client := &mockClient{handler: func(op *mgmt.Operation) (*mgmt.Response, error) {
		if name, _ := op.Get(mgmt.ParamName); name == "launch-type" {
			return successResponse(t, `"STANDALONE"`), nil
		}
		return successResponse(t, `"running"`), nil
	}}
	err := NewManager(client).ReloadIfRequired(context.Background(), time.Second)
	require.NoError(t, err)
	assert.NotContains(t, client.operations(), mgmt.OpReload)
}

func TestManager_ReloadIfRequired_Reloads(t *testing.T) {
	var reloaded bool
	client := &mockClient{}
	client.handler = func(op *mgmt.Operation) (*mgmt.Response, error) {
		switch op.Name {
		case mgmt.OpReload:
			reloaded = true
			// The server drops the connection before answering.
			return nil, errors.New("connection reset by peer")
		case mgmt.OpReadAttribute:
			if name, _ := op.Get(mgmt.ParamName); name == "launch-type" {
				return successResponse(t, `"STANDALONE"`), nil
			}
			if !reloaded {
				return successResponse(t, `"reload-required"`), nil
			}
			return successResponse(t, `"running"`), nil
		}
		return nil, fmt.Errorf("unexpected operation %s", op)
	}

	err := NewManager(client).ReloadIfRequired(context.Background(), 5*time.Second)
	require.NoError(t, err)
	assert.Contains(t, client.operations(), mgmt.OpReload)
}

func TestManager_ReloadIfRequired_ReloadFails(t *testing.T) {
	client := &mockClient{}
	client.handler = func(op *mgmt.Operation) (*mgmt.Response, error) {
		switch op.Name {
		case mgmt.OpReload:
			return failedResponse(t, "reload refused"), nil
		case mgmt.OpReadAttribute:
			if name, _ := op.Get(mgmt.ParamName); name == "launch-type" {
				return successResponse(t, `"STANDALONE"`), nil
			}
			return successResponse(t, `"reload-required"`), nil
		}
		return nil, fmt.Errorf("unexpected operation %s", op)
	}

	err := NewManager(client).ReloadIfRequired(context.Background(), time.Second)
	require.Error(t, err)
	assert.True(t, mgmt.IsOperationError(err))
	assert.Contains(t, err.Error(), "reload refused")
}
