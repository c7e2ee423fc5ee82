package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamezp/wildfly-plugin-tools/pkg/mgmt"
)

// mockClient scripts management responses and records every operation it
// was asked to execute.
type mockClient struct {
	mu       sync.Mutex
	handler  func(op *mgmt.Operation) (*mgmt.Response, error)
	executed []*mgmt.Operation
}

func (c *mockClient) Execute(_ context.Context, op *mgmt.Operation) (*mgmt.Response, error) {
	c.mu.Lock()
	c.executed = append(c.executed, op)
	handler := c.handler
	c.mu.Unlock()
	if handler == nil {
		return nil, errors.New("no handler scripted")
	}
	return handler(op)
}

// operations returns the names of the executed operations in order.
func (c *mockClient) operations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.executed))
	for i, op := range c.executed {
		names[i] = op.Name
	}
	return names
}

func successResponse(t *testing.T, result string) *mgmt.Response {
	t.Helper()
	response, err := mgmt.ParseResponse([]byte(`{"outcome":"success","result":` + result + `}`))
	require.NoError(t, err)
	return response
}

func failedResponse(t *testing.T, message string) *mgmt.Response {
	t.Helper()
	response, err := mgmt.ParseResponse([]byte(fmt.Sprintf(`{"outcome":"failed","failure-description":%q}`, message)))
	require.NoError(t, err)
	return response
}

// domainHandler scripts a healthy domain controller: a local host named
// primary answering the composite mode check with runningMode and
// hostState, plus a roster built from servers (host to server to status).
func domainHandler(t *testing.T, runningMode, hostState string, servers map[string]map[string]string) func(op *mgmt.Operation) (*mgmt.Response, error) {
	t.Helper()
	return func(op *mgmt.Operation) (*mgmt.Response, error) {
		switch op.Name {
		case mgmt.OpReadAttribute:
			name, _ := op.Get(mgmt.ParamName)
			switch name {
			case "launch-type":
				return successResponse(t, `"DOMAIN"`), nil
			case "local-host-name":
				return successResponse(t, `"primary"`), nil
			}
		case mgmt.OpComposite:
			return successResponse(t, fmt.Sprintf(
				`{"step-1":{"outcome":"success","result":%q},"step-2":{"outcome":"success","result":%q}}`,
				runningMode, hostState)), nil
		case mgmt.OpReadChildrenNames:
			hosts := make([]string, 0, len(servers))
			for host := range servers {
				hosts = append(hosts, host)
			}
			sort.Strings(hosts)
			encoded, err := json.Marshal(hosts)
			require.NoError(t, err)
			return successResponse(t, string(encoded)), nil
		case mgmt.OpReadChildrenResources:
			require.NotEmpty(t, op.Address)
			configs := make(map[string]map[string]string, len(servers[op.Address[0].Value]))
			for name, status := range servers[op.Address[0].Value] {
				configs[name] = map[string]string{"status": status}
			}
			encoded, err := json.Marshal(configs)
			require.NoError(t, err)
			return successResponse(t, string(encoded)), nil
		}
		return nil, fmt.Errorf("unexpected operation %s", op)
	}
}

func TestManager_Topology(t *testing.T) {
	tests := []struct {
		name    string
		handler func(op *mgmt.Operation) (*mgmt.Response, error)
		want    Topology
	}{
		{
			name: "standalone",
			handler: func(*mgmt.Operation) (*mgmt.Response, error) {
				return successResponse(t, `"STANDALONE"`), nil
			},
			want: TopologyStandalone,
		},
		{
			name: "domain",
			handler: func(*mgmt.Operation) (*mgmt.Response, error) {
				return successResponse(t, `"DOMAIN"`), nil
			},
			want: TopologyDomain,
		},
		{
			name: "embedded is not managed",
			handler: func(*mgmt.Operation) (*mgmt.Response, error) {
				return successResponse(t, `"EMBEDDED"`), nil
			},
			want: TopologyUnknown,
		},
		{
			name: "unreachable endpoint",
			handler: func(*mgmt.Operation) (*mgmt.Response, error) {
				return nil, errors.New("connection refused")
			},
			want: TopologyUnknown,
		},
		{
			name: "failed outcome",
			handler: func(*mgmt.Operation) (*mgmt.Response, error) {
				return failedResponse(t, "no launch-type here"), nil
			},
			want: TopologyUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{handler: tt.handler}
			assert.Equal(t, tt.want, NewManager(client).Topology(context.Background()))
			require.Len(t, client.executed, 1)
			assert.Equal(t, ":read-attribute(name=launch-type)", client.executed[0].String())
		})
	}
}

func TestManager_ProbeTopology(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		client := &mockClient{handler: func(*mgmt.Operation) (*mgmt.Response, error) {
			return successResponse(t, `"STANDALONE"`), nil
		}}
		topology, err := NewManager(client).ProbeTopology(context.Background())
		require.NoError(t, err)
		assert.Equal(t, TopologyStandalone, topology)
	})

	t.Run("unreachable surfaces the cause", func(t *testing.T) {
		client := &mockClient{handler: func(*mgmt.Operation) (*mgmt.Response, error) {
			return nil, errors.New("connection refused")
		}}
		topology, err := NewManager(client).ProbeTopology(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.Equal(t, TopologyUnknown, topology)
	})
}

func TestManager_IsRunning_Standalone(t *testing.T) {
	tests := []struct {
		name  string
		state string
		err   error
		want  bool
	}{
		{name: "running", state: "running", want: true},
		{name: "reload required still counts as running", state: "reload-required", want: true},
		{name: "restart required still counts as running", state: "restart-required", want: true},
		{name: "starting", state: "starting", want: false},
		{name: "stopping", state: "stopping", want: false},
		{name: "unreachable", err: errors.New("connection refused"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{handler: func(*mgmt.Operation) (*mgmt.Response, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return successResponse(t, fmt.Sprintf("%q", tt.state)), nil
			}}
			assert.Equal(t, tt.want, NewManager(client).IsRunning(context.Background(), TopologyStandalone))
		})
	}
}

func TestManager_IsRunning_UnknownTopology(t *testing.T) {
	client := &mockClient{}
	assert.False(t, NewManager(client).IsRunning(context.Background(), TopologyUnknown))
	assert.Empty(t, client.executed, "an unknown topology must not be probed")
}

func TestManager_IsRunning_Domain(t *testing.T) {
	tests := []struct {
		name        string
		runningMode string
		hostState   string
		servers     map[string]map[string]string
		want        bool
	}{
		{
			name:        "all servers started",
			runningMode: "NORMAL",
			hostState:   "running",
			servers:     map[string]map[string]string{"primary": {"server-one": "STARTED", "server-two": "STARTED"}},
			want:        true,
		},
		{
			name:        "disabled servers count as running",
			runningMode: "NORMAL",
			hostState:   "running",
			servers:     map[string]map[string]string{"primary": {"server-one": "STARTED", "server-two": "DISABLED"}},
			want:        true,
		},
		{
			name:        "starting server holds the domain back",
			runningMode: "NORMAL",
			hostState:   "running",
			servers:     map[string]map[string]string{"primary": {"server-one": "STARTED", "server-two": "STARTING"}},
			want:        false,
		},
		{
			name:        "failed server reads as not running",
			runningMode: "NORMAL",
			hostState:   "running",
			servers:     map[string]map[string]string{"primary": {"server-one": "FAILED"}},
			want:        false,
		},
		{
			name:        "empty roster is running",
			runningMode: "NORMAL",
			hostState:   "running",
			servers:     map[string]map[string]string{"primary": {}},
			want:        true,
		},
		{
			name:        "admin only host ignores the roster",
			runningMode: "ADMIN_ONLY",
			hostState:   "running",
			servers:     map[string]map[string]string{"primary": {"server-one": "STARTING"}},
			want:        true,
		},
		{
			name:        "admin only host still starting",
			runningMode: "ADMIN_ONLY",
			hostState:   "starting",
			servers:     map[string]map[string]string{"primary": {}},
			want:        false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{handler: domainHandler(t, tt.runningMode, tt.hostState, tt.servers)}
			assert.Equal(t, tt.want, NewManager(client).IsRunning(context.Background(), TopologyDomain))
		})
	}
}

func TestManager_IsRunning_DomainUnreachable(t *testing.T) {
	client := &mockClient{handler: func(*mgmt.Operation) (*mgmt.Response, error) {
		return nil, errors.New("connection refused")
	}}
	assert.False(t, NewManager(client).IsRunning(context.Background(), TopologyDomain))
}

func TestManager_ServerStatuses(t *testing.T) {
	servers := map[string]map[string]string{
		"primary":   {"server-one": "STARTED", "server-two": "DISABLED"},
		"secondary": {"server-three": "FAILED", "server-four": "THROTTLED"},
	}
	client := &mockClient{handler: domainHandler(t, "NORMAL", "running", servers)}

	statuses, err := NewManager(client).ServerStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[ServerIdentity]ServerStatus{
		{Host: "primary", Server: "server-one"}:     StatusStarted,
		{Host: "primary", Server: "server-two"}:     StatusDisabled,
		{Host: "secondary", Server: "server-three"}: StatusFailed,
		{Host: "secondary", Server: "server-four"}:  StatusUnknown,
	}, statuses)

	require.Len(t, client.executed, 3)
	assert.Equal(t, ":read-children-names(child-type=host)", client.executed[0].String())
	assert.Equal(t, "/host=primary:read-children-resources(child-type=server-config,include-runtime=true)", client.executed[1].String())
	assert.Equal(t, "/host=secondary:read-children-resources(child-type=server-config,include-runtime=true)", client.executed[2].String())
}

func TestManager_ServerStatusesError(t *testing.T) {
	client := &mockClient{handler: func(*mgmt.Operation) (*mgmt.Response, error) {
		return nil, errors.New("connection refused")
	}}
	_, err := NewManager(client).ServerStatuses(context.Background())
	assert.Error(t, err)
}

func TestManager_State(t *testing.T) {
	tests := []struct {
		name    string
		handler func(op *mgmt.Operation) (*mgmt.Response, error)
		want    string
	}{
		{
			name: "reported state",
			handler: func(*mgmt.Operation) (*mgmt.Response, error) {
				return successResponse(t, `"reload-required"`), nil
			},
			want: "reload-required",
		},
		{
			name: "failed outcome",
			handler: func(*mgmt.Operation) (*mgmt.Response, error) {
				return failedResponse(t, "not now"), nil
			},
			want: "failed",
		},
		{
			name: "unreachable",
			handler: func(*mgmt.Operation) (*mgmt.Response, error) {
				return nil, errors.New("connection refused")
			},
			want: "unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{handler: tt.handler}
			assert.Equal(t, tt.want, NewManager(client).State(context.Background()))
		})
	}
}

func TestManager_HostAddress(t *testing.T) {
	client := &mockClient{handler: func(op *mgmt.Operation) (*mgmt.Response, error) {
		name, _ := op.Get(mgmt.ParamName)
		require.Equal(t, "local-host-name", name)
		return successResponse(t, `"primary"`), nil
	}}
	address, err := NewManager(client).HostAddress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/host=primary", address.String())
}

func TestManager_HostAddressError(t *testing.T) {
	client := &mockClient{handler: func(*mgmt.Operation) (*mgmt.Response, error) {
		return nil, errors.New("connection refused")
	}}
	_, err := NewManager(client).HostAddress(context.Background())
	assert.Error(t, err)
}
