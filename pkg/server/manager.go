package server

import (
	"context"

	"github.com/jamezp/wildfly-plugin-tools/pkg/logging"
	"github.com/jamezp/wildfly-plugin-tools/pkg/mgmt"
)

const subsystem = "Lifecycle"

// Management model attribute names the lifecycle reads.
const (
	attrServerState   = "server-state"
	attrLaunchType    = "launch-type"
	attrLocalHostName = "local-host-name"
	attrRunningMode   = "running-mode"
	attrHostState     = "host-state"
	attrStatus        = "status"
)

// Controller process states with special meaning to the running predicates.
const (
	stateStarting       = "starting"
	stateStopping       = "stopping"
	stateReloadRequired = "reload-required"
)

const runningModeAdminOnly = "ADMIN_ONLY"

const (
	childTypeHost         = "host"
	childTypeServerConfig = "server-config"
)

// Manager drives the lifecycle of the server or domain behind one
// management client: topology detection, running checks, bounded waits,
// shutdown and reload. A Manager holds no state besides the client, so one
// instance is safe for concurrent use and every call owns its own timeout
// budget.
type Manager struct {
	client mgmt.Client
}

// NewManager creates a Manager driving the server behind client.
func NewManager(client mgmt.Client) *Manager {
	return &Manager{client: client}
}

// Client returns the management client the manager drives.
func (m *Manager) Client() mgmt.Client {
	return m.client
}

// Topology determines whether the endpoint is a standalone server or a
// domain controller by reading the root launch-type attribute. Every
// failure, transport or outcome, degrades to TopologyUnknown; this never
// returns an error because callers probe endpoints that may not be up yet.
func (m *Manager) Topology(ctx context.Context) Topology {
	topology, err := m.ProbeTopology(ctx)
	if err != nil {
		logging.Debug(subsystem, "Launch type could not be determined: %v", err)
	}
	return topology
}

// ProbeTopology is the error-surfacing form of Topology for callers that
// need to report why an endpoint is unreachable. The returned topology is
// TopologyUnknown whenever the error is non-nil.
func (m *Manager) ProbeTopology(ctx context.Context) (Topology, error) {
	value, err := mgmt.ExecuteForResult(ctx, m.client, mgmt.ReadAttribute(nil, attrLaunchType))
	if err != nil {
		return TopologyUnknown, err
	}
	return topologyFromLaunchType(value.String()), nil
}

// IsRunning reports whether the server behind the endpoint is up for the
// given topology. Communication failures report false, never an error, so
// the predicate can be polled while a server boots.
func (m *Manager) IsRunning(ctx context.Context, topology Topology) bool {
	switch topology {
	case TopologyStandalone:
		return m.isStandaloneRunning(ctx)
	case TopologyDomain:
		return m.isDomainRunning(ctx, false)
	}
	return false
}

// isStandaloneRunning reads server-state and reports running for every
// state except starting and stopping. States like reload-required or
// restart-required still count as running: readiness here is orthogonal to
// health.
func (m *Manager) isStandaloneRunning(ctx context.Context) bool {
	value, err := mgmt.ExecuteForResult(ctx, m.client, mgmt.ReadAttribute(nil, attrServerState))
	if err != nil {
		logging.Debug(subsystem, "Standalone state check failed: %v", err)
		return false
	}
	state := value.String()
	return state != stateStarting && state != stateStopping
}

// isDomainRunning decides whether a domain is up. With shutdown set the
// question inverts to "is there anything left to wait for": any reachable
// roster member means the domain is still winding down, while a transport
// failure or an empty roster means it is gone.
func (m *Manager) isDomainRunning(ctx context.Context, shutdown bool) bool {
	hostAddress, err := m.HostAddress(ctx)
	if err != nil {
		logging.Debug(subsystem, "Domain host address could not be determined: %v", err)
		return false
	}

	// An admin-only host never starts its managed servers; its own state
	// alone answers the question.
	checkState := mgmt.Composite(
		mgmt.ReadAttribute(hostAddress, attrRunningMode),
		mgmt.ReadAttribute(hostAddress, attrHostState),
	)
	response, err := m.client.Execute(ctx, checkState)
	if err != nil {
		logging.Debug(subsystem, "Domain host state check failed: %v", err)
		return false
	}
	if response.Successful() {
		steps := response.Steps()
		if len(steps) == 2 && steps[0].Response.Result().String() == runningModeAdminOnly {
			hostState := steps[1].Response.Result().String()
			return hostState != stateStarting && hostState != stateStopping
		}
	}

	statuses, err := m.ServerStatuses(ctx)
	if err != nil {
		logging.Debug(subsystem, "Domain server statuses could not be read: %v", err)
		return false
	}
	if shutdown {
		return len(statuses) > 0
	}
	// A member that failed reports not-running exactly like one still
	// starting; ServerStatuses is how callers tell the two apart.
	for _, status := range statuses {
		if status != StatusDisabled && status != StatusStarted {
			return false
		}
	}
	return true
}

// ServerStatuses reads the domain's server roster: every server-config of
// every host mapped to its current status.
func (m *Manager) ServerStatuses(ctx context.Context) (map[ServerIdentity]ServerStatus, error) {
	hosts, err := mgmt.ExecuteForResult(ctx, m.client, mgmt.ReadChildrenNames(nil, childTypeHost))
	if err != nil {
		return nil, err
	}
	statuses := make(map[ServerIdentity]ServerStatus)
	for _, hostValue := range hosts.Items() {
		host := hostValue.String()
		configs, err := mgmt.ExecuteForResult(ctx, m.client,
			mgmt.ReadChildrenResources(mgmt.NewAddress(childTypeHost, host), childTypeServerConfig))
		if err != nil {
			return nil, err
		}
		for _, p := range configs.Properties() {
			identity := ServerIdentity{Host: host, Server: p.Name}
			statuses[identity] = parseServerStatus(p.Value.Get(attrStatus).String())
		}
	}
	return statuses, nil
}

// HostAddress returns the address of the local host controller,
// /host=<local-host-name>. Unlike the running predicates this propagates
// failures: shutdown sequencing needs the address and cannot proceed
// without it.
func (m *Manager) HostAddress(ctx context.Context) (mgmt.Address, error) {
	value, err := mgmt.ExecuteForResult(ctx, m.client, mgmt.ReadAttribute(nil, attrLocalHostName))
	if err != nil {
		return nil, err
	}
	return mgmt.NewAddress(childTypeHost, value.String()), nil
}

// State returns the standalone server-state attribute, degraded the way
// the predicates expect: "failed" when the server answered with a failed
// outcome and "unknown" when it could not be reached.
func (m *Manager) State(ctx context.Context) string {
	response, err := m.client.Execute(ctx, mgmt.ReadAttribute(nil, attrServerState))
	if err != nil {
		logging.Debug(subsystem, "Server state could not be read: %v", err)
		return "unknown"
	}
	if !response.Successful() {
		return "failed"
	}
	return response.Result().String()
}
