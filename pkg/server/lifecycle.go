package server

import (
	"context"
	"runtime"
	"time"

	"github.com/jamezp/wildfly-plugin-tools/pkg/logging"
	"github.com/jamezp/wildfly-plugin-tools/pkg/mgmt"
)

// pollInterval is the pause between running checks while waiting for a
// server to start or reload.
const pollInterval = 100 * time.Millisecond

// WaitUntilRunning blocks until the server reports running, the timeout
// budget is spent or the managed process dies. The budget counts wall-clock
// time, checks included, so slow probes do not stretch the wait.
//
// Passing TopologyUnknown makes every check detect the live topology first,
// which covers waiting on an endpoint that is not reachable yet and whose
// kind is therefore still undecided.
//
// process may be nil when the caller did not launch the server itself. With
// a process attached, an exit fails the wait immediately with a
// ProcessExitError, and a timeout destroys the process before returning a
// TimeoutError so no half-started server lingers.
func (m *Manager) WaitUntilRunning(ctx context.Context, topology Topology, timeout time.Duration, process ProcessHandle) error {
	remaining := timeout
	for remaining > 0 {
		before := time.Now()
		current := topology
		if current == TopologyUnknown {
			current = m.Topology(ctx)
		}
		if m.IsRunning(ctx, current) {
			return nil
		}
		if process != nil && !process.Alive() {
			return &ProcessExitError{Code: process.ExitCode()}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
		remaining -= time.Since(before)
	}
	if process != nil {
		process.Destroy()
	}
	return &TimeoutError{Op: "server start", Timeout: timeout}
}

// ShutdownStandalone asks a standalone server to shut down and blocks until
// it no longer reports running. gracePeriod is the number of seconds the
// server may spend suspending active requests first: positive waits at most
// that long, 0 shuts down immediately and -1 waits for as long as the
// suspend takes.
func (m *Manager) ShutdownStandalone(ctx context.Context, gracePeriod int) error {
	op := mgmt.NewOperation(mgmt.OpShutdown, nil).Set(mgmt.ParamTimeout, gracePeriod)
	if _, err := mgmt.ExecuteForResult(ctx, m.client, op); err != nil {
		return err
	}
	for m.isStandaloneRunning(ctx) {
		if err := ctx.Err(); err != nil {
			return err
		}
		runtime.Gosched()
	}
	return nil
}

// ShutdownDomain stops every managed server in the domain, then shuts down
// the local host controller. The phases are strictly ordered: stop-servers
// runs blocking and must succeed before the host controller is asked to
// exit, and the host shutdown targets /host=<local-host-name> as its own
// operation. gracePeriod bounds the per-server suspend like in
// ShutdownStandalone.
//
// After the host acknowledges, this blocks until the endpoint is gone. At
// that point an unreachable endpoint or an empty roster means the domain
// has terminated; only a reachable host still reporting servers keeps the
// wait alive.
func (m *Manager) ShutdownDomain(ctx context.Context, gracePeriod int) error {
	stop := mgmt.NewOperation(mgmt.OpStopServers, nil).
		Set(mgmt.ParamBlocking, true).
		Set(mgmt.ParamTimeout, gracePeriod)
	if _, err := mgmt.ExecuteForResult(ctx, m.client, stop); err != nil {
		return err
	}

	hostAddress, err := m.HostAddress(ctx)
	if err != nil {
		return err
	}
	if _, err := mgmt.ExecuteForResult(ctx, m.client, mgmt.NewOperation(mgmt.OpShutdown, hostAddress)); err != nil {
		return err
	}
	for m.isDomainRunning(ctx, true) {
		if err := ctx.Err(); err != nil {
			return err
		}
		runtime.Gosched()
	}
	return nil
}

// ReloadIfRequired reloads a standalone server whose state is
// reload-required and waits up to timeout for it to come back. Reload is a
// standalone concern; on any other topology this logs a warning and does
// nothing.
func (m *Manager) ReloadIfRequired(ctx context.Context, timeout time.Duration) error {
	topology := m.Topology(ctx)
	if topology != TopologyStandalone {
		logging.Warn(subsystem, "Skipping reload, not supported for topology %q", topology)
		return nil
	}
	if m.State(ctx) != stateReloadRequired {
		return nil
	}
	if err := m.executeReload(ctx); err != nil {
		return err
	}
	return m.WaitUntilRunning(ctx, TopologyStandalone, timeout, nil)
}

// executeReload issues the reload operation. The server commonly drops the
// connection before the response makes it out, so a transport failure here
// is not an error; a failed outcome still is.
func (m *Manager) executeReload(ctx context.Context) error {
	op := mgmt.NewOperation(mgmt.OpReload, nil)
	response, err := m.client.Execute(ctx, op)
	if err != nil {
		logging.Debug(subsystem, "Connection dropped during reload: %v", err)
		return nil
	}
	if !response.Successful() {
		return &mgmt.OperationError{Operation: op, Response: response}
	}
	return nil
}
