package cli

import (
	"context"
	"fmt"

	"github.com/jamezp/wildfly-plugin-tools/internal/formatting"
	"github.com/jamezp/wildfly-plugin-tools/pkg/server"
)

// Probe collects the status view for one controller. Failures never
// propagate; they land in the view so fleet sweeps can keep going.
func Probe(ctx context.Context, conn *Connection) formatting.ControllerStatus {
	status := formatting.ControllerStatus{
		Controller: conn.ControllerName,
		Endpoint:   conn.Endpoint,
		Topology:   string(server.TopologyUnknown),
	}

	topology, err := conn.Manager.ProbeTopology(ctx)
	if err != nil {
		status.Error = DescribeFailure(err, conn.Endpoint)
		return status
	}
	status.Topology = string(topology)
	status.Running = conn.Manager.IsRunning(ctx, topology)

	switch topology {
	case server.TopologyStandalone:
		status.Detail = fmt.Sprintf("server-state: %s", conn.Manager.State(ctx))
	case server.TopologyDomain:
		statuses, err := conn.Manager.ServerStatuses(ctx)
		if err != nil {
			status.Error = DescribeFailure(err, conn.Endpoint)
			return status
		}
		started := 0
		for _, serverStatus := range statuses {
			if serverStatus == server.StatusStarted {
				started++
			}
		}
		status.Detail = fmt.Sprintf("%d/%d servers started", started, len(statuses))
		status.Servers = formatting.RosterRows(statuses)
	default:
		status.Detail = "unsupported launch type"
	}
	return status
}
