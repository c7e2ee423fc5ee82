package cli

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jamezp/wildfly-plugin-tools/internal/config"
	"github.com/jamezp/wildfly-plugin-tools/internal/formatting"
	"github.com/jamezp/wildfly-plugin-tools/pkg/server"
)

// maxConcurrentProbes bounds the parallel requests of a fleet sweep so a
// large controllers map does not open dozens of connections at once.
const maxConcurrentProbes = 4

// FleetStatus probes every configured controller and returns the statuses
// in controller name order. Individual probe failures are reported inside
// the matching status, never as an error for the sweep.
func FleetStatus(ctx context.Context, cfg config.Config, flags *CommandFlags) []formatting.ControllerStatus {
	names := cfg.ControllerNames()
	results := make([]formatting.ControllerStatus, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProbes)
	for i, name := range names {
		g.Go(func() error {
			conn, err := connectTo(cfg, flags, name)
			if err != nil {
				results[i] = formatting.ControllerStatus{
					Controller: name,
					Endpoint:   cfg.Resolve(name).Endpoint,
					Topology:   string(server.TopologyUnknown),
					Error:      err.Error(),
				}
				return nil
			}
			results[i] = Probe(ctx, conn)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
