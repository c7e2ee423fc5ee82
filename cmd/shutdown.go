package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamezp/wildfly-plugin-tools/internal/cli"
	"github.com/jamezp/wildfly-plugin-tools/pkg/server"
)

// shutdownGrace is the number of seconds the server may spend suspending
// active requests before it exits. 0 shuts down immediately, -1 waits for
// as long as the suspend takes.
var shutdownGrace int

// shutdownCmd defines the shutdown command structure.
// It routes to the standalone or domain shutdown sequence based on the
// detected topology.
var shutdownCmd = &cobra.Command{
	Use:   "shutdown",
	Short: "Shut down a WildFly server or managed domain",
	Long: `Detects the topology of the server behind the controller and shuts it
down. A standalone server receives a shutdown operation and the command
waits until the endpoint stops answering. A managed domain first stops
every managed server with a blocking stop-servers, then asks the local
host controller to exit, in that order.

--grace bounds the suspend phase: the server stops accepting new
requests and waits up to that many seconds for active requests to
finish. The default 0 shuts down immediately and -1 waits for as long
as the suspend takes.

Examples:
  # Immediate shutdown of the default controller
  wildfly-tool shutdown

  # Let in-flight requests finish for up to 30 seconds
  wildfly-tool shutdown --controller production --grace 30`,
	Args: noArgs,
	RunE: runShutdown,
}

// runShutdown is the main entry point for the shutdown command
func runShutdown(cmd *cobra.Command, args []string) error {
	if shutdownGrace < -1 {
		return &cli.UsageError{Err: fmt.Errorf("invalid grace period %d: must be -1, 0 or a positive number of seconds", shutdownGrace)}
	}
	conn, err := cli.Connect(flags)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	switch topology := conn.Manager.Topology(ctx); topology {
	case server.TopologyStandalone:
		message := fmt.Sprintf("Shutting down %s", conn.ControllerName)
		err = cli.WithSpinner(flags.Quiet, message, func() error {
			return conn.Manager.ShutdownStandalone(ctx, shutdownGrace)
		})
	case server.TopologyDomain:
		message := fmt.Sprintf("Stopping all servers in domain %s, then the host controller", conn.ControllerName)
		err = cli.WithSpinner(flags.Quiet, message, func() error {
			return conn.Manager.ShutdownDomain(ctx, shutdownGrace)
		})
	default:
		return fmt.Errorf("cannot determine the topology of %s, is the server running?", conn.Endpoint)
	}
	if err != nil {
		return fmt.Errorf("failed to shut down %s: %w", conn.ControllerName, err)
	}

	if !flags.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s has shut down\n", conn.ControllerName)
	}
	return nil
}

// init registers the shutdown command and its flags with the root command.
// This is called automatically when the package is imported.
func init() {
	rootCmd.AddCommand(shutdownCmd)

	shutdownCmd.Flags().IntVar(&shutdownGrace, "grace", 0, "Seconds to wait for active requests to finish (-1 for no limit)")
}
