package cmd

import (
	"fmt"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"

	"github.com/jamezp/wildfly-plugin-tools/internal/cli"
	"github.com/jamezp/wildfly-plugin-tools/pkg/logging"
	"github.com/jamezp/wildfly-plugin-tools/pkg/server"
)

// waitSdNotify makes the command report readiness to systemd once the
// server is up, for use in a unit's ExecStartPost or a Type=notify wrapper.
var waitSdNotify bool

// waitCmd defines the wait command structure.
// It blocks until the server behind the controller reports running.
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait until a WildFly server is running",
	Long: `Polls the management endpoint until the server reports running, the wait
budget runs out or the command is interrupted. The topology is detected
on the fly, so waiting may begin before the endpoint accepts connections.

For a standalone server running means server-state "running". For a
managed domain it means every host is reachable, no server is starting
or stopping and at least one server reached STARTED.

The wait budget comes from --timeout, the controller configuration or
the 60 second default, in that order. A spent budget exits with code 3.

Examples:
  # Wait for the default controller
  wildfly-tool wait

  # Give a slow domain five minutes
  wildfly-tool wait --controller production --timeout 300

  # Tell systemd when the server is ready
  wildfly-tool wait --sd-notify`,
	Args: noArgs,
	RunE: runWait,
}

// runWait is the main entry point for the wait command
func runWait(cmd *cobra.Command, args []string) error {
	conn, err := cli.Connect(flags)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	message := fmt.Sprintf("Waiting for %s to start", conn.ControllerName)
	err = cli.WithSpinner(flags.Quiet, message, func() error {
		return conn.Manager.WaitUntilRunning(ctx, server.TopologyUnknown, conn.WaitTimeout, nil)
	})
	if err != nil {
		return err
	}

	if waitSdNotify {
		// The server is up either way; a notify failure only loses the
		// readiness signal, so it is logged instead of failing the command.
		if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
			logging.Warn(subsystem, "Failed to notify systemd: %v", err)
		}
	}
	if !flags.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is running\n", conn.ControllerName)
	}
	return nil
}

// init registers the wait command and its flags with the root command.
// This is called automatically when the package is imported.
func init() {
	rootCmd.AddCommand(waitCmd)

	waitCmd.Flags().BoolVar(&waitSdNotify, "sd-notify", false, "Send a systemd readiness notification once the server is running")
}
