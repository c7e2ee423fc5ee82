package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamezp/wildfly-plugin-tools/internal/cli"
)

// reloadCmd defines the reload command structure.
// It reloads a standalone server whose configuration changes are pending.
var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload a standalone server if it requires one",
	Long: `Checks the server-state of a standalone server and issues a reload when
it reports reload-required, then waits for the server to come back. A
server that does not need a reload is left alone, so the command is safe
to run after any batch of configuration changes.

Reload is a standalone concern. Against a managed domain the command
logs a warning and does nothing.

Examples:
  # Reload the default controller when required
  wildfly-tool reload

  # Allow a slow restart two minutes to come back
  wildfly-tool reload --timeout 120`,
	Args: noArgs,
	RunE: runReload,
}

// runReload is the main entry point for the reload command
func runReload(cmd *cobra.Command, args []string) error {
	conn, err := cli.Connect(flags)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	message := fmt.Sprintf("Reloading %s", conn.ControllerName)
	err = cli.WithSpinner(flags.Quiet, message, func() error {
		return conn.Manager.ReloadIfRequired(ctx, conn.WaitTimeout)
	})
	if err != nil {
		return fmt.Errorf("failed to reload %s: %w", conn.ControllerName, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "server-state: %s\n", conn.Manager.State(ctx))
	return nil
}

// init registers the reload command with the root command.
// This is called automatically when the package is imported.
func init() {
	rootCmd.AddCommand(reloadCmd)
}
