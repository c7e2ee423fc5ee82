package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jamezp/wildfly-plugin-tools/internal/cli"
	"github.com/jamezp/wildfly-plugin-tools/internal/formatting"
)

// statusAll switches the command from one controller to a sweep over every
// controller in the configuration file.
var statusAll bool

// statusCmd defines the status command structure.
// It reports the topology of a server together with the standalone state or
// the domain server roster.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of a WildFly server",
	Long: `Probes the management endpoint and reports what is running there: the
topology (standalone or domain), whether the server counts as running,
the standalone server-state or the domain server roster.

An unreachable endpoint is reported in the output rather than failing
the command, so status can watch servers that are still starting.

Examples:
  # Status of the default controller
  wildfly-tool status

  # Status of a named controller as JSON
  wildfly-tool status --controller staging --output json

  # Probe every configured controller at once
  wildfly-tool status --all`,
	Args: noArgs,
	RunE: runStatus,
}

// runStatus is the main entry point for the status command
func runStatus(cmd *cobra.Command, args []string) error {
	format, err := formatting.ParseFormat(flags.OutputFormat)
	if err != nil {
		return &cli.UsageError{Err: err}
	}
	formatter := formatting.New(format, cmd.OutOrStdout())
	ctx := commandContext(cmd)

	if statusAll {
		cfg, err := cli.LoadConfig(flags)
		if err != nil {
			return err
		}
		return formatter.ControllerStatuses(cli.FleetStatus(ctx, cfg, flags))
	}

	conn, err := cli.Connect(flags)
	if err != nil {
		return err
	}
	status := cli.Probe(ctx, conn)
	return formatter.ControllerStatuses([]formatting.ControllerStatus{status})
}

// init registers the status command and its flags with the root command.
// This is called automatically when the package is imported.
func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusAll, "all", false, "Probe every controller in the configuration file")
}
