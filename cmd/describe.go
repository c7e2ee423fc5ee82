package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamezp/wildfly-plugin-tools/internal/cli"
	"github.com/jamezp/wildfly-plugin-tools/internal/formatting"
)

// describeCmd defines the describe command structure.
// It reports the identity of the running container.
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe the running server",
	Long: `Reads the root resource of the management model and reports what is
running there: product name and version, release version, management
model version and launch type. Useful to confirm which installation a
controller actually points at.

Examples:
  # Describe the default controller
  wildfly-tool describe

  # Machine readable description
  wildfly-tool describe --output json`,
	Args: noArgs,
	RunE: runDescribe,
}

// runDescribe is the main entry point for the describe command
func runDescribe(cmd *cobra.Command, args []string) error {
	format, err := formatting.ParseFormat(flags.OutputFormat)
	if err != nil {
		return &cli.UsageError{Err: err}
	}
	conn, err := cli.Connect(flags)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	description, err := conn.Manager.Describe(ctx)
	if err != nil {
		return fmt.Errorf("failed to describe %s: %w", conn.ControllerName, err)
	}
	formatter := formatting.New(format, cmd.OutOrStdout())
	return formatter.Description(formatting.DescribeView(description))
}

// init registers the describe command with the root command.
// This is called automatically when the package is imported.
func init() {
	rootCmd.AddCommand(describeCmd)
}
