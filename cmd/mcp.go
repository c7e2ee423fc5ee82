package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jamezp/wildfly-plugin-tools/internal/cli"
	"github.com/jamezp/wildfly-plugin-tools/internal/mcpserver"
)

// mcpCmd defines the mcp command structure.
// It serves the management tooling to AI assistants over stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the management tools over the Model Context Protocol",
	Long: `Starts a Model Context Protocol server on standard input and output so
AI assistants can inspect and drive the server behind the controller.
The tools mirror the CLI commands: server_status, server_wait,
server_shutdown, server_reload, server_describe, execute_operation and
compare_versions.

Register the binary in an assistant configuration, for example:

  {
    "mcpServers": {
      "wildfly": {
        "command": "wildfly-tool",
        "args": ["mcp", "--controller", "staging"]
      }
    }
  }`,
	Args: noArgs,
	RunE: runMCP,
}

// runMCP is the main entry point for the mcp command
func runMCP(cmd *cobra.Command, args []string) error {
	conn, err := cli.Connect(flags)
	if err != nil {
		return err
	}
	return mcpserver.NewServer(conn, rootCmd.Version).Start(commandContext(cmd))
}

// init registers the mcp command with the root command.
// This is called automatically when the package is imported.
func init() {
	rootCmd.AddCommand(mcpCmd)
}
