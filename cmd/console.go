package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jamezp/wildfly-plugin-tools/internal/cli"
	"github.com/jamezp/wildfly-plugin-tools/internal/config"
	"github.com/jamezp/wildfly-plugin-tools/internal/console"
)

// consoleCmd defines the console command structure.
// It opens an interactive prompt against one management endpoint.
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open an interactive management console",
	Long: `Opens a read-eval-print loop against the management endpoint. Every line
is an operation JSON document and the response document is printed back.
The meta-commands 'help', 'status' and 'quit' work outside of that,
and input history survives across sessions.

Examples:
  # Console against the default controller
  wildfly-tool console

  # Console against a named controller
  wildfly-tool console --controller staging`,
	Args: noArgs,
	RunE: runConsole,
}

// runConsole is the main entry point for the console command
func runConsole(cmd *cobra.Command, args []string) error {
	conn, err := cli.Connect(flags)
	if err != nil {
		return err
	}

	repl := console.New(console.Options{
		Client:      conn.Manager.Client(),
		Endpoint:    conn.Endpoint,
		HistoryFile: historyPath(),
		Out:         cmd.OutOrStdout(),
	})
	return repl.Run(commandContext(cmd))
}

// historyPath places the console history next to the config file. An
// unresolvable config directory just disables history persistence.
func historyPath() string {
	dir := flags.ConfigPath
	if dir == "" {
		var err error
		dir, err = config.DefaultPath()
		if err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "console_history")
}

// init registers the console command with the root command.
// This is called automatically when the package is imported.
func init() {
	rootCmd.AddCommand(consoleCmd)
}
