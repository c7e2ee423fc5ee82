package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// CommandFlags holds the flag values shared by every command that talks to
// a management endpoint. Commands register the flags once on the root
// command and read the resolved values through Connect.
type CommandFlags struct {
	// OutputFormat selects the output rendering (table, json, yaml)
	OutputFormat string
	// Quiet suppresses progress indicators and non-essential output
	Quiet bool
	// Debug enables verbose logging of management requests
	Debug bool
	// ConfigPath overrides the configuration directory
	ConfigPath string
	// Controller names a configured controller or a literal endpoint
	Controller string
	// Username overrides the management user from the config file
	Username string
	// Password overrides the management password from the config file
	Password string
	// Timeout overrides the wait budget in seconds
	Timeout int
}

// RegisterCommonFlags registers the shared flags on a command. Controller
// and credential flags default to their environment variables so scripts
// can avoid repeating them.
//
// The registered flags are:
//   - --output/-o: Output format (table, json, yaml), default: "table"
//   - --quiet/-q: Suppress progress indicators
//   - --debug: Enable debug logging of management requests
//   - --config: Configuration directory (default ~/.config/wildfly-tool)
//   - --controller/-c: Controller name or endpoint (env: WILDFLY_CONTROLLER)
//   - --username/-u: Management user (env: WILDFLY_USERNAME)
//   - --password/-p: Management password (env: WILDFLY_PASSWORD)
//   - --timeout: Wait budget in seconds, overrides the config file
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.PersistentFlags().StringVarP(&flags.OutputFormat, "output", "o", "table", "Output format (table, json, yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress progress indicators and non-essential output")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging of management requests")
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "Configuration directory (default ~/.config/wildfly-tool)")
	cmd.PersistentFlags().StringVarP(&flags.Controller, "controller", "c", os.Getenv("WILDFLY_CONTROLLER"), "Controller name or endpoint (env: WILDFLY_CONTROLLER)")
	cmd.PersistentFlags().StringVarP(&flags.Username, "username", "u", os.Getenv("WILDFLY_USERNAME"), "Management user (env: WILDFLY_USERNAME)")
	cmd.PersistentFlags().StringVarP(&flags.Password, "password", "p", os.Getenv("WILDFLY_PASSWORD"), "Management password (env: WILDFLY_PASSWORD)")
	cmd.PersistentFlags().IntVar(&flags.Timeout, "timeout", 0, "Wait budget in seconds (overrides the config file)")
}
