package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamezp/wildfly-plugin-tools/internal/cli"
	"github.com/jamezp/wildfly-plugin-tools/internal/config"
	"github.com/jamezp/wildfly-plugin-tools/internal/formatting"
)

// controllerAddEndpoint is the management URL stored for a new controller.
var controllerAddEndpoint string

// controllerAddDefault also marks the new controller as the default.
var controllerAddDefault bool

// controllerCmd groups the subcommands that manage named controllers in
// the configuration file.
var controllerCmd = &cobra.Command{
	Use:   "controller",
	Short: "Manage named controllers in the configuration file",
	Long: `Controllers map a name to a management endpoint and optional
credentials, stored in config.yaml under the configuration directory.
Every other command accepts such a name through --controller; the
default controller is used when the flag is absent.

The configuration file is written with owner-only permissions because
it may carry credentials.`,
}

// controllerListCmd lists the configured controllers.
var controllerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured controllers",
	Args:  noArgs,
	RunE:  runControllerList,
}

// controllerAddCmd adds or replaces a named controller.
var controllerAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or replace a named controller",
	Long: `Stores a controller under the given name. The --username and --password
flags are persisted with the entry when set, so commands against the
controller need no further credentials.

Examples:
  # Add a controller and make it the default
  wildfly-tool controller add production --endpoint https://wildfly.example.com:9990/management --default

  # Add a controller with stored credentials
  wildfly-tool controller add staging --endpoint http://10.0.0.5:9990/management -u admin -p secret`,
	Args: exactArgs(1),
	RunE: runControllerAdd,
}

// controllerRemoveCmd removes a named controller.
var controllerRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a named controller",
	Args:  exactArgs(1),
	RunE:  runControllerRemove,
}

// controllerSetDefaultCmd marks a controller as the default.
var controllerSetDefaultCmd = &cobra.Command{
	Use:   "set-default <name>",
	Short: "Make a controller the default",
	Args:  exactArgs(1),
	RunE:  runControllerSetDefault,
}

// runControllerList is the entry point for the controller list command
func runControllerList(cmd *cobra.Command, args []string) error {
	format, err := formatting.ParseFormat(flags.OutputFormat)
	if err != nil {
		return &cli.UsageError{Err: err}
	}
	cfg, err := cli.LoadConfig(flags)
	if err != nil {
		return err
	}
	formatter := formatting.New(format, cmd.OutOrStdout())
	return formatter.Controllers(formatting.ControllerEntries(cfg))
}

// runControllerAdd is the entry point for the controller add command
func runControllerAdd(cmd *cobra.Command, args []string) error {
	if controllerAddEndpoint == "" {
		return &cli.UsageError{Err: fmt.Errorf("the --endpoint flag is required")}
	}
	store, err := configStore()
	if err != nil {
		return err
	}
	controller := config.Controller{
		Endpoint: controllerAddEndpoint,
		Username: flags.Username,
		Password: flags.Password,
	}
	if err := store.SaveController(args[0], controller, controllerAddDefault); err != nil {
		return err
	}
	if controllerAddDefault {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved controller %q as the default\n", args[0])
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved controller %q\n", args[0])
	}
	return nil
}

// runControllerRemove is the entry point for the controller remove command
func runControllerRemove(cmd *cobra.Command, args []string) error {
	store, err := configStore()
	if err != nil {
		return err
	}
	if err := store.DeleteController(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed controller %q\n", args[0])
	return nil
}

// runControllerSetDefault is the entry point for the controller set-default command
func runControllerSetDefault(cmd *cobra.Command, args []string) error {
	store, err := configStore()
	if err != nil {
		return err
	}
	if err := store.SetDefault(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Controller %q is now the default\n", args[0])
	return nil
}

// configStore opens the controller store, honoring the --config override.
func configStore() (*config.Store, error) {
	if flags.ConfigPath != "" {
		return config.NewStoreWithPath(flags.ConfigPath), nil
	}
	return config.NewStore()
}

// init registers the controller command tree and its flags with the root
// command. This is called automatically when the package is imported.
func init() {
	rootCmd.AddCommand(controllerCmd)
	controllerCmd.AddCommand(controllerListCmd)
	controllerCmd.AddCommand(controllerAddCmd)
	controllerCmd.AddCommand(controllerRemoveCmd)
	controllerCmd.AddCommand(controllerSetDefaultCmd)

	controllerAddCmd.Flags().StringVar(&controllerAddEndpoint, "endpoint", "", "Management endpoint URL of the controller")
	controllerAddCmd.Flags().BoolVar(&controllerAddDefault, "default", false, "Make this controller the default")
}
