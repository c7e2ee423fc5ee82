package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jamezp/wildfly-plugin-tools/internal/cli"
	"github.com/jamezp/wildfly-plugin-tools/pkg/logging"
)

const subsystem = "CLI"

// flags carries the persistent flag values shared by every subcommand.
// Commands read the resolved values through the cli package.
var flags = &cli.CommandFlags{}

// buildCommit and buildDate hold the build metadata the release pipeline
// injects alongside the version. They stay empty for local builds.
var (
	buildCommit string
	buildDate   string
)

// rootCmd represents the base command for the wildfly-tool application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wildfly-tool",
	Short: "Manage WildFly servers over the HTTP management API",
	Long: `wildfly-tool talks to the management endpoint of a WildFly or JBoss EAP
server to inspect and drive its lifecycle: wait for a start to finish,
shut down standalone servers and managed domains, reload after
configuration changes and execute raw management operations.

Controllers can be stored under a name with 'wildfly-tool controller add'
and selected with --controller. Without any configuration the tool talks
to http://localhost:9990/management.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelWarn
		if flags.Debug {
			level = logging.LevelDebug
		}
		logging.Init(level, cmd.ErrOrStderr())
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the
// application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
// This can be used by other commands to access the build version.
func GetVersion() string {
	return rootCmd.Version
}

// SetBuildInfo records the commit and build date shown by the version
// command. Like SetVersion this is called from the main package.
func SetBuildInfo(commit, date string) {
	buildCommit = commit
	buildDate = date
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles
// subcommands and flags. This function is called by main.main().
func Execute() {
	// SetVersionTemplate defines a custom template for displaying the version.
	// This is used when the --version flag is invoked.
	rootCmd.SetVersionTemplate(`{{printf "wildfly-tool version %s\n" .Version}}`)

	// Interrupts cancel the command context so long waits and the console
	// unwind instead of dying mid-operation.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(cli.ExitCode(err))
	}
}

// commandContext returns the command's context, falling back to the
// background context when cobra did not attach one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// noArgs mirrors cobra.NoArgs but classifies the mistake as a usage error
// so it maps to the usage exit code.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &cli.UsageError{Err: err}
	}
	return nil
}

// exactArgs mirrors cobra.ExactArgs with the same usage classification.
func exactArgs(n int) cobra.PositionalArgs {
	inner := cobra.ExactArgs(n)
	return func(cmd *cobra.Command, args []string) error {
		if err := inner(cmd, args); err != nil {
			return &cli.UsageError{Err: err}
		}
		return nil
	}
}

// maximumArgs mirrors cobra.MaximumNArgs with the same usage classification.
func maximumArgs(n int) cobra.PositionalArgs {
	inner := cobra.MaximumNArgs(n)
	return func(cmd *cobra.Command, args []string) error {
		if err := inner(cmd, args); err != nil {
			return &cli.UsageError{Err: err}
		}
		return nil
	}
}

// init is a special Go function that is executed when the package is
// initialized. It is used here to register the shared flags and the
// subcommands that are built through constructors.
func init() {
	cli.RegisterCommonFlags(rootCmd, flags)

	// Flag parse failures are caller mistakes, not runtime failures.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &cli.UsageError{Err: err}
	})

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
