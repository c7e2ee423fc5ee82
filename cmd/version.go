package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamezp/wildfly-plugin-tools/pkg/version"
)

// versionCompare switches the command from printing the build information
// to comparing two version strings.
var versionCompare bool

// newVersionCmd creates the Cobra command for displaying the application
// version. With --compare it instead orders two version strings the way
// the server orders them, which is handy for scripting upgrade checks.
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version [--compare A B]",
		Short: "Print the version number of wildfly-tool",
		Long: `Prints the version, commit and build date of this binary.

With --compare the two arguments are parsed as WildFly style version
strings and ordered, printing A < B, A > B or A == B. Qualifiers rank
the server way: snapshots sort below alpha and beta releases, and a
missing qualifier means a final release.

Examples:
  wildfly-tool version
  wildfly-tool version --compare 26.1.3.Final 27.0.0.Final`,
		Args: func(cmd *cobra.Command, args []string) error {
			if versionCompare {
				return exactArgs(2)(cmd, args)
			}
			return noArgs(cmd, args)
		},
		RunE: runVersion,
	}
	cmd.Flags().BoolVar(&versionCompare, "compare", false, "Compare two version strings instead of printing the build version")
	return cmd
}

// runVersion prints the build information, or the ordering verdict when
// --compare is set.
func runVersion(cmd *cobra.Command, args []string) error {
	if versionCompare {
		left, right := args[0], args[1]
		switch ordering := version.Compare(left, right); {
		case ordering < 0:
			fmt.Fprintf(cmd.OutOrStdout(), "%s < %s\n", left, right)
		case ordering > 0:
			fmt.Fprintf(cmd.OutOrStdout(), "%s > %s\n", left, right)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "%s == %s\n", left, right)
		}
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wildfly-tool version %s\n", rootCmd.Version)
	if buildCommit != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", buildCommit)
	}
	if buildDate != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", buildDate)
	}
	return nil
}
