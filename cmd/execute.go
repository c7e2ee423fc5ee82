package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamezp/wildfly-plugin-tools/internal/cli"
	"github.com/jamezp/wildfly-plugin-tools/internal/formatting"
	"github.com/jamezp/wildfly-plugin-tools/pkg/mgmt"
)

// executeFile names a file holding the operation document. "-" reads the
// document from standard input.
var executeFile string

// executeCmd defines the execute command structure.
// It sends one raw management operation and prints the response document.
var executeCmd = &cobra.Command{
	Use:   "execute [operation-json]",
	Short: "Execute a raw management operation",
	Long: `Sends one management operation to the server and prints the full
response document. The operation is a JSON document with an "operation"
name, an optional "address" list and any further keys as parameters,
exactly as the HTTP management API expects it.

The document comes from the positional argument or from --file, where
"-" reads standard input. The response is printed either way; an
operation the server rejected additionally fails the command with
exit code 5 so scripts can tell a failed outcome from a broken
connection.

Examples:
  # Read the server state
  wildfly-tool execute '{"operation":"read-attribute","name":"server-state"}'

  # Read a resource below an address
  wildfly-tool execute '{"operation":"read-resource","address":[{"subsystem":"datasources"}]}'

  # Run a prepared operation from a file
  wildfly-tool execute --file add-datasource.json

  # Pipe a document through standard input
  echo '{"operation":"read-resource"}' | wildfly-tool execute --file -`,
	Args: maximumArgs(1),
	RunE: runExecute,
}

// runExecute is the main entry point for the execute command
func runExecute(cmd *cobra.Command, args []string) error {
	data, err := operationInput(cmd, args)
	if err != nil {
		return err
	}
	op, err := mgmt.ParseOperation(data)
	if err != nil {
		return &cli.UsageError{Err: err}
	}
	format, err := formatting.ParseFormat(flags.OutputFormat)
	if err != nil {
		return &cli.UsageError{Err: err}
	}
	conn, err := cli.Connect(flags)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	response, err := conn.Manager.Client().Execute(ctx, op)
	if err != nil {
		return fmt.Errorf("failed to execute %s: %w", op, err)
	}

	// The document is printed for failed outcomes too; the error below only
	// sets the exit code and the stderr line.
	formatter := formatting.New(format, cmd.OutOrStdout())
	if err := formatter.Document(response); err != nil {
		return err
	}
	if !response.Successful() {
		return &mgmt.OperationError{Operation: op, Response: response}
	}
	return nil
}

// operationInput resolves the operation document from the argument or the
// --file flag. Exactly one source must be used.
func operationInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if executeFile != "" && len(args) > 0 {
		return nil, &cli.UsageError{Err: errors.New("pass the operation either as an argument or with --file, not both")}
	}
	switch {
	case executeFile == "":
		if len(args) == 0 {
			return nil, &cli.UsageError{Err: errors.New("no operation given: pass a JSON document or --file")}
		}
		return []byte(args[0]), nil
	case executeFile == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read operation from stdin: %w", err)
		}
		return data, nil
	default:
		data, err := os.ReadFile(executeFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read operation file: %w", err)
		}
		return data, nil
	}
}

// init registers the execute command and its flags with the root command.
// This is called automatically when the package is imported.
func init() {
	rootCmd.AddCommand(executeCmd)

	executeCmd.Flags().StringVarP(&executeFile, "file", "f", "", "Read the operation document from a file (\"-\" for stdin)")
}
