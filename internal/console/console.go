// Package console implements the interactive operation console behind
// "wildfly-tool console". Each input line is a management operation as a
// JSON document; a few meta commands cover the common questions.
package console

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/jamezp/wildfly-plugin-tools/internal/formatting"
	"github.com/jamezp/wildfly-plugin-tools/pkg/logging"
	"github.com/jamezp/wildfly-plugin-tools/pkg/mgmt"
	"github.com/jamezp/wildfly-plugin-tools/pkg/server"
)

const subsystem = "Console"

// Options configures a Console.
type Options struct {
	// Client executes the operations typed into the console.
	Client mgmt.Client
	// Endpoint is the management URL, shown in the prompt.
	Endpoint string
	// HistoryFile persists input history across sessions. Empty disables
	// persistence.
	HistoryFile string
	// Out receives console output. Nil defaults to stdout.
	Out io.Writer
}

// Console is an interactive read-eval-print loop over one management
// endpoint.
type Console struct {
	client   mgmt.Client
	manager  *server.Manager
	endpoint string
	history  string
	out      io.Writer
}

// New creates a console for the given endpoint.
func New(options Options) *Console {
	out := options.Out
	if out == nil {
		out = os.Stdout
	}
	return &Console{
		client:   options.Client,
		manager:  server.NewManager(options.Client),
		endpoint: options.Endpoint,
		history:  options.HistoryFile,
		out:      out,
	}
}

// Run reads lines until EOF, a quit command, or context cancellation.
func (c *Console) Run(ctx context.Context) error {
	completer := readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("status"),
		readline.PcItem("quit"),
		readline.PcItem("exit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:              c.prompt(ctx),
		HistoryFile:         c.history,
		AutoComplete:        completer,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return fmt.Errorf("failed to start the console: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(c.out, "Connected to %s. Operations are JSON documents, one per line; type 'help' for details.\n\n", c.endpoint)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("console input error: %w", err)
		}

		quit, err := c.handleLine(ctx, line)
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
		if quit {
			return nil
		}
		fmt.Fprintln(c.out)
	}
}

// handleLine dispatches one input line and reports whether the console
// should quit.
func (c *Console) handleLine(ctx context.Context, line string) (bool, error) {
	input := strings.TrimSpace(line)
	switch {
	case input == "":
		return false, nil
	case input == "quit" || input == "exit":
		return true, nil
	case input == "help":
		c.printHelp()
		return false, nil
	case input == "status":
		return false, c.printStatus(ctx)
	case strings.HasPrefix(input, "{"):
		return false, c.execute(ctx, input)
	default:
		return false, fmt.Errorf("unrecognized input %q, type 'help' for the command list", input)
	}
}

func (c *Console) execute(ctx context.Context, input string) error {
	op, err := mgmt.ParseOperation([]byte(input))
	if err != nil {
		return err
	}
	logging.Debug(subsystem, "Executing %s", op)
	response, err := c.client.Execute(ctx, op)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, formatting.PrettyJSON(response))
	return nil
}

func (c *Console) printStatus(ctx context.Context) error {
	topology, err := c.manager.ProbeTopology(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "topology: %s\n", topology)
	fmt.Fprintf(c.out, "running: %t\n", c.manager.IsRunning(ctx, topology))

	switch topology {
	case server.TopologyStandalone:
		fmt.Fprintf(c.out, "server-state: %s\n", c.manager.State(ctx))
	case server.TopologyDomain:
		statuses, err := c.manager.ServerStatuses(ctx)
		if err != nil {
			return err
		}
		for _, row := range formatting.RosterRows(statuses) {
			fmt.Fprintf(c.out, "%s/%s: %s\n", row.Host, row.Server, row.Status)
		}
	}
	return nil
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `Operations are JSON documents, one per line. The address may be the wire
form or a CLI path:

  {"operation":"read-attribute","name":"server-state"}
  {"operation":"read-resource","address":"/core-service=server-environment","include-runtime":true}

Commands:
  help     Show this help
  status   Show the topology and running state of the endpoint
  quit     Leave the console (Ctrl+D works too)
`)
}

// prompt renders "[standalone@localhost:9990] ". An unreachable endpoint
// shows up as unknown rather than blocking the console from starting.
func (c *Console) prompt(ctx context.Context) string {
	host := c.endpoint
	if parsed, err := url.Parse(c.endpoint); err == nil && parsed.Host != "" {
		host = parsed.Host
	}
	return fmt.Sprintf("[%s@%s] ", c.manager.Topology(ctx), host)
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
