// Package formatting renders command output for the wildfly-tool CLI.
//
// Every command routes its result through a Formatter so that the same
// data can be printed as a rounded table for humans or as JSON/YAML for
// scripts. View types in this package carry the serialization tags; the
// cli package converts domain types into views before rendering.
package formatting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Rich table output
	FormatJSON  OutputFormat = "json"  // JSON output
	FormatYAML  OutputFormat = "yaml"  // YAML output
)

// ParseFormat resolves an --output flag value. An empty value selects the
// table format and matching is case insensitive.
func ParseFormat(value string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(value)); format {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid formats: table, json, yaml)", value)
	}
}

// Formatter renders views in a fixed output format.
type Formatter struct {
	format OutputFormat
	out    io.Writer
}

// New creates a formatter. A nil writer defaults to stdout.
func New(format OutputFormat, out io.Writer) *Formatter {
	if out == nil {
		out = os.Stdout
	}
	return &Formatter{format: format, out: out}
}

// Format returns the output format the formatter renders.
func (f *Formatter) Format() OutputFormat {
	return f.format
}

// ControllerStatuses renders the probe results for one or more controllers.
func (f *Formatter) ControllerStatuses(statuses []ControllerStatus) error {
	switch f.format {
	case FormatJSON, FormatYAML:
		return f.renderStructured(statusDocument{Controllers: statuses, Count: len(statuses)})
	default:
		if len(statuses) == 0 {
			f.emptyMessage("No controllers to report on")
			return nil
		}
		t := f.createTable()
		t.AppendHeader(headerRow("CONTROLLER", "ENDPOINT", "TOPOLOGY", "RUNNING", "DETAIL"))
		for _, status := range statuses {
			detail := truncate(status.Detail, 100)
			if status.Error != "" {
				detail = text.FgRed.Sprint(truncate(status.Error, 100))
			}
			t.AppendRow([]interface{}{
				status.Controller,
				status.Endpoint,
				status.Topology,
				status.Running,
				detail,
			})
		}
		t.Render()
		for _, status := range statuses {
			if len(status.Servers) > 0 {
				if err := f.Roster(status.Servers); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// Roster renders the servers of a managed domain.
func (f *Formatter) Roster(rows []ServerRow) error {
	switch f.format {
	case FormatJSON, FormatYAML:
		return f.renderStructured(rosterDocument{Servers: rows, Count: len(rows)})
	default:
		if len(rows) == 0 {
			f.emptyMessage("No servers configured in the domain")
			return nil
		}
		t := f.createTable()
		t.AppendHeader(headerRow("HOST", "SERVER", "STATUS"))
		for _, row := range rows {
			t.AppendRow([]interface{}{row.Host, row.Server, row.Status})
		}
		t.Render()
		return nil
	}
}

// Description renders the identity of a running container.
func (f *Formatter) Description(view DescriptionView) error {
	switch f.format {
	case FormatJSON, FormatYAML:
		return f.renderStructured(view)
	default:
		t := f.createTable()
		t.AppendHeader(headerRow("PROPERTY", "VALUE"))
		t.AppendRow([]interface{}{"product-name", view.ProductName})
		if view.ProductVersion != "" {
			t.AppendRow([]interface{}{"product-version", view.ProductVersion})
		}
		if view.ReleaseVersion != "" {
			t.AppendRow([]interface{}{"release-version", view.ReleaseVersion})
		}
		t.AppendRow([]interface{}{"management-version", view.ManagementVersion})
		t.AppendRow([]interface{}{"launch-type", view.LaunchType})
		t.Render()
		return nil
	}
}

// Controllers renders the controllers configured in the config file.
func (f *Formatter) Controllers(entries []ControllerEntry) error {
	switch f.format {
	case FormatJSON, FormatYAML:
		return f.renderStructured(controllerDocument{Controllers: entries, Count: len(entries)})
	default:
		if len(entries) == 0 {
			f.emptyMessage("No controllers configured. Add one with 'wildfly-tool controller add'")
			return nil
		}
		t := f.createTable()
		t.AppendHeader(headerRow("NAME", "ENDPOINT", "USERNAME", "DEFAULT"))
		for _, entry := range entries {
			marker := ""
			if entry.Default {
				marker = "*"
			}
			t.AppendRow([]interface{}{entry.Name, entry.Endpoint, entry.Username, marker})
		}
		t.Render()
		return nil
	}
}

// Document renders a raw management document such as an operation response.
// The table format falls back to indented JSON because management documents
// are free-form.
func (f *Formatter) Document(doc json.Marshaler) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if f.format == FormatYAML {
		converted, err := jsonToYAML(data)
		if err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
		_, err = f.out.Write(converted)
		return err
	}
	_, err = fmt.Fprintln(f.out, string(data))
	return err
}

// createTable builds a table writer with the house style.
func (f *Formatter) createTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetStyle(table.StyleRounded)
	return t
}

func (f *Formatter) emptyMessage(message string) {
	fmt.Fprintf(f.out, "%s\n", text.FgYellow.Sprint(message))
}

func (f *Formatter) renderStructured(v interface{}) error {
	if f.format == FormatYAML {
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		_, err = f.out.Write(data)
		return err
	}
	_, err := fmt.Fprintln(f.out, PrettyJSON(v))
	return err
}

func headerRow(names ...string) []interface{} {
	row := make([]interface{}, 0, len(names))
	for _, name := range names {
		row = append(row, text.FgHiCyan.Sprint(name))
	}
	return row
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}

// jsonToYAML re-encodes a JSON document as YAML. Round-tripping through
// yaml.Node keeps the property order of the source document.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return yaml.Marshal(&node)
}

// PrettyJSON formats any value as indented JSON for human-readable display.
// Marshaling errors fall back to the fmt representation of the value.
func PrettyJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
