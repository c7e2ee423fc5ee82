package formatting

import (
	"sort"

	"github.com/jamezp/wildfly-plugin-tools/internal/config"
	"github.com/jamezp/wildfly-plugin-tools/pkg/server"
)

// ControllerStatus is the probe outcome for a single controller.
type ControllerStatus struct {
	Controller string      `json:"controller" yaml:"controller"`
	Endpoint   string      `json:"endpoint" yaml:"endpoint"`
	Topology   string      `json:"topology" yaml:"topology"`
	Running    bool        `json:"running" yaml:"running"`
	Detail     string      `json:"detail,omitempty" yaml:"detail,omitempty"`
	Servers    []ServerRow `json:"servers,omitempty" yaml:"servers,omitempty"`
	Error      string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// ServerRow is one domain server in a rendered roster.
type ServerRow struct {
	Host   string `json:"host" yaml:"host"`
	Server string `json:"server" yaml:"server"`
	Status string `json:"status" yaml:"status"`
}

// ControllerEntry is one named controller from the config file. Passwords
// never appear in listings.
type ControllerEntry struct {
	Name     string `json:"name" yaml:"name"`
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Default  bool   `json:"default" yaml:"default"`
}

// DescriptionView is the renderable identity of a running container. The
// field names follow the management model attribute names.
type DescriptionView struct {
	ProductName       string `json:"product-name" yaml:"product-name"`
	ProductVersion    string `json:"product-version,omitempty" yaml:"product-version,omitempty"`
	ReleaseVersion    string `json:"release-version,omitempty" yaml:"release-version,omitempty"`
	ManagementVersion string `json:"management-version" yaml:"management-version"`
	LaunchType        string `json:"launch-type" yaml:"launch-type"`
}

type statusDocument struct {
	Controllers []ControllerStatus `json:"controllers" yaml:"controllers"`
	Count       int                `json:"count" yaml:"count"`
}

type rosterDocument struct {
	Servers []ServerRow `json:"servers" yaml:"servers"`
	Count   int         `json:"count" yaml:"count"`
}

type controllerDocument struct {
	Controllers []ControllerEntry `json:"controllers" yaml:"controllers"`
	Count       int               `json:"count" yaml:"count"`
}

// RosterRows converts a domain roster into rows sorted by host, then server.
func RosterRows(statuses map[server.ServerIdentity]server.ServerStatus) []ServerRow {
	rows := make([]ServerRow, 0, len(statuses))
	for identity, status := range statuses {
		rows = append(rows, ServerRow{
			Host:   identity.Host,
			Server: identity.Server,
			Status: string(status),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Host != rows[j].Host {
			return rows[i].Host < rows[j].Host
		}
		return rows[i].Server < rows[j].Server
	})
	return rows
}

// ControllerEntries converts the configured controllers into sorted entries.
func ControllerEntries(cfg config.Config) []ControllerEntry {
	entries := make([]ControllerEntry, 0, len(cfg.Controllers))
	for _, name := range cfg.ControllerNames() {
		controller := cfg.Controllers[name]
		entries = append(entries, ControllerEntry{
			Name:     name,
			Endpoint: controller.Endpoint,
			Username: controller.Username,
			Default:  name == cfg.DefaultController,
		})
	}
	return entries
}

// DescribeView converts a container description into its renderable form.
func DescribeView(description server.ContainerDescription) DescriptionView {
	return DescriptionView{
		ProductName:       description.ProductName,
		ProductVersion:    description.ProductVersion,
		ReleaseVersion:    description.ReleaseVersion,
		ManagementVersion: description.ModelVersion.String(),
		LaunchType:        description.LaunchType,
	}
}
