package server

import (
	"fmt"
	"strings"
)

// Topology is the launch mode of the process behind a management endpoint.
type Topology string

const (
	// TopologyStandalone is a single standalone server.
	TopologyStandalone Topology = "standalone"
	// TopologyDomain is a domain (host controller managing a server roster).
	TopologyDomain Topology = "domain"
	// TopologyUnknown covers unreachable endpoints and launch types this
	// toolkit does not manage (embedded, self-contained).
	TopologyUnknown Topology = "unknown"
)

// topologyFromLaunchType maps the management model's launch-type attribute
// to a Topology.
func topologyFromLaunchType(launchType string) Topology {
	switch strings.ToUpper(launchType) {
	case "STANDALONE":
		return TopologyStandalone
	case "DOMAIN":
		return TopologyDomain
	}
	return TopologyUnknown
}

// ServerStatus is the state of one managed server in a domain roster.
type ServerStatus string

const (
	StatusDisabled ServerStatus = "disabled"
	StatusStarting ServerStatus = "starting"
	StatusStarted  ServerStatus = "started"
	StatusStopping ServerStatus = "stopping"
	StatusStopped  ServerStatus = "stopped"
	StatusFailed   ServerStatus = "failed"
	StatusUnknown  ServerStatus = "unknown"
)

// parseServerStatus maps the wire's uppercase status attribute to a
// ServerStatus, tolerating values newer servers may add.
func parseServerStatus(status string) ServerStatus {
	switch ServerStatus(strings.ToLower(status)) {
	case StatusDisabled:
		return StatusDisabled
	case StatusStarting:
		return StatusStarting
	case StatusStarted:
		return StatusStarted
	case StatusStopping:
		return StatusStopping
	case StatusStopped:
		return StatusStopped
	case StatusFailed:
		return StatusFailed
	}
	return StatusUnknown
}

// ServerIdentity names one managed server within a domain.
type ServerIdentity struct {
	Host   string
	Server string
}

// String renders the identity as "host/server".
func (id ServerIdentity) String() string {
	return fmt.Sprintf("%s/%s", id.Host, id.Server)
}
