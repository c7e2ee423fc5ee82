package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopologyFromLaunchType(t *testing.T) {
	assert.Equal(t, TopologyStandalone, topologyFromLaunchType("STANDALONE"))
	assert.Equal(t, TopologyStandalone, topologyFromLaunchType("standalone"))
	assert.Equal(t, TopologyDomain, topologyFromLaunchType("DOMAIN"))
	assert.Equal(t, TopologyUnknown, topologyFromLaunchType("EMBEDDED"))
	assert.Equal(t, TopologyUnknown, topologyFromLaunchType("SELF_CONTAINED"))
	assert.Equal(t, TopologyUnknown, topologyFromLaunchType(""))
}

func TestParseServerStatus(t *testing.T) {
	assert.Equal(t, StatusStarted, parseServerStatus("STARTED"))
	assert.Equal(t, StatusDisabled, parseServerStatus("disabled"))
	assert.Equal(t, StatusStarting, parseServerStatus("STARTING"))
	assert.Equal(t, StatusStopping, parseServerStatus("STOPPING"))
	assert.Equal(t, StatusStopped, parseServerStatus("STOPPED"))
	assert.Equal(t, StatusFailed, parseServerStatus("FAILED"))
	assert.Equal(t, StatusUnknown, parseServerStatus("THROTTLED"))
	assert.Equal(t, StatusUnknown, parseServerStatus(""))
}

func TestServerIdentity_String(t *testing.T) {
	id := ServerIdentity{Host: "primary", Server: "server-one"}
	assert.Equal(t, "primary/server-one", id.String())
}
