package config

import (
	"sort"
	"time"
)

// DefaultEndpoint is the management endpoint assumed when nothing else is
// configured.
const DefaultEndpoint = "localhost:9990"

// DefaultTimeoutSeconds is the default budget for commands that block on
// server state.
const DefaultTimeoutSeconds = 60

// Config is the top-level configuration for wildfly-tool.
type Config struct {
	// DefaultController names the controller used when none is given on the
	// command line. Empty falls back to the built-in local endpoint.
	DefaultController string `yaml:"default-controller,omitempty"`
	// Timeout is the default wait budget in seconds.
	Timeout int `yaml:"timeout,omitempty"`
	// Controllers maps controller names to their connection settings.
	Controllers map[string]Controller `yaml:"controllers,omitempty"`
}

// Controller is one named management endpoint.
type Controller struct {
	// Endpoint is the management endpoint: "host:port" or a full URL.
	Endpoint string `yaml:"endpoint"`
	// Username and Password are the basic auth credentials, both optional.
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{Timeout: DefaultTimeoutSeconds}
}

// WaitTimeout returns the configured timeout as a duration.
func (c Config) WaitTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Resolve picks the controller settings for name. An empty name falls back
// to default-controller and then to the built-in local endpoint. A name
// with no config entry is treated as a literal endpoint, so the same flag
// accepts both configured names and ad hoc addresses.
func (c Config) Resolve(name string) Controller {
	if name == "" {
		name = c.DefaultController
	}
	if name == "" {
		return Controller{Endpoint: DefaultEndpoint}
	}
	if controller, ok := c.Controllers[name]; ok {
		return controller
	}
	return Controller{Endpoint: name}
}

// ControllerNames returns the configured controller names sorted for
// stable output.
func (c Config) ControllerNames() []string {
	names := make([]string, 0, len(c.Controllers))
	for name := range c.Controllers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
