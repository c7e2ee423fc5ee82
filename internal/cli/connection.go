package cli

import (
	"time"

	"github.com/jamezp/wildfly-plugin-tools/internal/config"
	"github.com/jamezp/wildfly-plugin-tools/pkg/mgmt"
	"github.com/jamezp/wildfly-plugin-tools/pkg/server"
)

// requestTimeout bounds each management request. Long running waits are
// built from repeated short requests, so this stays independent of the
// configured wait budget.
const requestTimeout = 30 * time.Second

// Connection bundles everything a command needs to talk to one controller.
type Connection struct {
	// ControllerName is the display name of the resolved controller.
	ControllerName string
	// Endpoint is the resolved management URL.
	Endpoint string
	// Manager drives lifecycle operations against the endpoint.
	Manager *server.Manager
	// Config is the loaded configuration, kept for commands that need
	// more than a single controller.
	Config config.Config
	// WaitTimeout is the budget for wait style operations.
	WaitTimeout time.Duration
}

// Connect loads the configuration and dials the controller selected by the
// flags. The controller flag may name a config entry or carry a literal
// endpoint; an empty flag falls back to the configured default controller
// and finally to localhost.
func Connect(flags *CommandFlags) (*Connection, error) {
	cfg, err := LoadConfig(flags)
	if err != nil {
		return nil, err
	}
	return connectTo(cfg, flags, flags.Controller)
}

// LoadConfig loads the config file named by the flags, or the default one.
func LoadConfig(flags *CommandFlags) (config.Config, error) {
	path := flags.ConfigPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(path)
}

// connectTo builds a connection for one controller name. Credential flags
// override whatever the config entry carries.
func connectTo(cfg config.Config, flags *CommandFlags, name string) (*Connection, error) {
	controller := cfg.Resolve(name)

	username := flags.Username
	if username == "" {
		username = controller.Username
	}
	password := flags.Password
	if password == "" {
		password = controller.Password
	}

	client, err := mgmt.NewHTTPClient(mgmt.HTTPClientConfig{
		Endpoint: controller.Endpoint,
		Username: username,
		Password: password,
		Timeout:  requestTimeout,
	})
	if err != nil {
		return nil, err
	}

	timeout := cfg.WaitTimeout()
	if flags.Timeout > 0 {
		timeout = time.Duration(flags.Timeout) * time.Second
	}

	return &Connection{
		ControllerName: displayName(cfg, name),
		Endpoint:       client.Endpoint(),
		Manager:        server.NewManager(client),
		Config:         cfg,
		WaitTimeout:    timeout,
	}, nil
}

func displayName(cfg config.Config, name string) string {
	if name != "" {
		return name
	}
	if cfg.DefaultController != "" {
		return cfg.DefaultController
	}
	return "local"
}
