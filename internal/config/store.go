package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jamezp/wildfly-plugin-tools/pkg/logging"
)

// Store persists controller edits back to config.yaml. Every mutation
// re-reads the file, applies the change and rewrites the whole document,
// so edits compose with changes made by hand.
type Store struct {
	mu         sync.Mutex
	configPath string
}

// NewStore creates a Store over the default configuration directory.
func NewStore() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return NewStoreWithPath(path), nil
}

// NewStoreWithPath creates a Store over a custom configuration directory.
func NewStoreWithPath(configPath string) *Store {
	return &Store{configPath: configPath}
}

// SaveController adds or replaces a named controller. With makeDefault set
// the entry also becomes the default controller.
func (s *Store) SaveController(name string, controller Controller, makeDefault bool) error {
	if name == "" {
		return fmt.Errorf("controller name cannot be empty")
	}
	if controller.Endpoint == "" {
		return fmt.Errorf("controller %q needs an endpoint", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	config, err := Load(s.configPath)
	if err != nil {
		return err
	}
	if config.Controllers == nil {
		config.Controllers = make(map[string]Controller)
	}
	config.Controllers[name] = controller
	if makeDefault {
		config.DefaultController = name
	}
	return s.write(config)
}

// DeleteController removes a named controller. Removing the default
// controller also clears the default.
func (s *Store) DeleteController(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, err := Load(s.configPath)
	if err != nil {
		return err
	}
	if _, ok := config.Controllers[name]; !ok {
		return fmt.Errorf("controller %q not found", name)
	}
	delete(config.Controllers, name)
	if config.DefaultController == name {
		config.DefaultController = ""
	}
	return s.write(config)
}

// SetDefault marks an existing controller as the default.
func (s *Store) SetDefault(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, err := Load(s.configPath)
	if err != nil {
		return err
	}
	if _, ok := config.Controllers[name]; !ok {
		return fmt.Errorf("controller %q not found", name)
	}
	config.DefaultController = name
	return s.write(config)
}

// write replaces config.yaml, creating the configuration directory on
// first use. The file may carry credentials, hence the tight mode.
func (s *Store) write(config Config) error {
	if err := os.MkdirAll(s.configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", s.configPath, err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	filePath := filepath.Join(s.configPath, configFileName)
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	logging.Info("Config", "Saved configuration to %s", filePath)
	return nil
}
