// Package config loads and persists the wildfly-tool configuration.
//
// Configuration lives in a single directory, ~/.config/wildfly-tool by
// default, overridable with the --config flag. The directory holds:
//   - config.yaml (named controllers, the default controller, timeouts)
//   - console_history (readline history written by the console command)
//
// # Configuration Structure
//
// config.yaml uses YAML format:
//
//	default-controller: local
//	timeout: 60            # seconds, default budget for blocking commands
//	controllers:
//	  local:
//	    endpoint: http://127.0.0.1:9990
//	    username: admin
//	    password: secret
//
// A missing file is not an error; Default() applies. A file that exists
// but fails to parse or validate is reported, never ignored.
//
// # Controller Resolution
//
// Commands accept --controller with either a configured name or a literal
// endpoint. Resolve implements the lookup: explicit name wins, an unknown
// name is treated as an address, an empty name falls back to
// default-controller and finally to localhost:9990.
//
// # Persistence
//
// The Store writes controller edits (add, remove, set-default) back to
// config.yaml:
//
//	store := config.NewStoreWithPath(path)
//	err := store.SaveController("staging", config.Controller{
//		Endpoint: "staging.example.com:9990",
//	}, false)
package config
