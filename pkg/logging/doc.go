// Package logging provides structured, subsystem-tagged logging built on
// Go's standard slog package.
//
// Every log call names the subsystem it originates from, which ends up as a
// structured attribute on the entry. This keeps output from the library's
// different layers separable without threading logger instances through
// every constructor.
//
// # Usage
//
//	import "github.com/jamezp/wildfly-plugin-tools/pkg/logging"
//
//	// Initialize with Info level logging to stderr
//	logging.Init(logging.LevelInfo, os.Stderr)
//
//	// Log messages
//	logging.Info("Lifecycle", "Waiting for server at %s", endpoint)
//	logging.Debug("Client", "Executing %s", op)
//	logging.Error("Config", err, "Failed to load configuration")
//
// Until Init is called, all logging functions are no-ops. A host application
// embedding the library packages can therefore leave this package
// uninitialized and route diagnostics through its own stack.
//
// # Subsystem Organization
//
// Logs are organized by subsystem to enable filtering and categorization:
//
//   - **Lifecycle**: server state polling, waiting, and shutdown sequencing
//   - **Client**: management operation transport
//   - **Config**: configuration loading and validation
//   - **Console**: the interactive operation console
//   - **CLI**: command execution
//
// Transport-level noise from the running-state predicates is logged at Debug
// so that default Info output stays quiet while a server is coming up.
//
// # Integration with slog
//
// LogLevel converts to slog.Level via SlogLevel, level filtering happens at
// the handler, and Init also installs the logger as the slog default so that
// direct slog calls from dependencies land in the same stream.
package logging
