// Package cli wires commands to management endpoints.
//
// It owns the shared plumbing the cobra commands would otherwise repeat:
// flag registration, config loading, controller resolution, and probe
// execution. Commands stay thin; they parse arguments, call into this
// package, and hand the resulting views to the formatting package.
//
// # Controller Resolution
//
// The --controller flag may name an entry from the controllers map in the
// config file or carry a literal endpoint such as "wildfly.example:9990".
// An empty flag falls back to the configured default controller and
// finally to localhost. Credential flags always win over the config file.
//
// # Probes
//
// Probe gathers the status of a single controller without ever returning
// an error; unreachable endpoints are classified (network, DNS, TLS,
// timeout) and reported inside the status view. FleetStatus runs a probe
// per configured controller with bounded concurrency.
//
// # Exit Codes
//
// ExitCode maps errors to stable process exit codes so scripts can tell a
// wait timeout (3) or a dead server process (4) from a management
// operation the server rejected (5).
package cli
