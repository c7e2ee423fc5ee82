// Package server drives the lifecycle of WildFly standalone servers and
// managed domains through their management endpoint.
//
// A Manager wraps one mgmt.Client and answers the questions a launcher or
// operator asks: what kind of process is behind this endpoint (Topology),
// is it up (IsRunning), and what is each domain member doing
// (ServerStatuses). On top of the predicates sit the blocking verbs:
// WaitUntilRunning polls until a booting server is ready, ShutdownStandalone
// and ShutdownDomain take a server or a whole domain down and wait for it
// to be gone, and ReloadIfRequired bounces a standalone server whose
// configuration changes demand it.
//
// The predicates and the verbs fail differently on purpose. Predicates are
// made for polling endpoints that may not be up yet, so every failure
// degrades: Topology answers TopologyUnknown, IsRunning answers false, and
// State answers "unknown" or "failed" instead of returning an error. The
// verbs sequence real operations and propagate what went wrong, with two
// exceptions the protocol forces: a reloading server may drop the
// connection before answering the reload, and a host controller that was
// told to shut down signals its exit by becoming unreachable.
//
// Running means past the starting and stopping states, nothing more. A
// standalone server in reload-required or restart-required still counts as
// running; use State to see the difference. In a domain every server on
// the roster must be started or disabled, which makes a failed member
// indistinguishable from one still starting. That ambiguity is inherent to
// the model, and ServerStatuses exists so callers can report which server
// is in which state instead of guessing.
//
// The package never launches servers. Callers that did launch one can hand
// its ProcessHandle to WaitUntilRunning, which then fails fast when the
// process dies during boot and kills it when the wait times out.
package server
