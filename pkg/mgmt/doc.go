// Package mgmt models WildFly management operations and their responses and
// provides a client for executing them over the HTTP management interface.
//
// # Operations
//
// An Operation is a name, a resource Address and named parameters.
// Builders cover the requests the toolkit issues:
//
//	op := mgmt.ReadAttribute(nil, "server-state")
//	op := mgmt.NewOperation(mgmt.OpShutdown, mgmt.NewAddress("host", "primary"))
//	op := mgmt.Composite(
//	    mgmt.ReadAttribute(hostAddress, "running-mode"),
//	    mgmt.ReadAttribute(hostAddress, "host-state"),
//	)
//
// Operations marshal to the flat JSON documents the HTTP interface accepts.
//
// # Responses
//
// A Response wraps one response document. Its Value model is a
// discriminated union (undefined, bool, number, string, list, object) whose
// objects preserve wire order, because failure extraction is defined over
// document order: FailureMessage prefers the document's own
// failure-description and otherwise walks the result tree depth-first,
// which finds the first failing step of a composite operation. Composite
// results expose their per-step sub-responses through Steps.
//
// # Client
//
// Client is the execution interface everything above rides on:
//
//	type Client interface {
//	    Execute(ctx context.Context, op *Operation) (*Response, error)
//	}
//
// The split between the two failure channels is load-bearing: the error
// return means the server could not be talked to, while a reachable server
// reporting a failed outcome is a normal *Response. State-polling callers
// rely on that distinction to degrade instead of erroring.
//
// HTTPClient is the bundled implementation for the HTTP management
// interface (POST /management, JSON in and out, basic authentication).
// Anything that satisfies Client can replace it; tests use scripted fakes.
package mgmt
