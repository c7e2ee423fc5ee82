package cli

import (
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/jamezp/wildfly-plugin-tools/pkg/mgmt"
	"github.com/jamezp/wildfly-plugin-tools/pkg/server"
)

// Exit codes returned by the tool. Scripts key off these to distinguish
// timeouts and failed operations from plain errors.
const (
	ExitOK = 0
	// ExitError covers errors with no more specific classification.
	ExitError = 1
	// ExitUsage indicates invalid flags or arguments.
	ExitUsage = 2
	// ExitTimeout indicates a wait budget ran out.
	ExitTimeout = 3
	// ExitProcessExit indicates a watched server process died.
	ExitProcessExit = 4
	// ExitOperationFailed indicates the server rejected an operation.
	ExitOperationFailed = 5
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	var usageErr *UsageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &usageErr):
		return ExitUsage
	case server.IsTimeout(err):
		return ExitTimeout
	case server.IsProcessExit(err):
		return ExitProcessExit
	case mgmt.IsOperationError(err):
		return ExitOperationFailed
	default:
		return ExitError
	}
}

// UsageError marks invalid flags or arguments so the exit code can tell a
// caller mistake apart from a runtime failure.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ConnectionErrorType categorizes the type of connection error.
type ConnectionErrorType int

const (
	// ConnectionErrorUnknown indicates an unclassified connection error.
	ConnectionErrorUnknown ConnectionErrorType = iota
	// ConnectionErrorTLS indicates a TLS/certificate verification error.
	ConnectionErrorTLS
	// ConnectionErrorNetwork indicates a network connectivity error (e.g., refused, unreachable).
	ConnectionErrorNetwork
	// ConnectionErrorTimeout indicates a connection timeout.
	ConnectionErrorTimeout
	// ConnectionErrorDNS indicates a DNS resolution failure.
	ConnectionErrorDNS
)

// String returns a human-readable name for the connection error type.
func (t ConnectionErrorType) String() string {
	switch t {
	case ConnectionErrorTLS:
		return "TLS certificate error"
	case ConnectionErrorNetwork:
		return "network error"
	case ConnectionErrorTimeout:
		return "connection timeout"
	case ConnectionErrorDNS:
		return "DNS resolution error"
	default:
		return "connection error"
	}
}

// ConnectionError indicates that a management endpoint could not be
// reached. It wraps the underlying error and categorizes it for display.
type ConnectionError struct {
	// Endpoint is the URL that could not be reached.
	Endpoint string
	// Type categorizes the connection error.
	Type ConnectionErrorType
	// Reason is the underlying error.
	Reason error
}

// Error returns the categorized failure with its root cause.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot reach %s: %s: %v", e.Endpoint, e.Type, rootCause(e.Reason))
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Reason
}

// ClassifyConnectionError analyzes an error and returns a ConnectionError
// with the appropriate type. A nil error returns nil.
func ClassifyConnectionError(err error, endpoint string) *ConnectionError {
	if err == nil {
		return nil
	}

	connErr := &ConnectionError{Endpoint: endpoint, Reason: err}
	switch {
	case isTLSError(err):
		connErr.Type = ConnectionErrorTLS
	case isDNSError(err):
		connErr.Type = ConnectionErrorDNS
	case isTimeoutError(err):
		connErr.Type = ConnectionErrorTimeout
	case isNetworkError(err.Error()):
		connErr.Type = ConnectionErrorNetwork
	default:
		connErr.Type = ConnectionErrorUnknown
	}
	return connErr
}

// DescribeFailure turns a probe error into a short display string for
// status listings. Credential rejections get an actionable hint instead of
// the raw transport chain.
func DescribeFailure(err error, endpoint string) string {
	if err == nil {
		return ""
	}
	if IsCredentialsRejected(err) {
		return "credentials rejected, check --username/--password or the controller entry in the config file"
	}
	connErr := ClassifyConnectionError(err, endpoint)
	return fmt.Sprintf("%s: %v", connErr.Type, rootCause(err))
}

// IsCredentialsRejected reports whether the management interface refused
// the configured credentials.
func IsCredentialsRejected(err error) bool {
	return err != nil && strings.Contains(err.Error(), "rejected the credentials")
}

// rootCause unwraps to the innermost error, which usually carries the
// short OS level message.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// isTLSError checks if the error is related to TLS/certificate issues.
// The x509 errors travel by value, so the As targets are value types.
func isTLSError(err error) bool {
	var certErr x509.CertificateInvalidError
	var hostErr x509.HostnameError
	var unknownAuthErr x509.UnknownAuthorityError
	if errors.As(err, &certErr) || errors.As(err, &hostErr) || errors.As(err, &unknownAuthErr) {
		return true
	}

	errStr := err.Error()
	for _, keyword := range []string{"x509:", "certificate", "tls:", "TLS handshake"} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// isDNSError checks if the error is a name resolution failure.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) || strings.Contains(err.Error(), "no such host")
}

// isTimeoutError checks if the error is a timeout.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// isNetworkError checks if the error string indicates a network
// connectivity issue.
func isNetworkError(errStr string) bool {
	for _, keyword := range []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no route to host",
		"dial tcp",
		"connect:",
	} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}
