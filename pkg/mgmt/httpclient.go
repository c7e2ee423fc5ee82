package mgmt

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jamezp/wildfly-plugin-tools/pkg/logging"
)

// DefaultManagementPort is the port the management interface listens on in
// a default server configuration.
const DefaultManagementPort = 9990

// maxResponseBody caps how much of a management response is read. Response
// documents are small; the cap guards against draining a misdirected
// endpoint.
const maxResponseBody = 16 << 20

// HTTPClientConfig configures an HTTPClient.
type HTTPClientConfig struct {
	// Endpoint is the management endpoint: "host:port", "http://host:port"
	// or a full URL. The scheme defaults to http and the path to
	// /management.
	Endpoint string
	// Username and Password enable basic authentication when both are
	// non-empty. Servers configured for digest-only authentication need a
	// custom Client carrying a digest transport.
	Username string
	Password string
	// Timeout bounds each request when no custom Client is given. Zero
	// leaves requests bounded only by the caller's context.
	Timeout time.Duration
	// Client overrides the underlying *http.Client when non-nil.
	Client *http.Client
}

// HTTPClient is a Client speaking the HTTP management interface: each
// operation is POSTed as a JSON document to the /management endpoint and
// the JSON body of the reply is the response document. Failed outcomes
// arrive with a 500 status and a regular document, so they surface as
// responses, not errors.
type HTTPClient struct {
	endpoint   string
	username   string
	password   string
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient validates the endpoint and builds the client.
func NewHTTPClient(config HTTPClientConfig) (*HTTPClient, error) {
	endpoint := strings.TrimSpace(config.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("management endpoint must not be empty")
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid management endpoint %q: %w", config.Endpoint, err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid management endpoint %q: no host", config.Endpoint)
	}
	if parsed.Path == "" || parsed.Path == "/" {
		parsed.Path = "/management"
	}

	httpClient := config.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &HTTPClient{
		endpoint:   parsed.String(),
		username:   config.Username,
		password:   config.Password,
		httpClient: httpClient,
	}, nil
}

// Endpoint returns the normalized endpoint URL the client posts to.
func (c *HTTPClient) Endpoint() string {
	return c.endpoint
}

// Execute posts the operation and decodes the reply into a Response. An
// empty reply body yields the undefined document.
func (c *HTTPClient) Execute(ctx context.Context, op *Operation) (*Response, error) {
	body, err := op.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("cannot encode %s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("cannot build management request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.username != "" && c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	logging.Debug("Client", "Executing %s against %s", op, c.endpoint)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("management request to %s failed: %w", c.endpoint, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("reading management response from %s failed: %w", c.endpoint, err)
	}

	switch httpResp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("management interface at %s rejected the credentials (%s)", c.endpoint, httpResp.Status)
	}

	response, err := ParseResponse(data)
	if err != nil {
		return nil, fmt.Errorf("management interface at %s returned a malformed document (%s): %w", c.endpoint, httpResp.Status, err)
	}
	return response, nil
}
