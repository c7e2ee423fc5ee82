package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jamezp/wildfly-plugin-tools/internal/cli"
	"github.com/jamezp/wildfly-plugin-tools/internal/formatting"
	"github.com/jamezp/wildfly-plugin-tools/pkg/mgmt"
	"github.com/jamezp/wildfly-plugin-tools/pkg/server"
	"github.com/jamezp/wildfly-plugin-tools/pkg/version"
)

// handleStatus handles the server_status tool. The probe never fails; an
// unreachable endpoint is reported inside the status document.
func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := cli.Probe(ctx, s.conn)
	return mcp.NewToolResultText(formatting.PrettyJSON(status)), nil
}

// handleWait handles the server_wait tool. The topology is detected while
// waiting, so the tool works against an endpoint that is still coming up.
func (s *Server) handleWait(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	timeout := s.conn.WaitTimeout
	if raw, ok := request.GetArguments()["timeout_seconds"].(float64); ok {
		if raw <= 0 {
			return mcp.NewToolResultError("timeout_seconds must be positive"), nil
		}
		timeout = time.Duration(raw * float64(time.Second))
	}

	if err := s.conn.Manager.WaitUntilRunning(ctx, server.TopologyUnknown, timeout, nil); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Server did not become ready: %v", err)), nil
	}
	return mcp.NewToolResultText(formatting.PrettyJSON(cli.Probe(ctx, s.conn))), nil
}

// handleShutdown handles the server_shutdown tool. The shutdown is routed
// by topology: a domain controller stops its managed servers before the
// host controller itself exits.
func (s *Server) handleShutdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	grace := 0
	if raw, ok := request.GetArguments()["grace_seconds"].(float64); ok {
		if raw < -1 {
			return mcp.NewToolResultError("grace_seconds must be -1, 0 or positive"), nil
		}
		grace = int(raw)
	}

	topology := s.conn.Manager.Topology(ctx)
	var err error
	switch topology {
	case server.TopologyStandalone:
		err = s.conn.Manager.ShutdownStandalone(ctx, grace)
	case server.TopologyDomain:
		err = s.conn.Manager.ShutdownDomain(ctx, grace)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("Cannot determine the topology of %s, is the server running?", s.conn.Endpoint)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Shutdown failed: %v", err)), nil
	}

	result := struct {
		Shutdown bool   `json:"shutdown"`
		Topology string `json:"topology"`
	}{Shutdown: true, Topology: string(topology)}
	return mcp.NewToolResultText(formatting.PrettyJSON(result)), nil
}

// handleReload handles the server_reload tool. A server that does not need
// a reload succeeds without issuing one.
func (s *Server) handleReload(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.conn.Manager.ReloadIfRequired(ctx, s.conn.WaitTimeout); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Reload failed: %v", err)), nil
	}

	result := struct {
		State string `json:"server-state"`
	}{State: s.conn.Manager.State(ctx)}
	return mcp.NewToolResultText(formatting.PrettyJSON(result)), nil
}

// handleDescribe handles the server_describe tool.
func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description, err := s.conn.Manager.Describe(ctx)
	if err != nil {
		return mcp.NewToolResultError(cli.DescribeFailure(err, s.conn.Endpoint)), nil
	}
	return mcp.NewToolResultText(formatting.PrettyJSON(formatting.DescribeView(description))), nil
}

// handleExecute handles the execute_operation tool. The operation argument
// is the raw management document. The full response document comes back,
// failed outcomes included, so assistants can read failure-description;
// only transport failures become tool errors.
func (s *Server) handleExecute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := request.GetArguments()["operation"]
	if raw == nil {
		return mcp.NewToolResultError("operation argument is required"), nil
	}
	document, ok := raw.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("operation must be a JSON object"), nil
	}

	encoded, err := json.Marshal(document)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid operation document: %v", err)), nil
	}
	op, err := mgmt.ParseOperation(encoded)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid operation document: %v", err)), nil
	}

	response, err := s.conn.Manager.Client().Execute(ctx, op)
	if err != nil {
		return mcp.NewToolResultError(cli.DescribeFailure(err, s.conn.Endpoint)), nil
	}
	return mcp.NewToolResultText(formatting.PrettyJSON(response)), nil
}

// handleCompareVersions handles the compare_versions tool.
func (s *Server) handleCompareVersions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	left, err := request.RequireString("a")
	if err != nil {
		return mcp.NewToolResultError("a argument is required"), nil
	}
	right, err := request.RequireString("b")
	if err != nil {
		return mcp.NewToolResultError("b argument is required"), nil
	}

	verdict := struct {
		A       string `json:"a"`
		B       string `json:"b"`
		Result  int    `json:"result"`
		Verdict string `json:"verdict"`
	}{A: left, B: right}
	switch ordering := version.Compare(left, right); {
	case ordering < 0:
		verdict.Result = -1
		verdict.Verdict = fmt.Sprintf("%s is older than %s", left, right)
	case ordering > 0:
		verdict.Result = 1
		verdict.Verdict = fmt.Sprintf("%s is newer than %s", left, right)
	default:
		verdict.Verdict = fmt.Sprintf("%s is equivalent to %s", left, right)
	}
	return mcp.NewToolResultText(formatting.PrettyJSON(verdict)), nil
}
