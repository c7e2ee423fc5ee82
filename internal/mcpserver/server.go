// Package mcpserver exposes the management tooling to AI assistants over
// the Model Context Protocol.
//
// The server speaks MCP over stdio and registers one tool per high level
// operation: status probing, waiting for a start, shutdown, reload,
// container description, raw operation execution and version comparison.
// Every result is JSON text so assistants can feed it into follow-up
// calls, and every failure is reported as an MCP error result rather than
// a protocol error so the message reaches the assistant.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jamezp/wildfly-plugin-tools/internal/cli"
)

// Server exposes the lifecycle operations of one controller as MCP tools.
type Server struct {
	conn      *cli.Connection
	mcpServer *server.MCPServer
}

// NewServer builds the MCP server for one controller connection. version
// is reported to clients during the MCP handshake.
func NewServer(conn *cli.Connection, version string) *Server {
	mcpServer := server.NewMCPServer(
		"wildfly-tool",
		version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		conn:      conn,
		mcpServer: mcpServer,
	}
	s.registerTools()
	return s
}

// Start serves MCP over stdio and blocks until the client closes the
// stream.
func (s *Server) Start(ctx context.Context) error {
	return server.ServeStdio(s.mcpServer)
}

// registerTools registers all lifecycle tools.
func (s *Server) registerTools() {
	statusTool := mcp.NewTool("server_status",
		mcp.WithDescription("Report the topology and running state of the server behind the configured management endpoint"),
	)
	s.mcpServer.AddTool(statusTool, s.handleStatus)

	waitTool := mcp.NewTool("server_wait",
		mcp.WithDescription("Wait until the server reports running, then report its status"),
		mcp.WithNumber("timeout_seconds",
			mcp.Description("Seconds to wait before giving up (default: the configured wait timeout)"),
		),
	)
	s.mcpServer.AddTool(waitTool, s.handleWait)

	shutdownTool := mcp.NewTool("server_shutdown",
		mcp.WithDescription("Shut down the server, stopping every managed server first on a domain controller"),
		mcp.WithNumber("grace_seconds",
			mcp.Description("Seconds the server may spend suspending active requests, -1 to wait as long as the suspend takes (default: 0)"),
		),
	)
	s.mcpServer.AddTool(shutdownTool, s.handleShutdown)

	reloadTool := mcp.NewTool("server_reload",
		mcp.WithDescription("Reload a standalone server if its state is reload-required"),
	)
	s.mcpServer.AddTool(reloadTool, s.handleReload)

	describeTool := mcp.NewTool("server_describe",
		mcp.WithDescription("Describe the product, release and management model versions of the running container"),
	)
	s.mcpServer.AddTool(describeTool, s.handleDescribe)

	executeTool := mcp.NewTool("execute_operation",
		mcp.WithDescription("Execute a raw management operation and return the full response document"),
		mcp.WithObject("operation",
			mcp.Required(),
			mcp.Description(`Management operation document, for example {"operation":"read-attribute","name":"server-state"}`),
		),
	)
	s.mcpServer.AddTool(executeTool, s.handleExecute)

	compareTool := mcp.NewTool("compare_versions",
		mcp.WithDescription("Order two version strings using the server artifact versioning rules"),
		mcp.WithString("a",
			mcp.Required(),
			mcp.Description("Left version"),
		),
		mcp.WithString("b",
			mcp.Required(),
			mcp.Description("Right version"),
		),
	)
	s.mcpServer.AddTool(compareTool, s.handleCompareVersions)
}
