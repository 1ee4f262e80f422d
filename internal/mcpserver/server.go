// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the nous link graph to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ferrant/nous/internal/apperr"
	"github.com/ferrant/nous/internal/noteservice"
)

// Server wraps the MCP server with nous tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates an MCP server with all nous tools registered.
func New(svc *noteservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"nous",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_nodes",
		mcp.WithDescription("List every node in the realm with its backing file."),
	), s.listNodes)

	s.mcp.AddTool(mcp.NewTool("read_node",
		mcp.WithDescription("Read the full content of a node by name (case-insensitive)."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Node name, without extension")),
	), s.readNode)

	s.mcp.AddTool(mcp.NewTool("node_path",
		mcp.WithDescription("Resolve a node name to its backing file path."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Node name, without extension")),
	), s.nodePath)

	s.mcp.AddTool(mcp.NewTool("forward_links",
		mcp.WithDescription("List the nodes a given node links to, with unresolved targets marked."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Node name, without extension")),
	), s.forwardLinks)

	s.mcp.AddTool(mcp.NewTool("backlinks",
		mcp.WithDescription("Find every node whose content links to the given node."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Node name, without extension")),
	), s.backlinks)

	// Resource: link syntax reference.
	s.mcp.AddResource(
		mcp.NewResource("nous://link-syntax", "Wikilink Syntax",
			mcp.WithResourceDescription("How nodes reference each other inside a nous realm."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readLinkSyntaxResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listNodes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.svc.ListNodes(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "%s\t%s\n", item.Name, item.Path)
	}
	if sb.Len() == 0 {
		return mcp.NewToolResultText("realm is empty"), nil
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) readNode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err := s.svc.NodePath(ctx, name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("node not found: %s", name)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.readRealmFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) nodePath(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err := s.svc.NodePath(ctx, name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("node not found: %s", name)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(path), nil
}

func (s *Server) forwardLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fwd, err := s.svc.ForwardLinks(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(fwd, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) backlinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	back, err := s.svc.Backlinks(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(back) == 0 {
		return mcp.NewToolResultText("no backlinks found"), nil
	}
	return mcp.NewToolResultText(strings.Join(back, "\n")), nil
}

func (s *Server) readLinkSyntaxResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "nous://link-syntax",
			MIMEType: "text/markdown",
			Text:     LinkSyntaxReference,
		},
	}, nil
}

// readRealmFile reads a realm-relative node file via the service's realm.
func (s *Server) readRealmFile(relPath string) ([]byte, error) {
	f, err := os.Open(s.svc.AbsPath(relPath))
	if err != nil {
		return nil, fmt.Errorf("mcpserver: open %s: %w", relPath, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}
