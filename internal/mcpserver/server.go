// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the docs converter and the restore-height sampler over
// stdio.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/feather-contrib/internal/apperr"
	"github.com/starford/feather-contrib/internal/daemon"
	"github.com/starford/feather-contrib/internal/docs"
	"github.com/starford/feather-contrib/internal/heights"
)

const docFormatURI = "feather://doc-format"

// Settings are the directories and daemon address the tools operate on.
type Settings struct {
	SourceDir  string
	OutputDir  string
	DaemonHost string
	DaemonPort int
	Interval   uint64
}

// Server wraps the MCP server with the contrib tools.
type Server struct {
	mcp      *server.MCPServer
	settings Settings
}

// New creates a new MCP server with all tools registered.
func New(settings Settings, version string) *Server {
	s := &Server{settings: settings}

	s.mcp = server.NewMCPServer(
		"Feather Contrib",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("generate_docs",
		mcp.WithDescription("Regenerate the wallet's embedded docs from the guides submodule. "+
			"Deletes every .md file in the output directory first."),
	), s.generateDocs)

	s.mcp.AddTool(mcp.NewTool("list_docs",
		mcp.WithDescription("List generated docs with their nav_title, category and title."),
	), s.listDocs)

	s.mcp.AddTool(mcp.NewTool("read_doc",
		mcp.WithDescription("Read the raw content of a generated doc."),
		mcp.WithString("name", mcp.Required(), mcp.Description("File name of the doc (e.g. fees.md)")),
	), s.readDoc)

	s.mcp.AddTool(mcp.NewTool("restore_heights",
		mcp.WithDescription("Sample block timestamps from a running daemon and return "+
			"timestamp:height lines, one per sampled height."),
		mcp.WithNumber("port", mcp.Description("Daemon RPC port (defaults to the configured port)")),
		mcp.WithNumber("interval", mcp.Description("Blocks between samples (defaults to the configured interval)")),
	), s.restoreHeights)

	s.mcp.AddTool(mcp.NewTool("get_doc_format",
		mcp.WithDescription("Returns the source guide format and the generated dialect."),
	), s.getDocFormat)

	s.mcp.AddResource(
		mcp.NewResource(docFormatURI, "Docs Format Contract",
			mcp.WithResourceDescription("Source guide frontmatter and the generated metadata dialect."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDocFormatResource,
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

func (s *Server) generateDocs(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := docs.Convert(ctx, s.settings.SourceDir, s.settings.OutputDir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(res.Written) == 0 {
		return mcp.NewToolResultText("no qualifying guides; output directory is empty"), nil
	}
	return mcp.NewToolResultText(strings.Join(res.Written, "\n")), nil
}

func (s *Server) listDocs(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalog, err := docs.OpenCatalog(s.settings.OutputDir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	items, err := catalog.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readDoc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	catalog, err := docs.OpenCatalog(s.settings.OutputDir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := catalog.Read(ctx, name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", name)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) restoreHeights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	port := req.GetInt("port", s.settings.DaemonPort)
	interval := req.GetInt("interval", int(s.settings.Interval))
	if port < 1 || port > 65535 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid port: %d", port)), nil
	}
	if interval < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid interval: %d", interval)), nil
	}

	client := daemon.NewClient(s.settings.DaemonHost, port)
	samples, err := heights.Collect(ctx, client, uint64(interval))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var buf bytes.Buffer
	if err := heights.Write(&buf, samples); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) getDocFormat(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DocFormatContract), nil
}

func (s *Server) readDocFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      docFormatURI,
			MIMEType: "text/markdown",
			Text:     DocFormatContract,
		},
	}, nil
}
