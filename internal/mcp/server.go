package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/a3tai/pdf-outline/internal/config"
	"github.com/a3tai/pdf-outline/internal/descriptions"
	"github.com/a3tai/pdf-outline/internal/pdf"
	"github.com/a3tai/pdf-outline/internal/render"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	mcpServer  *server.MCPServer
	log        *slog.Logger
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service, log *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // the tool set is fixed at startup
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		mcpServer:  mcpServer,
		log:        log,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	outlineFileTool := mcp.NewTool(
		descriptions.ToolOutlineFile,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolOutlineFile)),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file, absolute or relative to the configured directory"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: json (default), md or html"),
		),
	)
	s.mcpServer.AddTool(outlineFileTool, s.handlePDFOutlineFile)

	outlineDirectoryTool := mcp.NewTool(
		descriptions.ToolOutlineDirectory,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolOutlineDirectory)),
		mcp.WithString("directory",
			mcp.Description("Directory path to outline (uses default if empty)"),
		),
	)
	s.mcpServer.AddTool(outlineDirectoryTool, s.handlePDFOutlineDirectory)

	validateFileTool := mcp.NewTool(
		descriptions.ToolValidateFile,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolValidateFile)),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file, absolute or relative to the configured directory"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handlePDFValidateFile)

	searchDirectoryTool := mcp.NewTool(
		descriptions.ToolSearchDirectory,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolSearchDirectory)),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching"),
		),
	)
	s.mcpServer.AddTool(searchDirectoryTool, s.handlePDFSearchDirectory)
}

// Handler functions
func (s *Server) handlePDFOutlineFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format, err := render.ParseFormat(stringArgument(request, "format"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.OutlineFile(pdf.PDFOutlineFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	if err := render.Render(&b, format, result.Result()); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(result.MalformedPages) > 0 {
		s.log.Warn("outline built with skipped pages", "file", result.Path, "pages", result.MalformedPages)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handlePDFOutlineDirectory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	directory := stringArgument(request, "directory")
	if directory == "" {
		directory = s.config.PDFDirectory
	}

	result, err := s.pdfService.OutlineDirectory(pdf.PDFOutlineDirectoryRequest{Directory: directory})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatPDFOutlineDirectoryResult(result)), nil
}

func (s *Server) handlePDFValidateFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.ValidateFile(pdf.PDFValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable (%d pages)", result.Path, result.Pages)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePDFSearchDirectory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	directory := stringArgument(request, "directory")
	if directory == "" {
		directory = s.config.PDFDirectory
	}

	req := pdf.PDFSearchDirectoryRequest{
		Directory: directory,
		Query:     stringArgument(request, "query"),
	}
	result, err := s.pdfService.SearchDirectory(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatPDFSearchDirectoryResult(result)), nil
}

// stringArgument returns an optional string argument, or "" when it is
// missing or not a string.
func stringArgument(request mcp.CallToolRequest, name string) string {
	if v, ok := request.GetArguments()[name].(string); ok {
		return v
	}
	return ""
}

// Helper formatting functions

func (s *Server) formatPDFOutlineDirectoryResult(result *pdf.PDFOutlineDirectoryResult) string {
	text := fmt.Sprintf("Outlined %d PDF file(s) in directory: %s", result.TotalCount, result.Directory)
	if result.FailedCount > 0 {
		text += fmt.Sprintf(" (%d failed)", result.FailedCount)
	}
	text += "\n"

	for i, doc := range result.Documents {
		text += fmt.Sprintf("\n%d. %s\n", i+1, doc.Path)
		text += fmt.Sprintf("   Title: %s\n", doc.Title)
		if doc.Error != "" {
			text += fmt.Sprintf("   Error: %s\n", doc.Error)
			continue
		}
		if len(doc.Outline) == 0 {
			text += "   No headings found\n"
			continue
		}
		for _, entry := range doc.Outline {
			text += fmt.Sprintf("   %s %s (p. %d)\n", entry.Level, entry.Text, entry.Page)
		}
	}

	return text
}

func (s *Server) formatPDFSearchDirectoryResult(result *pdf.PDFSearchDirectoryResult) string {
	text := fmt.Sprintf("Found %d PDF file(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n\n", file.ModifiedTime)
	}

	return text
}

// Run serves MCP over standard input and output until the client disconnects.
// Logs must not be written to stdout in this mode.
func (s *Server) Run(_ context.Context) error {
	s.log.Info("starting MCP server", "transport", "stdio", "dir", s.config.PDFDirectory)

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
