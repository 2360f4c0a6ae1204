// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes folio content to LLM clients over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ignatij/folio/internal/apperr"
	"github.com/ignatij/folio/internal/index"
	"github.com/ignatij/folio/internal/models"
	"github.com/ignatij/folio/internal/siteservice"
)

// ContentFormatURI is the resource describing the front-matter keys.
const ContentFormatURI = "folio://content-format"

// Server wraps the MCP server with folio tools.
type Server struct {
	mcp *server.MCPServer
	svc *siteservice.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *siteservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"folio",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List portfolio projects in display order: ongoing, then finished by end date, then undated side projects."),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("read_project",
		mcp.WithDescription("Read one project: metadata and its Markdown body."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Project slug (file name without .md)")),
	), s.readProject)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List blog posts, newest first."),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("read_post",
		mcp.WithDescription("Read one blog post: metadata and its Markdown body."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Post slug (file name without .md)")),
	), s.readPost)

	s.mcp.AddTool(mcp.NewTool("search_content",
		mcp.WithDescription("Full-text search through project and post titles, tags and bodies."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20)")),
	), s.searchContent)

	s.mcp.AddTool(mcp.NewTool("cv_input",
		mcp.WithDescription("Return the profile and the projects the CV prints, split into dated projects and side projects."),
	), s.cvInput)

	s.mcp.AddResource(
		mcp.NewResource(ContentFormatURI, "Content Format",
			mcp.WithResourceDescription("Front-matter keys recognised for projects and blog posts."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContentFormatResource,
	)

	return s
}

// Listen serves MCP over the given streams (stdin/stdout in production)
// until ctx is cancelled or in is closed.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

type summary struct {
	Slug    string   `json:"slug"`
	Title   string   `json:"title,omitempty"`
	Excerpt string   `json:"excerpt"`
	Period  string   `json:"period,omitempty"`
	Date    string   `json:"date,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

type document struct {
	Slug     string         `json:"slug"`
	Meta     map[string]any `json:"meta"`
	Markdown string         `json:"markdown"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func lookupError(kind models.Kind, slug string, err error) *mcp.CallToolResult {
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("%s not found: %s", kind, slug))
	}
	return mcp.NewToolResultError(err.Error())
}

func (s *Server) listProjects(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.svc.ListProjects(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := make([]summary, len(projects))
	for i, p := range projects {
		out[i] = summary{Slug: p.Slug, Title: p.Title, Excerpt: p.Excerpt, Period: p.Period.Label(), Tags: p.Technologies}
	}
	return jsonResult(out)
}

func (s *Server) readProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := s.svc.GetProject(ctx, slug)
	if err != nil {
		return lookupError(models.KindProject, slug, err), nil
	}
	return jsonResult(document{Slug: p.Slug, Meta: p.Meta, Markdown: p.Source})
}

func (s *Server) listPosts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	posts, err := s.svc.ListPosts(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := make([]summary, len(posts))
	for i, p := range posts {
		out[i] = summary{Slug: p.Slug, Title: p.Title, Excerpt: p.Excerpt, Date: p.Date.String(), Tags: p.Tags}
	}
	return jsonResult(out)
}

func (s *Server) readPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := s.svc.GetPost(ctx, slug)
	if err != nil {
		return lookupError(models.KindPost, slug, err), nil
	}
	return jsonResult(document{Slug: p.Slug, Meta: p.Meta, Markdown: p.Source})
}

func (s *Server) searchContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("limit", index.DefaultSearchLimit)
	results, err := s.svc.Search(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results)
}

func (s *Server) cvInput(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := s.svc.CVInput(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	toSummaries := func(ps []models.Project) []summary {
		out := make([]summary, len(ps))
		for i, p := range ps {
			out[i] = summary{Slug: p.Slug, Title: p.Title, Excerpt: p.Excerpt, Period: p.Period.Label(), Tags: p.Technologies}
		}
		return out
	}
	return jsonResult(map[string]any{
		"profile":       s.svc.Profile(),
		"projects":      toSummaries(in.Projects),
		"side_projects": toSummaries(in.SideProjects),
	})
}

func (s *Server) readContentFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ContentFormatURI,
			MIMEType: "text/markdown",
			Text:     ContentFormat,
		},
	}, nil
}
