// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the article set to editor tooling via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/asrvd/nexxel.dev/internal/site"
)

// Server wraps the MCP server with the article tools.
type Server struct {
	mcp *server.MCPServer
	svc *site.Service
}

// New creates a new MCP server with all article tools registered.
func New(svc *site.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"nexxel.dev",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_articles",
		mcp.WithDescription("List all articles ordered by publish date descending. "+
			"Set include_drafts to also see unpublished drafts."),
		mcp.WithBoolean("include_drafts", mcp.Description("Include draft articles in the listing")),
	), s.listArticles)

	s.mcp.AddTool(mcp.NewTool("read_article",
		mcp.WithDescription("Read the metadata and rendered HTML of one article."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Article slug (e.g. game-of-life-go-ebiten)")),
	), s.readArticle)

	s.mcp.AddTool(mcp.NewTool("render_article",
		mcp.WithDescription("Render one article to a complete standalone HTML page "+
			"with the site stylesheet applied."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Article slug")),
	), s.renderArticle)

	s.mcp.AddTool(mcp.NewTool("search_articles",
		mcp.WithDescription("Full-text search through article titles and bodies."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchArticles)

	s.mcp.AddTool(mcp.NewTool("get_article_contract",
		mcp.WithDescription("Returns the canonical article source format contract. "+
			"Call this before authoring article sources to ensure correct structure."),
	), s.getArticleContract)

	// Resource: article format contract.
	s.mcp.AddResource(
		mcp.NewResource("nexxel://article-format", "Article Format Contract",
			mcp.WithResourceDescription("Canonical article source format that every document must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readArticleFormatResource,
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

func (s *Server) listArticles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	includeDrafts := req.GetBool("include_drafts", false)
	items, err := s.svc.List(ctx, includeDrafts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.svc.Get(ctx, slug)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("article %s: %v", slug, err)), nil
	}
	out, _ := json.MarshalIndent(doc, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) renderArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	page, err := s.svc.Page(ctx, slug)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("article %s: %v", slug, err)), nil
	}
	return mcp.NewToolResultText(page), nil
}

func (s *Server) searchArticles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("no matches"), nil
	}
	var lines []string
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", r.Slug, r.Title, r.Snippet))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) getArticleContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ArticleFormatContract), nil
}

func (s *Server) readArticleFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "nexxel://article-format",
			MIMEType: "text/markdown",
			Text:     ArticleFormatContract,
		},
	}, nil
}
