// Package render transforms a document's markdown body into styled HTML
// with anchored headings and labeled code blocks.
package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/asrvd/nexxel.dev/internal/apperr"
	"github.com/asrvd/nexxel.dev/internal/models"
	"github.com/asrvd/nexxel.dev/internal/slug"
)

// Renderer converts documents to HTML. It holds no per-document state:
// identical input produces byte-identical output on every call.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer with the GFM extension set and the custom node
// renderers for headings, fenced code blocks, and images.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				renderer.WithNodeRenderers(
					util.Prioritized(&nodeRenderer{}, 100),
				),
			),
		),
	}
}

// Render validates and renders doc's body. Malformed markup fails with
// *apperr.RenderError; sibling documents are unaffected.
func (r *Renderer) Render(doc *models.Document) (*models.RenderedDocument, error) {
	if err := validateBody(doc.Path, doc.Body); err != nil {
		return nil, err
	}

	source := []byte(doc.Body)
	root := r.md.Parser().Parse(text.NewReader(source))
	headings, blocks := annotate(root, source)

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, root); err != nil {
		return nil, &apperr.RenderError{Path: doc.Path, Construct: "body", Msg: err.Error()}
	}

	return &models.RenderedDocument{
		Slug:       doc.Slug,
		HTML:       buf.String(),
		Headings:   headings,
		CodeBlocks: blocks,
	}, nil
}

// annotate walks the parsed tree once, assigning a deduplicated anchor id
// to every heading and collecting heading and code block metadata in
// document order.
func annotate(root ast.Node, source []byte) ([]models.Heading, []models.CodeBlock) {
	var headings []models.Heading
	var blocks []models.CodeBlock
	anchors := slug.NewDedup()

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			txt := nodeText(node, source)
			anchor := anchors.Take(txt)
			node.SetAttributeString("id", []byte(anchor))
			headings = append(headings, models.Heading{
				Text:   txt,
				Level:  node.Level,
				Anchor: anchor,
			})
		case *ast.FencedCodeBlock:
			lang, filename := splitInfo(node, source)
			blocks = append(blocks, models.CodeBlock{
				Language: lang,
				Filename: filename,
				Content:  literalLines(node, source),
			})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return headings, blocks
}

// splitInfo splits a fence info string "lang:filename" into its parts.
// Either side may be empty.
func splitInfo(n *ast.FencedCodeBlock, source []byte) (lang, filename string) {
	if n.Info == nil {
		return "", ""
	}
	info := strings.TrimSpace(string(n.Info.Segment.Value(source)))
	if info == "" {
		return "", ""
	}
	if i := strings.Index(info, ":"); i >= 0 {
		return strings.TrimSpace(info[:i]), strings.TrimSpace(info[i+1:])
	}
	return info, ""
}

// literalLines returns the fenced block content exactly as written,
// including leading indentation.
func literalLines(n *ast.FencedCodeBlock, source []byte) string {
	var sb strings.Builder
	for i := 0; i < n.Lines().Len(); i++ {
		line := n.Lines().At(i)
		sb.Write(line.Value(source))
	}
	return sb.String()
}

// nodeText collects the plain text content of n.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				sb.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
