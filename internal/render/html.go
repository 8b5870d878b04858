package render

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

const pixelatedFragment = "#pixelated"

// nodeRenderer overrides the HTML output for headings, fenced code
// blocks, and images. Everything else falls through to goldmark's
// defaults.
type nodeRenderer struct{}

func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindImage, r.renderImage)
}

// renderHeading emits the heading with its anchor id and, just before the
// closing tag, the hover-revealed "#" link to the section.
func (r *nodeRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	id, _ := n.AttributeString("id")
	anchor, _ := id.([]byte)

	if entering {
		_, _ = fmt.Fprintf(w, "<h%d", n.Level)
		if len(anchor) > 0 {
			_, _ = w.WriteString(` id="`)
			_, _ = w.Write(util.EscapeHTML(anchor))
			_, _ = w.WriteString(`"`)
		}
		_, _ = w.WriteString(">")
		return ast.WalkContinue, nil
	}

	if len(anchor) > 0 {
		_, _ = w.WriteString(`<a class="heading-anchor" href="#`)
		_, _ = w.Write(util.EscapeHTML(anchor))
		_, _ = w.WriteString(`" aria-hidden="true">#</a>`)
	}
	_, _ = fmt.Fprintf(w, "</h%d>\n", n.Level)
	return ast.WalkContinue, nil
}

// renderFencedCodeBlock emits a labeled block: an optional label bar with
// the language and filename, then the literal content inside pre/code.
// Whitespace is preserved exactly; overflow behavior (scroll, no wrap)
// belongs to the style layer.
func (r *nodeRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang, filename := splitInfo(n, source)

	_, _ = w.WriteString(`<div class="code-block">`)
	if lang != "" || filename != "" {
		_, _ = w.WriteString(`<div class="code-block-label">`)
		if lang != "" {
			_, _ = w.WriteString(`<span class="code-block-lang">`)
			_, _ = w.Write(util.EscapeHTML([]byte(lang)))
			_, _ = w.WriteString(`</span>`)
		}
		if filename != "" {
			_, _ = w.WriteString(`<span class="code-block-filename">`)
			_, _ = w.Write(util.EscapeHTML([]byte(filename)))
			_, _ = w.WriteString(`</span>`)
		}
		_, _ = w.WriteString(`</div>`)
	}

	_, _ = w.WriteString(`<pre><code`)
	if lang != "" {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.Write(util.EscapeHTML([]byte(lang)))
		_, _ = w.WriteString(`"`)
	}
	_, _ = w.WriteString(">")
	for i := 0; i < n.Lines().Len(); i++ {
		line := n.Lines().At(i)
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
	}
	_, _ = w.WriteString("</code></pre></div>\n")
	return ast.WalkSkipChildren, nil
}

// renderImage emits the image tag; a destination flagged with the
// "#pixelated" fragment gets the pixelated class and the fragment is
// stripped from the emitted src.
func (r *nodeRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)

	dest := string(n.Destination)
	pixelated := strings.HasSuffix(dest, pixelatedFragment)
	if pixelated {
		dest = strings.TrimSuffix(dest, pixelatedFragment)
	}

	_, _ = w.WriteString(`<img src="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape([]byte(dest), true)))
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(nodeText(n, source))))
	_, _ = w.WriteString(`"`)
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_, _ = w.WriteString(`"`)
	}
	if pixelated {
		_, _ = w.WriteString(` class="pixelated"`)
	}
	_, _ = w.WriteString(" />")
	return ast.WalkSkipChildren, nil
}
