package render

import (
	"html/template"
	"strings"

	"github.com/asrvd/nexxel.dev/internal/models"
)

// PageOptions carries the chrome around a rendered article.
type PageOptions struct {
	SiteTitle string
	CSS       string
}

// Page assembles a complete standalone HTML document for one rendered
// article: head with inlined stylesheet, article header with title,
// description and publish date, then the rendered body.
func Page(doc *models.Document, rendered *models.RenderedDocument, opts PageOptions) string {
	var b strings.Builder
	b.Grow(len(rendered.HTML) + len(opts.CSS) + 1024)

	title := template.HTMLEscapeString(doc.Title)
	pageTitle := title
	if opts.SiteTitle != "" {
		pageTitle += " — " + template.HTMLEscapeString(opts.SiteTitle)
	}

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n")
	b.WriteString("  <head>\n")
	b.WriteString("    <meta charset=\"UTF-8\" />\n")
	b.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\" />\n")
	b.WriteString("    <meta name=\"description\" content=\"")
	b.WriteString(template.HTMLEscapeString(doc.Description))
	b.WriteString("\" />\n")
	b.WriteString("    <title>")
	b.WriteString(pageTitle)
	b.WriteString("</title>\n")
	if opts.CSS != "" {
		b.WriteString("    <style>\n")
		b.WriteString(opts.CSS)
		b.WriteString("\n    </style>\n")
	}
	b.WriteString("  </head>\n")
	b.WriteString("  <body>\n")
	b.WriteString("    <article class=\"prose\">\n")
	b.WriteString("      <header>\n")
	b.WriteString("        <h1>")
	b.WriteString(title)
	b.WriteString("</h1>\n")
	b.WriteString("        <p class=\"description\">")
	b.WriteString(template.HTMLEscapeString(doc.Description))
	b.WriteString("</p>\n")
	b.WriteString("        <time datetime=\"")
	b.WriteString(doc.PublishedAt.Format("2006-01-02"))
	b.WriteString("\">")
	b.WriteString(doc.PublishedAt.Format("January 2, 2006"))
	b.WriteString("</time>\n")
	b.WriteString("      </header>\n")
	b.WriteString(rendered.HTML)
	b.WriteString("    </article>\n")
	b.WriteString("  </body>\n")
	b.WriteString("</html>\n")

	return b.String()
}

// Listing assembles the date-ordered index page for a summary set.
func Listing(summaries []models.Summary, opts PageOptions) string {
	var b strings.Builder
	b.Grow(len(opts.CSS) + 1024)

	title := template.HTMLEscapeString(opts.SiteTitle)
	if title == "" {
		title = "Articles"
	}

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n")
	b.WriteString("  <head>\n")
	b.WriteString("    <meta charset=\"UTF-8\" />\n")
	b.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\" />\n")
	b.WriteString("    <title>")
	b.WriteString(title)
	b.WriteString("</title>\n")
	if opts.CSS != "" {
		b.WriteString("    <style>\n")
		b.WriteString(opts.CSS)
		b.WriteString("\n    </style>\n")
	}
	b.WriteString("  </head>\n")
	b.WriteString("  <body>\n")
	b.WriteString("    <main class=\"prose\">\n")
	b.WriteString("      <h1>")
	b.WriteString(title)
	b.WriteString("</h1>\n")
	b.WriteString("      <ul class=\"article-list\">\n")
	for _, s := range summaries {
		b.WriteString("        <li><time datetime=\"")
		b.WriteString(s.PublishedAt.Format("2006-01-02"))
		b.WriteString("\">")
		b.WriteString(s.PublishedAt.Format("2006-01-02"))
		b.WriteString("</time> <a href=\"/")
		b.WriteString(s.Slug)
		b.WriteString("/\">")
		b.WriteString(template.HTMLEscapeString(s.Title))
		b.WriteString("</a></li>\n")
	}
	b.WriteString("      </ul>\n")
	b.WriteString("    </main>\n")
	b.WriteString("  </body>\n")
	b.WriteString("</html>\n")

	return b.String()
}
