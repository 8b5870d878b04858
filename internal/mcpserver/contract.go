package mcpserver

// ArticleFormatContract is the canonical description of the article source
// format. It is exposed both as an MCP resource and through the
// get_article_contract tool so that authoring agents produce sources the
// pipeline accepts on the first try.
const ArticleFormatContract = `# Article Format Contract

Every article is a Markdown file with a YAML frontmatter block.

## Frontmatter

The file MUST begin with a frontmatter block delimited by ` + "`---`" + ` lines:

    ---
    title: Writing a Game of Life in Go
    description: Cellular automata with ebiten, from zero to glider gun.
    date: 2024-03-17
    draft: false
    ---

Required fields:

- title: non-empty string
- description: non-empty string
- date: publish date in YYYY-MM-DD format

Optional fields:

- draft: boolean, defaults to false. Draft articles are excluded from
  listings and published builds.

A file with missing or malformed frontmatter is rejected wholesale; there
is no partial import.

## Body

The body after the frontmatter is GitHub Flavored Markdown with these
site-specific constructs:

- Fenced code blocks may carry a filename after the language, separated
  by a colon: ` + "```" + `go:main.go. The filename is shown in a label above
  the code.
- Headings must not skip levels downward: an h4 cannot directly follow
  an h2.
- Images may opt into pixelated rendering by appending #pixelated to the
  image URL: ![sprite](/assets/sprite.png#pixelated).
- Every fenced code block must be terminated before the end of the file.

## Slugs

The article URL slug is derived from the file path relative to the
content root: lowercase, non-alphanumeric runs collapsed to single
hyphens, directory separators preserved, .md extension stripped.
posts/Game Of Life.md becomes posts/game-of-life.
`
