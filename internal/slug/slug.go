// Package slug converts source paths and heading text into URL-safe
// identifiers.
package slug

import (
	"strconv"
	"strings"
)

// Make lowercases s and collapses every run of non-alphanumeric characters
// into a single hyphen. Leading and trailing hyphens are trimmed.
func Make(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	hyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
		default:
			hyphen = true
		}
	}
	return b.String()
}

// FromPath derives a document slug from a source path relative to the
// content root: the extension is stripped and each path segment is
// slugified, with separators preserved.
func FromPath(path string) string {
	path = strings.TrimSuffix(strings.ReplaceAll(path, "\\", "/"), ".md")
	segs := strings.Split(path, "/")
	out := make([]string, 0, len(segs))
	for _, seg := range segs {
		if s := Make(seg); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "/")
}

// Dedup hands out unique slugs within one scope: repeated input produces
// "overview", "overview-1", "overview-2", ...
type Dedup struct {
	seen map[string]int
}

// NewDedup returns an empty dedup scope.
func NewDedup() *Dedup {
	return &Dedup{seen: make(map[string]int)}
}

// Take returns the unique slug for text within this scope.
func (d *Dedup) Take(text string) string {
	base := Make(text)
	if base == "" {
		base = "section"
	}
	n := d.seen[base]
	d.seen[base] = n + 1
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
