package render

import (
	"fmt"
	"strings"

	"github.com/asrvd/nexxel.dev/internal/apperr"
)

// validateBody scans the raw body once before parsing. Two faults are
// unrecoverable for a single-pass transform and fail with RenderError:
// a fenced code block that never closes, and a heading that jumps more
// than one level deeper than its predecessor.
func validateBody(path, body string) error {
	var (
		inFence   bool
		fenceChar byte
		fenceLen  int
		fenceLine int
		prevLevel int
	)

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")

		if inFence {
			if closesFence(trimmed, fenceChar, fenceLen) {
				inFence = false
			}
			continue
		}

		if ch, n := fenceRun(trimmed); n >= 3 {
			inFence = true
			fenceChar, fenceLen, fenceLine = ch, n, i+1
			continue
		}

		if lvl := headingLevel(trimmed); lvl > 0 {
			if prevLevel > 0 && lvl > prevLevel+1 {
				return &apperr.RenderError{
					Path:      path,
					Construct: "heading",
					Line:      i + 1,
					Msg:       fmt.Sprintf("level %d cannot follow level %d", lvl, prevLevel),
				}
			}
			prevLevel = lvl
		}
	}

	if inFence {
		return &apperr.RenderError{
			Path:      path,
			Construct: "fenced code block",
			Line:      fenceLine,
			Msg:       "unterminated",
		}
	}
	return nil
}

// fenceRun reports the fence character and run length at the start of a
// line (``` or ~~~, possibly longer).
func fenceRun(line string) (byte, int) {
	if line == "" || (line[0] != '`' && line[0] != '~') {
		return 0, 0
	}
	ch := line[0]
	n := 0
	for n < len(line) && line[n] == ch {
		n++
	}
	return ch, n
}

// closesFence reports whether line terminates a fence opened with the
// given character and length: same character, at least as long, nothing
// else on the line.
func closesFence(line string, ch byte, length int) bool {
	got, n := fenceRun(line)
	if got != ch || n < length {
		return false
	}
	return strings.TrimSpace(line[n:]) == ""
}

// headingLevel returns the ATX heading level of a line, or 0.
func headingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return 0
	}
	if n == len(line) || line[n] == ' ' || line[n] == '\t' {
		return n
	}
	return 0
}
