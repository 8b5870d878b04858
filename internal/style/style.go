// Package style holds the fixed presentation contract applied to rendered
// output. It is configuration, not logic: a rule table plus an embedded
// stylesheet, with no runtime branching.
package style

import _ "embed"

//go:embed assets/base.css
var baseStylesheet string

// Rule keys for the presentation table.
const (
	RuleBaseFontStack  = "font.base"
	RuleMonoFontStack  = "font.mono"
	RuleColorScheme    = "color.scheme"
	RuleBackground     = "color.background"
	RuleForeground     = "color.foreground"
	RuleAnchorGlyph    = "heading.anchor.glyph"
	RuleCodeOverflow   = "code.block.overflow"
	RuleCodeWrap       = "code.block.wrap"
	RuleImageRendering = "image.flagged.rendering"
	RuleLinkDecoration = "link.decoration"
	RuleLinkColor      = "link.color"
)

// Rules is the fixed presentation rule table. The stylesheet realizes
// these values; consumers read them for labeling and tests.
var Rules = map[string]string{
	RuleBaseFontStack:  `"Monocraft", "Bitter", ui-serif, Georgia, serif`,
	RuleMonoFontStack:  `"Monocraft", ui-monospace, "Cascadia Code", Menlo, monospace`,
	RuleColorScheme:    "dark",
	RuleBackground:     "#111111",
	RuleForeground:     "#e4e4e7",
	RuleAnchorGlyph:    "#",
	RuleCodeOverflow:   "scroll-x",
	RuleCodeWrap:       "none",
	RuleImageRendering: "pixelated",
	RuleLinkDecoration: "none",
	RuleLinkColor:      "inherit",
}

// Stylesheet returns the embedded CSS realizing the rule table.
func Stylesheet() string {
	return baseStylesheet
}
