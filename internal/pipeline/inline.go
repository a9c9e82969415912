package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-md2wx/internal/theme"
)

// inlineRule is one substitution pass over a text span.
type inlineRule struct {
	name  string
	apply func(string) string
}

var (
	mathBlockPattern     = regexp.MustCompile(`\$\$([^$]+)\$\$`)
	mathInlinePattern    = regexp.MustCompile(`\$([^$]+)\$`)
	inlineImagePattern   = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	strikethroughPattern = regexp.MustCompile(`~~([^~]+)~~`)
	highlightPattern     = regexp.MustCompile(`==([^=]+)==`)
	boldPattern          = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	inlineCodePattern    = regexp.MustCompile("`([^`]+)`")
	linkPattern          = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// InlineRenderer applies the inline substitutions in a fixed order. Later
// rules see the tags produced by earlier ones; text is not HTML-escaped.
type InlineRenderer struct {
	rules []inlineRule
}

// NewInlineRenderer builds the rule chain for one set of styles. When
// realImages is false, inline images render as themed placeholders.
func NewInlineRenderer(s *theme.Styles, realImages bool) *InlineRenderer {
	image := func(alt, url string) string { return renderImage(s, realImages, alt, url) }
	return &InlineRenderer{rules: []inlineRule{
		{"math-block", wrapRule(mathBlockPattern, "div", s.MathBlock)},
		{"math-inline", wrapRule(mathInlinePattern, "span", s.MathInline)},
		{"image", func(text string) string {
			return replaceSubmatches(inlineImagePattern, text, func(g []string) string { return image(g[1], g[2]) })
		}},
		{"strikethrough", wrapRule(strikethroughPattern, "span", s.Strikethrough)},
		{"highlight", wrapRule(highlightPattern, "span", s.Highlight)},
		{"bold", wrapRule(boldPattern, "strong", s.Strong)},
		{"italic", func(text string) string { return replaceItalic(text, s.Italic) }},
		{"code", wrapRule(inlineCodePattern, "code", s.CodeInline)},
		{"link", func(text string) string {
			return replaceSubmatches(linkPattern, text, func(g []string) string {
				return `<a href="` + g[2] + `" style="` + s.Link + `">` + g[1] + `</a>`
			})
		}},
	}}
}

// Render applies every rule in order to text.
func (r *InlineRenderer) Render(text string) string {
	for _, rule := range r.rules {
		text = rule.apply(text)
	}
	return text
}

// wrapRule wraps group 1 of every match in <tag style="style">.
func wrapRule(re *regexp.Regexp, tag, style string) func(string) string {
	open := `<` + tag + ` style="` + style + `">`
	closing := `</` + tag + `>`
	return func(text string) string {
		return replaceSubmatches(re, text, func(g []string) string {
			return open + g[1] + closing
		})
	}
}

// replaceSubmatches is ReplaceAllStringFunc with access to the groups. Unlike
// ReplaceAllString it never expands $ in the replacement, so style strings
// and captured text are inserted literally.
func replaceSubmatches(re *regexp.Regexp, text string, repl func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		groups := make([]string, len(m)/2)
		for i := range groups {
			if m[2*i] >= 0 {
				groups[i] = text[m[2*i]:m[2*i+1]]
			}
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(repl(groups))
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// replaceItalic wraps *text* in a span. A star that touches another star on
// the outside is not a delimiter, so **bold** leftovers are not matched.
// Go's regexp has no lookaround, hence the scan.
func replaceItalic(text, style string) string {
	if !strings.Contains(text, "*") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '*' || (i > 0 && text[i-1] == '*') {
			continue
		}
		j := i + 1
		for j < len(text) && text[j] != '*' {
			j++
		}
		if j == len(text) || j == i+1 {
			continue
		}
		if j+1 < len(text) && text[j+1] == '*' {
			continue
		}
		b.WriteString(text[last:i])
		b.WriteString(`<span style="` + style + `">` + text[i+1:j] + `</span>`)
		last = j + 1
		i = j
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

// renderImage renders an <img> or, without real images, a themed placeholder.
func renderImage(s *theme.Styles, realImages bool, alt, url string) string {
	if realImages {
		return `<img src="` + url + `" alt="` + alt + `" style="` + s.Image + `" />`
	}
	return `<section style="` + s.ImagePlaceholder + `">[Image: ` + alt + `]</section>`
}
