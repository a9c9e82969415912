package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownHighlightStyle indicates a style name chroma does not know.
var ErrUnknownHighlightStyle = errors.New("unknown highlight style")

// Highlighter colors code block bodies with inline style attributes, since
// the target editors strip <style> and class attributes.
type Highlighter struct {
	style *chroma.Style
}

// NewHighlighter returns a Highlighter for a chroma style such as "monokai"
// or "github".
func NewHighlighter(styleName string) (*Highlighter, error) {
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, styleName)
	}
	return &Highlighter{style: style}, nil
}

// HighlightStyles returns the available style names, sorted.
func HighlightStyles() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Highlight tokenizes code for lang and returns escaped HTML with one span
// per styled token. Unknown languages fall back to plain text.
func (h *Highlighter) Highlight(lang, code string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Match("file." + lang)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return escapeCode(code)
	}

	var b strings.Builder
	b.Grow(len(code) * 2)
	for _, tok := range iterator.Tokens() {
		value := escapeCode(tok.Value)
		css := tokenCSS(h.style.Get(tok.Type))
		if css == "" {
			b.WriteString(value)
			continue
		}
		b.WriteString(`<span style="` + css + `">` + value + `</span>`)
	}

	out := b.String()
	// Lexers append a final newline the source may not have had.
	if !strings.HasSuffix(code, "\n") {
		out = trimLastNewline(out)
	}
	return out
}

// tokenCSS converts a style entry into inline declarations. Backgrounds are
// left to the theme's code_block style.
func tokenCSS(e chroma.StyleEntry) string {
	var decls []string
	if e.Colour.IsSet() {
		decls = append(decls, "color: "+e.Colour.String()+";")
	}
	if e.Bold == chroma.Yes {
		decls = append(decls, "font-weight: bold;")
	}
	if e.Italic == chroma.Yes {
		decls = append(decls, "font-style: italic;")
	}
	if e.Underline == chroma.Yes {
		decls = append(decls, "text-decoration: underline;")
	}
	return strings.Join(decls, " ")
}

// trimLastNewline removes the last "\n", which may sit inside a closing span.
func trimLastNewline(s string) string {
	i := strings.LastIndex(s, "\n")
	if i < 0 {
		return s
	}
	if rest := s[i+1:]; rest == "" || rest == "</span>" {
		return s[:i] + rest
	}
	return s
}
