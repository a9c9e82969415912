package pipeline

import (
	"strconv"
	"strings"

	"github.com/alnah/go-md2wx/internal/theme"
)

// Glyphs for task list items.
const (
	glyphChecked   = "&#10003;"
	glyphUnchecked = "&#9724;"
)

var codeEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeCode escapes the three characters that matter inside <pre>.
func escapeCode(code string) string {
	return codeEscaper.Replace(code)
}

// RenderOptions controls block rendering.
type RenderOptions struct {
	RealImages  bool         // false renders every image as a placeholder
	Highlighter *Highlighter // nil keeps code bodies escape-only
}

// Renderer turns blocks into HTML fragments using one resolved style set.
type Renderer struct {
	styles *theme.Styles
	inline *InlineRenderer
	opts   RenderOptions
}

// NewRenderer creates a Renderer.
func NewRenderer(s *theme.Styles, opts RenderOptions) *Renderer {
	return &Renderer{
		styles: s,
		inline: NewInlineRenderer(s, opts.RealImages),
		opts:   opts,
	}
}

// Inline exposes the renderer's inline chain.
func (r *Renderer) Inline() *InlineRenderer { return r.inline }

// Render renders blocks and joins the fragments with newlines.
func (r *Renderer) Render(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, r.Block(b))
	}
	return strings.Join(parts, "\n")
}

// Block renders a single block.
func (r *Renderer) Block(b Block) string {
	s := r.styles
	switch b.Kind {
	case KindHeading:
		tag := "h" + strconv.Itoa(b.Level)
		return openTag(tag, r.headingStyle(b.Level)) + r.inline.Render(b.Text) + "</" + tag + ">"
	case KindParagraph:
		return openTag("p", s.Paragraph) + r.inline.Render(b.Text) + "</p>"
	case KindCode:
		return r.code(b)
	case KindQuote:
		return openTag("blockquote", r.quoteStyle(b.Quote)) + r.inline.Render(b.Text) + "</blockquote>"
	case KindListOpen:
		if b.List == ListOrdered {
			return openTag("ol", s.OL)
		}
		return openTag("ul", s.UL)
	case KindListClose:
		if b.List == ListOrdered {
			return "</ol>"
		}
		return "</ul>"
	case KindListItem:
		return r.listItem(b)
	case KindRule:
		return `<hr style="` + s.HR + `">`
	case KindImage:
		return renderImage(s, r.opts.RealImages, b.Alt, b.URL)
	case KindDetailsOpen:
		return openTag("details", s.Details)
	case KindSummary:
		return openTag("summary", s.Summary) + r.inline.Render(b.Text) + "</summary>"
	case KindDetailsClose:
		return "</details>"
	}
	return ""
}

func (r *Renderer) code(b Block) string {
	body := escapeCode(b.Code)
	if r.opts.Highlighter != nil {
		body = r.opts.Highlighter.Highlight(b.Lang, b.Code)
	}
	return `<pre style="` + r.styles.CodeBlock + `"><code>` + body + `</code></pre>`
}

func (r *Renderer) listItem(b Block) string {
	s := r.styles
	li := `<li style="` + s.LI + `">`
	if !b.Task {
		return li + r.inline.Render(b.Text) + "</li>"
	}
	style, glyph := s.TaskUnchecked, glyphUnchecked
	if b.Checked {
		style, glyph = s.TaskChecked, glyphChecked
	}
	return li + `<span style="` + style + `">` + glyph + `</span> ` + r.inline.Render(b.Text) + "</li>"
}

func (r *Renderer) headingStyle(level int) string {
	switch level {
	case 1:
		return r.styles.H1
	case 2:
		return r.styles.H2
	case 3:
		return r.styles.H3
	default:
		return r.styles.H4
	}
}

func (r *Renderer) quoteStyle(kind QuoteKind) string {
	s := r.styles
	switch kind {
	case QuoteTip:
		return s.QuoteTip
	case QuoteWarning:
		return s.QuoteWarning
	case QuoteNote:
		return s.QuoteNote
	case QuoteInfo:
		return s.QuoteInfo
	default:
		return s.QuoteDefault
	}
}

// openTag renders <tag style="..."> or a bare <tag> when style is empty.
func openTag(tag, style string) string {
	if style == "" {
		return "<" + tag + ">"
	}
	return "<" + tag + ` style="` + style + `">`
}
