package pipeline

import (
	"strings"

	"github.com/alnah/go-md2wx/internal/theme"
)

// Fixed chrome text.
const (
	HeaderTitle = "markdown.md"
	FooterText  = "_壹五_ @ AI Vibe Coding"
)

// Assemble wraps content in the outer container with the themed window
// header and footer.
func Assemble(content string, s *theme.Styles) string {
	var b strings.Builder
	b.Grow(len(content) + 1024)

	b.WriteString(`<section id="nice" style="` + s.Container + `">` + "\n")
	writeHeader(&b, s)
	b.WriteString("\n\n")
	b.WriteString(content)
	b.WriteString("\n\n")
	writeFooter(&b, s)
	b.WriteString("\n</section>")
	return b.String()
}

func writeHeader(b *strings.Builder, s *theme.Styles) {
	dots := make([]string, len(s.HeaderDots))
	for i, d := range s.HeaderDots {
		dots[i] = `<span style="` + d + `"></span>`
	}
	b.WriteString(`<div style="` + s.HeaderStyle + `">` + "\n")
	b.WriteString(strings.Join(dots, "\n"))
	b.WriteString("\n" + `<span style="` + s.HeaderTitle + `">` + HeaderTitle + `</span>` + "\n</div>")
}

func writeFooter(b *strings.Builder, s *theme.Styles) {
	b.WriteString(`<div style="` + s.FooterStyle + `">` + "\n")
	b.WriteString(`<p style="` + s.FooterText + `">` + FooterText + `</p>` + "\n</div>")
}
