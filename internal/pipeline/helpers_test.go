package pipeline

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-md2wx/internal/theme"
)

// testStyles returns a style set whose values name their own key, so tests
// can assert which style an element carries.
func testStyles() *theme.Styles {
	return &theme.Styles{
		Container:        "s-container",
		Link:             "s-link",
		H1:               "s-h1",
		H2:               "s-h2",
		H3:               "s-h3",
		H4:               "",
		Paragraph:        "s-p",
		Strong:           "s-strong",
		CodeInline:       "s-code",
		Italic:           "s-italic",
		Strikethrough:    "s-strike",
		Highlight:        "s-highlight",
		CodeBlock:        "s-pre",
		HR:               "s-hr",
		QuoteTip:         "s-tip",
		QuoteWarning:     "s-warning",
		QuoteNote:        "s-note",
		QuoteInfo:        "s-info",
		QuoteDefault:     "s-default",
		Details:          "s-details",
		Summary:          "",
		UL:               "s-ul",
		OL:               "",
		LI:               "s-li",
		TaskChecked:      "s-done",
		TaskUnchecked:    "s-todo",
		Image:            "s-img",
		ImagePlaceholder: "s-placeholder",
		Video:            "s-video",
		MathInline:       "s-math",
		MathBlock:        "s-math-block",
		HeaderStyle:      "s-header",
		HeaderTitle:      "s-title",
		HeaderDots:       []string{"s-dot1", "s-dot2", "s-dot3"},
		FooterStyle:      "s-footer",
		FooterText:       "s-footer-text",
	}
}

// parseNodes parses an HTML fragment into top-level nodes.
func parseNodes(t *testing.T, fragment string) []*html.Node {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	})
	if err != nil {
		t.Fatalf("html.ParseFragment() error = %v", err)
	}
	return nodes
}

// countElements counts elements named tag anywhere in the fragment.
func countElements(t *testing.T, fragment, tag string) int {
	t.Helper()
	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			count++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range parseNodes(t, fragment) {
		walk(n)
	}
	return count
}

// textContent concatenates all text nodes under n.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// elements returns the top-level element nodes of a fragment.
func elements(t *testing.T, fragment string) []*html.Node {
	t.Helper()
	var out []*html.Node
	for _, n := range parseNodes(t, fragment) {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
	}
	return out
}
