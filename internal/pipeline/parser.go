package pipeline

import (
	"regexp"
	"strings"
)

// parserState is the top-level mode of the line dispatcher.
type parserState int

const (
	stateNormal parserState = iota
	stateInCode
)

const fence = "```"

var (
	taskItemPattern      = regexp.MustCompile(`^\s*[-*+]\s*\[( |x|X)\]\s*(.*)$`)
	unorderedItemPattern = regexp.MustCompile(`^\s*[-*+]\s+(.*)$`)
	orderedItemPattern   = regexp.MustCompile(`^\s*\d+\.\s+(.*)$`)
	standaloneImage      = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)$`)
)

// quoteTags are checked in order; the first prefix match wins.
var quoteTags = []struct {
	prefix string
	kind   QuoteKind
}{
	{"[!WARNING]", QuoteWarning},
	{"[!CAUTION]", QuoteWarning},
	{"[!TIP]", QuoteTip},
	{"[!T]", QuoteTip},
	{"[!NOTE]", QuoteNote},
	{"[!N]", QuoteNote},
	{"[!INFO]", QuoteInfo},
	{"[!I]", QuoteInfo},
}

// parser turns lines into blocks. One parser handles one document.
type parser struct {
	state  parserState
	list   ListKind
	lang   string
	code   []string
	blocks []Block
}

// Parse splits a normalized document into blocks. The output always has
// balanced list open/close pairs and never nests containers.
func Parse(markdown string) []Block {
	p := &parser{}
	// A final newline terminates the last line; it does not start a new one.
	markdown = strings.TrimSuffix(markdown, "\n")
	for _, line := range strings.Split(markdown, "\n") {
		p.line(line)
	}
	if p.state == stateInCode {
		p.flushCode()
	}
	p.closeList()
	return p.blocks
}

func (p *parser) line(line string) {
	if p.state == stateInCode {
		if strings.HasPrefix(line, fence) {
			p.flushCode()
			return
		}
		p.code = append(p.code, line)
		return
	}

	trimmed := strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(trimmed, "<details>"):
		p.emit(Block{Kind: KindDetailsOpen})
	case strings.HasPrefix(trimmed, "<summary>"):
		text := strings.ReplaceAll(line, "<summary>", "")
		text = strings.ReplaceAll(text, "</summary>", "")
		p.emit(Block{Kind: KindSummary, Text: strings.TrimSpace(text)})
	case strings.HasPrefix(trimmed, "</details>"):
		p.emit(Block{Kind: KindDetailsClose})

	case strings.HasPrefix(line, fence):
		p.closeList()
		p.state = stateInCode
		p.lang = strings.TrimSpace(line[len(fence):])
		if p.lang == "" {
			p.lang = "text"
		}

	case strings.HasPrefix(line, "#### "):
		p.heading(4, line[5:])
	case strings.HasPrefix(line, "### "):
		p.heading(3, line[4:])
	case strings.HasPrefix(line, "## "):
		p.heading(2, line[3:])

	case trimmed == "---":
		p.closeList()
		p.emit(Block{Kind: KindRule})

	case strings.HasPrefix(line, "> "):
		p.closeList()
		kind, text := parseQuote(line[2:])
		p.emit(Block{Kind: KindQuote, Quote: kind, Text: text})

	case taskItemPattern.MatchString(line):
		m := taskItemPattern.FindStringSubmatch(line)
		p.openList(ListUnordered)
		p.emit(Block{
			Kind:    KindListItem,
			List:    ListUnordered,
			Task:    true,
			Checked: m[1] != " ",
			Text:    m[2],
		})

	case standaloneImage.MatchString(trimmed):
		m := standaloneImage.FindStringSubmatch(trimmed)
		p.closeList()
		p.emit(Block{Kind: KindImage, Alt: m[1], URL: m[2]})

	case trimmed == "":
		// Blank lines never close a list.

	case unorderedItemPattern.MatchString(line):
		p.openList(ListUnordered)
		p.emit(Block{Kind: KindListItem, List: ListUnordered, Text: unorderedItemPattern.FindStringSubmatch(line)[1]})

	case orderedItemPattern.MatchString(line):
		p.openList(ListOrdered)
		p.emit(Block{Kind: KindListItem, List: ListOrdered, Text: orderedItemPattern.FindStringSubmatch(line)[1]})

	default:
		p.closeList()
		p.emit(Block{Kind: KindParagraph, Text: line})
	}
}

func (p *parser) emit(b Block) {
	p.blocks = append(p.blocks, b)
}

func (p *parser) heading(level int, text string) {
	p.closeList()
	p.emit(Block{Kind: KindHeading, Level: level, Text: text})
}

func (p *parser) flushCode() {
	p.emit(Block{Kind: KindCode, Lang: p.lang, Code: strings.Join(p.code, "\n")})
	p.code = nil
	p.lang = ""
	p.state = stateNormal
}

// openList makes kind the open container, closing a container of the other
// kind first.
func (p *parser) openList(kind ListKind) {
	if p.list == kind {
		return
	}
	p.closeList()
	p.list = kind
	p.emit(Block{Kind: KindListOpen, List: kind})
}

func (p *parser) closeList() {
	if p.list == ListNone {
		return
	}
	p.emit(Block{Kind: KindListClose, List: p.list})
	p.list = ListNone
}

// parseQuote strips one known admonition tag. Unknown tags stay in the text.
func parseQuote(text string) (QuoteKind, string) {
	for _, tag := range quoteTags {
		if !strings.HasPrefix(text, tag.prefix) {
			continue
		}
		_, rest, _ := strings.Cut(text, "]")
		return tag.kind, strings.TrimSpace(rest)
	}
	return QuoteDefault, text
}
