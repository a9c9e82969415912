package pipeline

// Kind identifies the construct a Block represents.
type Kind int

const (
	KindHeading Kind = iota
	KindParagraph
	KindCode
	KindQuote
	KindListOpen
	KindListItem
	KindListClose
	KindRule
	KindImage
	KindDetailsOpen
	KindSummary
	KindDetailsClose
)

var kindNames = [...]string{
	KindHeading:      "heading",
	KindParagraph:    "paragraph",
	KindCode:         "code",
	KindQuote:        "quote",
	KindListOpen:     "list-open",
	KindListItem:     "list-item",
	KindListClose:    "list-close",
	KindRule:         "rule",
	KindImage:        "image",
	KindDetailsOpen:  "details-open",
	KindSummary:      "summary",
	KindDetailsClose: "details-close",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ListKind is the container type of a list. The dialect has no nesting, so at
// most one container is open at a time.
type ListKind int

const (
	ListNone ListKind = iota
	ListUnordered
	ListOrdered
)

// QuoteKind is the admonition type of a block quote.
type QuoteKind int

const (
	QuoteDefault QuoteKind = iota
	QuoteTip
	QuoteWarning
	QuoteNote
	QuoteInfo
)

// Block is one structural unit of a parsed document. Only the fields relevant
// to Kind are set.
type Block struct {
	Kind Kind

	// Text is the raw inline text of a heading, paragraph, quote body, list
	// item or summary. It has not been inline-rendered.
	Text string

	Level int // heading level, 1-4

	Lang string // code block language, "text" when absent
	Code string // code block body, verbatim

	Quote QuoteKind

	List    ListKind // container of a list open/close/item
	Task    bool     // list item carries a checkbox
	Checked bool

	Alt string // standalone image
	URL string
}
