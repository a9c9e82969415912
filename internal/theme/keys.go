package theme

// Style key paths.
const (
	KeyContainer = "base.container"
	KeyLink      = "base.link"

	KeyH1 = "components.headings.h1"
	KeyH2 = "components.headings.h2"
	KeyH3 = "components.headings.h3"
	KeyH4 = "components.headings.h4"

	KeyParagraph     = "components.text.paragraph"
	KeyStrong        = "components.text.strong"
	KeyCodeInline    = "components.text.code_inline"
	KeyItalic        = "components.text.italic"
	KeyStrikethrough = "components.text.strikethrough"
	KeyHighlight     = "components.text.highlight"
	KeyMark          = "components.text.mark"

	KeyCodeBlock    = "components.blocks.code_block"
	KeyHR           = "components.blocks.hr"
	KeyQuoteTip     = "components.blocks.quote_tip"
	KeyQuoteWarning = "components.blocks.quote_warning"
	KeyQuoteNote    = "components.blocks.quote_note"
	KeyQuoteInfo    = "components.blocks.quote_info"
	KeyQuoteDefault = "components.blocks.quote_default"
	KeyDetails      = "components.blocks.details"
	KeySummary      = "components.blocks.summary"

	KeyUL            = "components.lists.ul"
	KeyOL            = "components.lists.ol"
	KeyLI            = "components.lists.li"
	KeyTaskChecked   = "components.lists.task_checked"
	KeyTaskUnchecked = "components.lists.task_unchecked"

	KeyImage            = "components.media.image"
	KeyImagePlaceholder = "components.media.image_placeholder"
	KeyVideo            = "components.media.video"

	KeyMathInline = "components.math.inline"
	KeyMathBlock  = "components.math.block"

	KeyHeaderStyle = "components.header_window.style"
	KeyHeaderTitle = "components.header_window.title_style"
	KeyHeaderDots  = "components.header_window.dots"

	KeyFooterStyle = "components.footer.style"
	KeyFooterText  = "components.footer.text"
)

// Literal defaults for optional keys that have no sibling to fall back to.
const (
	DefaultItalic        = "font-style: italic;"
	DefaultStrikethrough = "text-decoration: line-through;"
	DefaultHighlight     = "background-color: yellow;"
	DefaultImage         = "max-width: 100%; height: auto; display: block; margin: 15px 0;"
	DefaultVideo         = "width: 100%; margin: 15px 0;"
)

// fallback describes how an optional key resolves when the theme omits it:
// each sibling key is tried in order, then the literal is used.
type fallback struct {
	siblings []string
	literal  string
}

// optionalKeys lists every key a theme may omit. Any key not listed here is
// required.
var optionalKeys = map[string]fallback{
	KeyH1: {siblings: []string{KeyH2}},
	KeyH4: {},

	KeyItalic:        {literal: DefaultItalic},
	KeyStrikethrough: {literal: DefaultStrikethrough},
	KeyHighlight:     {siblings: []string{KeyMark}, literal: DefaultHighlight},
	KeyMark:          {literal: DefaultHighlight},

	KeyQuoteWarning: {siblings: []string{KeyQuoteTip}},
	KeyQuoteNote:    {siblings: []string{KeyQuoteTip}},
	KeyQuoteInfo:    {siblings: []string{KeyQuoteTip}},
	KeyQuoteDefault: {siblings: []string{KeyQuoteTip}},
	KeyDetails:      {},
	KeySummary:      {},

	KeyUL: {},
	KeyOL: {},

	KeyImage: {literal: DefaultImage},
	KeyVideo: {literal: DefaultVideo},
}

// IsOptional reports whether a theme may omit the key.
func IsOptional(path string) bool {
	_, ok := optionalKeys[path]
	return ok
}
