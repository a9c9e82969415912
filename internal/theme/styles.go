package theme

import "go.uber.org/multierr"

// Styles is the fully resolved, flat set of style strings for one theme.
// Renderers read fields; they never touch the theme mapping.
type Styles struct {
	Container string
	Link      string

	H1, H2, H3, H4 string

	Paragraph     string
	Strong        string
	CodeInline    string
	Italic        string
	Strikethrough string
	Highlight     string

	CodeBlock    string
	HR           string
	QuoteTip     string
	QuoteWarning string
	QuoteNote    string
	QuoteInfo    string
	QuoteDefault string
	Details      string
	Summary      string

	UL            string
	OL            string
	LI            string
	TaskChecked   string
	TaskUnchecked string

	Image            string
	ImagePlaceholder string
	Video            string

	MathInline string
	MathBlock  string

	HeaderStyle string
	HeaderTitle string
	HeaderDots  []string

	FooterStyle string
	FooterText  string
}

// Styles resolves every key the renderers use.
// All missing or malformed keys are reported together in one error.
func (t *Theme) Styles() (*Styles, error) {
	var errs error
	get := func(path string) string {
		s, err := t.Resolve(path)
		errs = multierr.Append(errs, err)
		return s
	}

	s := &Styles{
		Container: get(KeyContainer),
		Link:      get(KeyLink),

		H1: get(KeyH1),
		H2: get(KeyH2),
		H3: get(KeyH3),
		H4: get(KeyH4),

		Paragraph:     get(KeyParagraph),
		Strong:        get(KeyStrong),
		CodeInline:    get(KeyCodeInline),
		Italic:        get(KeyItalic),
		Strikethrough: get(KeyStrikethrough),
		Highlight:     get(KeyHighlight),

		CodeBlock:    get(KeyCodeBlock),
		HR:           get(KeyHR),
		QuoteTip:     get(KeyQuoteTip),
		QuoteWarning: get(KeyQuoteWarning),
		QuoteNote:    get(KeyQuoteNote),
		QuoteInfo:    get(KeyQuoteInfo),
		QuoteDefault: get(KeyQuoteDefault),
		Details:      get(KeyDetails),
		Summary:      get(KeySummary),

		UL:            get(KeyUL),
		OL:            get(KeyOL),
		LI:            get(KeyLI),
		TaskChecked:   get(KeyTaskChecked),
		TaskUnchecked: get(KeyTaskUnchecked),

		Image:            get(KeyImage),
		ImagePlaceholder: get(KeyImagePlaceholder),
		Video:            get(KeyVideo),

		MathInline: get(KeyMathInline),
		MathBlock:  get(KeyMathBlock),

		HeaderStyle: get(KeyHeaderStyle),
		HeaderTitle: get(KeyHeaderTitle),

		FooterStyle: get(KeyFooterStyle),
		FooterText:  get(KeyFooterText),
	}

	dots, err := t.Dots()
	errs = multierr.Append(errs, err)
	if errs != nil {
		return nil, errs
	}
	s.HeaderDots = dots
	return s, nil
}

// Validate checks that every required key is present and well-typed.
func (t *Theme) Validate() error {
	_, err := t.Styles()
	return err
}
