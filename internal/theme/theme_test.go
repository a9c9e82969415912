package theme

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

// minimalTheme contains only the required keys.
const minimalTheme = `{
  "base": {"container": "C", "link": "L"},
  "components": {
    "headings": {"h2": "H2", "h3": "H3"},
    "text": {"paragraph": "P", "strong": "S", "code_inline": "CI"},
    "blocks": {"code_block": "CB", "hr": "HR", "quote_tip": "QT"},
    "lists": {"li": "LI", "task_checked": "TC", "task_unchecked": "TU"},
    "media": {"image_placeholder": "IP"},
    "math": {"inline": "MI", "block": "MB"},
    "header_window": {"style": "HW", "title_style": "HT", "dots": ["D1", "D2"]},
    "footer": {"style": "FS", "text": "FT"}
  }
}`

func mustParse(t *testing.T, raw string) *Theme {
	t.Helper()
	th, err := Parse("test", "inline", []byte(raw))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return th
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("json document", func(t *testing.T) {
		t.Parallel()

		th := mustParse(t, minimalTheme)
		if th.Name != "test" || th.Source != "inline" {
			t.Errorf("Parse() = {%q, %q}, want {test, inline}", th.Name, th.Source)
		}
	})

	t.Run("yaml document", func(t *testing.T) {
		t.Parallel()

		th := mustParse(t, "base:\n  container: \"color: red;\"\n")
		got, ok := th.Lookup(KeyContainer)
		if !ok || got != "color: red;" {
			t.Errorf("Lookup(%s) = %v, %v; want color: red;", KeyContainer, got, ok)
		}
	})

	t.Run("list root is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Parse("bad", "inline", []byte(`["a", "b"]`))
		if !errors.Is(err, ErrThemeParse) {
			t.Errorf("Parse() error = %v, want ErrThemeParse", err)
		}
	})

	t.Run("syntax error is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Parse("bad", "inline", []byte(`{"base": `))
		if !errors.Is(err, ErrThemeParse) {
			t.Errorf("Parse() error = %v, want ErrThemeParse", err)
		}
	})
}

func TestTheme_Resolve(t *testing.T) {
	t.Parallel()

	minimal := mustParse(t, minimalTheme)

	tests := []struct {
		name  string
		theme string
		key   string
		want  string
	}{
		{"required key present", minimalTheme, KeyH2, "H2"},
		{"h1 falls back to h2", minimalTheme, KeyH1, "H2"},
		{"h4 falls back to empty", minimalTheme, KeyH4, ""},
		{"italic literal", minimalTheme, KeyItalic, DefaultItalic},
		{"strikethrough literal", minimalTheme, KeyStrikethrough, DefaultStrikethrough},
		{"highlight literal", minimalTheme, KeyHighlight, DefaultHighlight},
		{"quote_warning falls back to quote_tip", minimalTheme, KeyQuoteWarning, "QT"},
		{"quote_note falls back to quote_tip", minimalTheme, KeyQuoteNote, "QT"},
		{"quote_info falls back to quote_tip", minimalTheme, KeyQuoteInfo, "QT"},
		{"quote_default falls back to quote_tip", minimalTheme, KeyQuoteDefault, "QT"},
		{"details empty", minimalTheme, KeyDetails, ""},
		{"summary empty", minimalTheme, KeySummary, ""},
		{"ul empty", minimalTheme, KeyUL, ""},
		{"ol empty", minimalTheme, KeyOL, ""},
		{"image literal", minimalTheme, KeyImage, DefaultImage},
		{"video literal", minimalTheme, KeyVideo, DefaultVideo},
		{
			"highlight falls back to mark",
			`{"components": {"text": {"mark": "MARK"}}}`,
			KeyHighlight, "MARK",
		},
		{
			"explicit highlight wins over mark",
			`{"components": {"text": {"mark": "MARK", "highlight": "HL"}}}`,
			KeyHighlight, "HL",
		},
		{
			"explicit h1 wins over h2",
			`{"components": {"headings": {"h1": "ONE", "h2": "TWO"}}}`,
			KeyH1, "ONE",
		},
		{
			"empty string is a present value",
			`{"components": {"headings": {"h1": "", "h2": "TWO"}}}`,
			KeyH1, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			th := minimal
			if tt.theme != minimalTheme {
				th = mustParse(t, tt.theme)
			}
			got, err := th.Resolve(tt.key)
			if err != nil {
				t.Fatalf("Resolve(%s) error = %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%s) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestTheme_Resolve_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing required key", func(t *testing.T) {
		t.Parallel()

		th := mustParse(t, `{"base": {"link": "L"}}`)
		_, err := th.Resolve(KeyContainer)
		if !errors.Is(err, ErrMissingStyle) {
			t.Errorf("Resolve() error = %v, want ErrMissingStyle", err)
		}
		if !strings.Contains(err.Error(), KeyContainer) {
			t.Errorf("error %q should name the key", err)
		}
	})

	t.Run("h1 without h2 is missing h2", func(t *testing.T) {
		t.Parallel()

		th := mustParse(t, `{}`)
		_, err := th.Resolve(KeyH1)
		if !errors.Is(err, ErrMissingStyle) {
			t.Errorf("Resolve(h1) error = %v, want ErrMissingStyle", err)
		}
	})

	t.Run("non-string leaf", func(t *testing.T) {
		t.Parallel()

		th := mustParse(t, `{"base": {"container": 42}}`)
		_, err := th.Resolve(KeyContainer)
		if !errors.Is(err, ErrInvalidStyle) {
			t.Errorf("Resolve() error = %v, want ErrInvalidStyle", err)
		}
	})

	t.Run("intermediate non-mapping", func(t *testing.T) {
		t.Parallel()

		th := mustParse(t, `{"base": "flat"}`)
		_, err := th.Resolve(KeyContainer)
		if !errors.Is(err, ErrMissingStyle) {
			t.Errorf("Resolve() error = %v, want ErrMissingStyle", err)
		}
	})
}

func TestTheme_Dots(t *testing.T) {
	t.Parallel()

	t.Run("returns dots in order", func(t *testing.T) {
		t.Parallel()

		dots, err := mustParse(t, minimalTheme).Dots()
		if err != nil {
			t.Fatalf("Dots() error = %v", err)
		}
		if len(dots) != 2 || dots[0] != "D1" || dots[1] != "D2" {
			t.Errorf("Dots() = %v, want [D1 D2]", dots)
		}
	})

	t.Run("empty list is allowed", func(t *testing.T) {
		t.Parallel()

		th := mustParse(t, `{"components": {"header_window": {"dots": []}}}`)
		dots, err := th.Dots()
		if err != nil {
			t.Fatalf("Dots() error = %v", err)
		}
		if len(dots) != 0 {
			t.Errorf("Dots() = %v, want empty", dots)
		}
	})

	t.Run("missing list", func(t *testing.T) {
		t.Parallel()

		_, err := mustParse(t, `{}`).Dots()
		if !errors.Is(err, ErrMissingStyle) {
			t.Errorf("Dots() error = %v, want ErrMissingStyle", err)
		}
	})

	t.Run("non-list value", func(t *testing.T) {
		t.Parallel()

		th := mustParse(t, `{"components": {"header_window": {"dots": "red"}}}`)
		_, err := th.Dots()
		if !errors.Is(err, ErrInvalidStyle) {
			t.Errorf("Dots() error = %v, want ErrInvalidStyle", err)
		}
	})

	t.Run("non-string item", func(t *testing.T) {
		t.Parallel()

		th := mustParse(t, `{"components": {"header_window": {"dots": ["a", 1]}}}`)
		_, err := th.Dots()
		if !errors.Is(err, ErrInvalidStyle) {
			t.Errorf("Dots() error = %v, want ErrInvalidStyle", err)
		}
	})
}

func TestTheme_Styles(t *testing.T) {
	t.Parallel()

	t.Run("minimal theme resolves", func(t *testing.T) {
		t.Parallel()

		s, err := mustParse(t, minimalTheme).Styles()
		if err != nil {
			t.Fatalf("Styles() error = %v", err)
		}
		if s.Container != "C" || s.H1 != "H2" || s.QuoteWarning != "QT" || s.H4 != "" {
			t.Errorf("Styles() resolved unexpected values: %+v", s)
		}
		if len(s.HeaderDots) != 2 {
			t.Errorf("HeaderDots = %v, want 2 entries", s.HeaderDots)
		}
	})

	t.Run("reports every missing key", func(t *testing.T) {
		t.Parallel()

		_, err := mustParse(t, `{"base": {"container": "C"}}`).Styles()
		if !errors.Is(err, ErrMissingStyle) {
			t.Fatalf("Styles() error = %v, want ErrMissingStyle", err)
		}
		// link, h2, h3, paragraph, strong, code_inline, code_block, hr,
		// quote_tip, li, task_checked, task_unchecked, image_placeholder,
		// math inline/block, header style/title/dots, footer style/text.
		if got := len(multierr.Errors(err)); got < 19 {
			t.Errorf("Styles() reported %d errors, want at least 19", got)
		}
	})
}

func TestTheme_Meta(t *testing.T) {
	t.Parallel()

	th := mustParse(t, `{"meta": {"name": "Demo", "description": "d", "version": "1.0"}}`)
	got := th.Meta()
	want := Meta{Name: "Demo", Description: "d", Version: "1.0"}
	if got != want {
		t.Errorf("Meta() = %+v, want %+v", got, want)
	}

	if empty := mustParse(t, `{}`).Meta(); empty != (Meta{}) {
		t.Errorf("Meta() on empty theme = %+v, want zero", empty)
	}
}

func TestIsOptional(t *testing.T) {
	t.Parallel()

	for _, key := range []string{KeyH1, KeyH4, KeyItalic, KeyHighlight, KeyDetails, KeyUL, KeyImage, KeyVideo} {
		if !IsOptional(key) {
			t.Errorf("IsOptional(%s) = false, want true", key)
		}
	}
	for _, key := range []string{KeyContainer, KeyH2, KeyQuoteTip, KeyLI, KeyImagePlaceholder, KeyHeaderDots, KeyFooterText} {
		if IsOptional(key) {
			t.Errorf("IsOptional(%s) = true, want false", key)
		}
	}
}
