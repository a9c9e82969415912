package md2wx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/maruel/natural"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// plainTheme carries every required key with short, recognizable values.
const plainTheme = `{
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

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

// themeDir returns a directory holding plain.json plus any extra themes.
func themeDir(t *testing.T, extra map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "plain.json"), []byte(plainTheme))
	for name, content := range extra {
		writeFile(t, filepath.Join(dir, name), []byte(content))
	}
	return dir
}

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()
	conv, err := NewConverter(append([]Option{WithThemeDir(themeDir(t, nil))}, opts...)...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	return conv
}

// ---------------------------------------------------------------------------
// TestConvert - Rendering
// ---------------------------------------------------------------------------

func TestConvert_HeadingAndParagraph(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	res, err := conv.Convert(context.Background(), Input{
		Markdown: "## Title\n\nSome **bold** text.",
		Theme:    "plain",
		NoImages: true,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	want := `<h2 style="H2">Title</h2>` + "\n" + `<p style="P">Some <strong style="S">bold</strong> text.</p>`
	if !strings.Contains(string(res.HTML), want) {
		t.Errorf("HTML missing %s\n%s", want, res.HTML)
	}
	if res.Theme != "plain" {
		t.Errorf("Theme = %q, want plain", res.Theme)
	}
}

func TestConvert_EmptyContent(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	res, err := conv.Convert(context.Background(), Input{Theme: "plain", NoImages: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	html := string(res.HTML)
	if got := strings.Count(html, `style="HW"`); got != 1 {
		t.Errorf("header count = %d, want 1", got)
	}
	if got := strings.Count(html, `style="FS"`); got != 1 {
		t.Errorf("footer count = %d, want 1", got)
	}
	if strings.Contains(html, `style="P"`) {
		t.Errorf("empty document rendered a paragraph:\n%s", html)
	}
}

func TestConvert_LineEndings(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	res, err := conv.Convert(context.Background(), Input{
		Markdown: "\uFEFF## A\r\n## B\r",
		Theme:    "plain",
		NoImages: true,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	html := string(res.HTML)
	for _, want := range []string{`<h2 style="H2">A</h2>`, `<h2 style="H2">B</h2>`} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %s", want)
		}
	}
}

func TestConvert_DefaultTheme(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	res, err := conv.Convert(context.Background(), Input{Markdown: "## Hi", NoImages: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Theme != DefaultTheme {
		t.Errorf("Theme = %q, want %q", res.Theme, DefaultTheme)
	}
	if !strings.Contains(string(res.HTML), `<section id="nice"`) {
		t.Errorf("HTML missing container:\n%s", res.HTML)
	}
}

func TestConvert_CustomThemeOverridesBuiltin(t *testing.T) {
	t.Parallel()

	dir := themeDir(t, map[string]string{DefaultTheme + ".json": plainTheme})
	conv, err := NewConverter(WithThemeDir(dir))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	res, err := conv.Convert(context.Background(), Input{Markdown: "## Hi", NoImages: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(string(res.HTML), `<h2 style="H2">Hi</h2>`) {
		t.Errorf("custom theme not applied:\n%s", res.HTML)
	}
}

func TestConvert_Highlighting(t *testing.T) {
	t.Parallel()

	md := "```python\nprint(1)\n```"

	plain := newTestConverter(t)
	res, err := plain.Convert(context.Background(), Input{Markdown: md, Theme: "plain", NoImages: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(string(res.HTML), `<pre style="CB"><code>print(1)</code></pre>`) {
		t.Errorf("escape-only code block missing:\n%s", res.HTML)
	}

	colored := newTestConverter(t, WithHighlightStyle("monokai"))
	res, err = colored.Convert(context.Background(), Input{Markdown: md, Theme: "plain", NoImages: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(string(res.HTML), `<pre style="CB"><code><span style=`) {
		t.Errorf("highlighted code block missing:\n%s", res.HTML)
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Images
// ---------------------------------------------------------------------------

func TestConvert_Images(t *testing.T) {
	t.Parallel()

	docDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(docDir, "assets", "a.png"), pngHeader)

	core, logs := observer.New(zapcore.WarnLevel)
	conv := newTestConverter(t, WithLogger(zap.New(core)))

	res, err := conv.Convert(context.Background(), Input{
		Markdown:  "![[photo.png]]\n\n![diagram](a.png)",
		SourceDir: docDir,
		OutputDir: outDir,
		Theme:     "plain",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if len(res.Images) != 2 {
		t.Fatalf("Images = %d, want 2", len(res.Images))
	}
	missing, found := res.Images[0], res.Images[1]
	if missing.Filename != "img_001.png" || !errors.Is(missing.Err, ErrImageNotFound) {
		t.Errorf("unresolved image = %+v", missing)
	}
	if !slices.Contains(res.SearchRoots, filepath.Join(docDir, "assets")) {
		t.Errorf("SearchRoots = %v, want the assets folder included", res.SearchRoots)
	}
	if !missing.Wiki || found.Wiki {
		t.Errorf("Wiki flags = %v, %v; want true, false", missing.Wiki, found.Wiki)
	}
	if found.Filename != "img_002.png" || !found.Copied() {
		t.Errorf("resolved image = %+v", found)
	}
	if res.CopiedImages() != 1 {
		t.Errorf("CopiedImages() = %d, want 1", res.CopiedImages())
	}

	copied, err := os.ReadFile(filepath.Join(outDir, "images", "img_002.png"))
	if err != nil || string(copied) != string(pngHeader) {
		t.Errorf("copied image = %v, %v", copied, err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "images", "img_001.png")); !os.IsNotExist(err) {
		t.Errorf("unresolved image was written: %v", err)
	}

	html := string(res.HTML)
	for _, want := range []string{`src="images/img_001.png" alt="photo.png"`, `src="images/img_002.png" alt="diagram"`} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %s", want)
		}
	}
	if !strings.HasPrefix(res.Summary, "Extracted 1 image(s) to ") {
		t.Errorf("Summary = %q", res.Summary)
	}
	if logs.FilterMessage("Image not found").Len() != 1 {
		t.Errorf("warnings = %v, want one Image not found", logs.All())
	}
}

func TestConvert_NoImages(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	conv := newTestConverter(t)
	res, err := conv.Convert(context.Background(), Input{
		Markdown:  "![[a.png|300]]\n\nText ![b](b.png) inline.",
		OutputDir: outDir,
		Theme:     "plain",
		NoImages:  true,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	html := string(res.HTML)
	for _, want := range []string{
		`<section style="IP">[Image: a.png]</section>`,
		`Text <section style="IP">[Image: b]</section> inline.`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %s\n%s", want, html)
		}
	}
	if strings.Contains(html, "<img") {
		t.Errorf("no-images mode rendered an img:\n%s", html)
	}
	if len(res.Images) != 0 || res.Summary != "" {
		t.Errorf("no-images result = %+v", res)
	}
	if _, err := os.Stat(filepath.Join(outDir, "images")); !os.IsNotExist(err) {
		t.Errorf("images directory created in no-images mode: %v", err)
	}
}

func TestConvert_NoImageTokensLeavesNoSummary(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	res, err := conv.Convert(context.Background(), Input{
		Markdown:  "plain text",
		OutputDir: t.TempDir(),
		Theme:     "plain",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Summary != "" {
		t.Errorf("Summary = %q, want empty", res.Summary)
	}
}

func TestConvert_EmptyWikiEmbed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		noImages bool
		want     string
	}{
		{"images", false, `<img src="images/img_001.png"`},
		{"no images", true, `<section style="IP">[Image: ]</section>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := newTestConverter(t)
			res, err := conv.Convert(context.Background(), Input{
				Markdown:  "![[]]",
				SourceDir: t.TempDir(),
				OutputDir: t.TempDir(),
				Theme:     "plain",
				NoImages:  tt.noImages,
			})
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			html := string(res.HTML)
			if strings.Count(html, tt.want) != 1 {
				t.Errorf("HTML should contain one %s:\n%s", tt.want, html)
			}
			if strings.Contains(html, "![[") {
				t.Errorf("raw embed left in HTML:\n%s", html)
			}
		})
	}
}

func TestConvert_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := newTestConverter(t)
	_, err := conv.Convert(ctx, Input{
		Markdown:  "![a](a.png)",
		OutputDir: t.TempDir(),
		Theme:     "plain",
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Errors
// ---------------------------------------------------------------------------

func TestConvert_ThemeErrors(t *testing.T) {
	t.Parallel()

	dir := themeDir(t, map[string]string{
		"broken.json":     `{not json`,
		"incomplete.json": `{"base": {"container": "C"}}`,
	})
	conv, err := NewConverter(WithThemeDir(dir))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	tests := []struct {
		name    string
		theme   string
		wantErr error
	}{
		{"unknown theme", "no-such-theme", ErrThemeNotFound},
		{"invalid name", "../etc", ErrThemeNotFound},
		{"unparsable theme", "broken", ErrThemeInvalid},
		{"missing required keys", "incomplete", ErrThemeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := conv.Convert(context.Background(), Input{Theme: tt.theme, NoImages: true})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("Convert() error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestConvert_MissingKeysReportedTogether(t *testing.T) {
	t.Parallel()

	dir := themeDir(t, map[string]string{"incomplete.json": `{"base": {"container": "C"}}`})
	conv, err := NewConverter(WithThemeDir(dir))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	err = conv.ValidateTheme("incomplete")
	for _, key := range []string{"base.link", "components.headings.h2", "components.footer.text"} {
		if err == nil || !strings.Contains(err.Error(), key) {
			t.Errorf("ValidateTheme() error = %v, want mention of %s", err, key)
		}
	}
}

func TestConvert_RequiresOutputDirForImages(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	_, err := conv.Convert(context.Background(), Input{Markdown: "x", Theme: "plain"})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("Convert() error = %v, want ErrConfiguration", err)
	}
}

func TestNewConverter_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing theme directory", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter(WithThemeDir(filepath.Join(t.TempDir(), "nope")))
		if !errors.Is(err, ErrInvalidThemePath) || !errors.Is(err, ErrConfiguration) {
			t.Errorf("NewConverter() error = %v, want ErrInvalidThemePath", err)
		}
	})

	t.Run("unknown highlight style", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter(WithHighlightStyle("no-such-style"))
		if !errors.Is(err, ErrConfiguration) {
			t.Errorf("NewConverter() error = %v, want ErrConfiguration", err)
		}
	})
}

func TestWithSearchLimits_PanicsOnNegative(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithSearchLimits(-1, 0) did not panic")
		}
	}()
	WithSearchLimits(-1, 0)
}

// ---------------------------------------------------------------------------
// TestThemes
// ---------------------------------------------------------------------------

func TestThemes(t *testing.T) {
	t.Parallel()

	dir := themeDir(t, map[string]string{
		"_schema.json": `{}`,
		"theme10.yaml": plainTheme,
		"theme2.yml":   plainTheme,
		"notes.txt":    "ignored",
	})
	conv, err := NewConverter(WithThemeDir(dir))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	names, err := conv.Themes()
	if err != nil {
		t.Fatalf("Themes() error = %v", err)
	}

	want := []string{"finance-professional", "ink-mono", "plain", "theme2", "theme10", "vibelight"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Themes() = %v, want %v", names, want)
	}
	if !sort.SliceIsSorted(names, func(i, j int) bool { return natural.Less(names[i], names[j]) }) {
		t.Errorf("Themes() not in natural order: %v", names)
	}
}

func TestBuiltinThemesConvert(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	names, err := conv.Themes()
	if err != nil {
		t.Fatalf("Themes() error = %v", err)
	}
	for _, name := range names {
		if err := conv.ValidateTheme(name); err != nil {
			t.Errorf("ValidateTheme(%q) error = %v", name, err)
		}
	}
}
