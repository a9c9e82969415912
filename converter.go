package md2wx

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-md2wx/internal/images"
	"github.com/alnah/go-md2wx/internal/pipeline"
	"github.com/alnah/go-md2wx/internal/theme"
)

// Converter orchestrates the markdown-to-HTML pipeline. It is safe for
// concurrent use: each conversion owns its image resolver, and the theme
// cache is shared.
type Converter struct {
	cfg         converterConfig
	log         *zap.Logger
	themes      *theme.Store
	highlighter *pipeline.Highlighter
}

// NewConverter creates a Converter. Returns an error wrapping
// ErrConfiguration if the theme directory or highlight style is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}

	resolver, err := theme.NewResolver(c.cfg.themeDir)
	if err != nil {
		return nil, convertThemeError(err)
	}
	c.themes = theme.NewStore(resolver)

	if c.cfg.highlightStyle != "" {
		h, err := pipeline.NewHighlighter(c.cfg.highlightStyle)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		c.highlighter = h
	}
	return c, nil
}

// Convert runs one conversion. Missing or uncopyable images are reported in
// the result but do not fail it; theme problems and cancellation do.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := input.themeName()
	styles, err := c.loadStyles(name)
	if err != nil {
		return nil, err
	}

	markdown := pipeline.Preprocess(input.Markdown)
	res := &ConvertResult{Theme: name}

	if input.NoImages {
		markdown = images.NormalizeWikiEmbeds(markdown)
	} else {
		resolver := images.New(images.Options{
			DocDir:     input.SourceDir,
			OutputDir:  input.OutputDir,
			AssetDirs:  input.AssetDirs,
			MaxDepth:   c.cfg.maxDepth,
			MaxEntries: c.cfg.maxEntries,
			Logger:     c.log,
		})
		markdown, err = resolver.Extract(ctx, markdown)
		if err != nil {
			return nil, err
		}
		res.Images = toImageReferences(resolver.References())
		res.ImagesDir = resolver.Summary().ImagesDir
		res.VaultRoot = resolver.VaultRoot()
		res.SearchRoots = resolver.Roots()
		if len(res.Images) > 0 {
			res.Summary = resolver.Summary().String()
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderer := pipeline.NewRenderer(styles, pipeline.RenderOptions{
		RealImages:  !input.NoImages,
		Highlighter: c.highlighter,
	})
	content := renderer.Render(pipeline.Parse(markdown))
	res.HTML = []byte(pipeline.Assemble(content, styles))

	c.log.Debug("Converted document",
		zap.String("theme", name),
		zap.Int("bytes", len(res.HTML)),
		zap.Int("images", len(res.Images)))
	return res, nil
}

// Themes returns the available theme names in natural order.
func (c *Converter) Themes() ([]string, error) {
	names, err := c.themes.List()
	if err != nil {
		return nil, convertThemeError(err)
	}
	return names, nil
}

// ValidateTheme loads and fully resolves a theme without converting.
func (c *Converter) ValidateTheme(name string) error {
	_, err := c.loadStyles(name)
	return err
}

func (c *Converter) loadStyles(name string) (*theme.Styles, error) {
	t, err := c.themes.Load(name)
	if err != nil {
		return nil, convertThemeError(err)
	}
	styles, err := t.Styles()
	if err != nil {
		return nil, convertThemeError(fmt.Errorf("theme %q: %w", name, err))
	}
	return styles, nil
}

func toImageReferences(refs []images.Reference) []ImageReference {
	out := make([]ImageReference, len(refs))
	for i, r := range refs {
		out[i] = ImageReference{
			Index:    r.Index,
			Token:    r.Token,
			Wiki:     r.Wiki,
			Alt:      r.Alt,
			Source:   r.Source,
			Filename: r.Filename,
			Err:      convertImageError(r.Err),
		}
	}
	return out
}
