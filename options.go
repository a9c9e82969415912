package md2wx

import "go.uber.org/zap"

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds options applied before the converter is built.
type converterConfig struct {
	themeDir       string
	highlightStyle string
	maxDepth       int
	maxEntries     int
}

// WithThemeDir adds a directory of custom themes. Themes found there take
// precedence over built-in themes of the same name.
func WithThemeDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.themeDir = dir
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHighlightStyle enables syntax highlighting of code blocks with the
// named chroma style. Empty keeps escape-only code bodies.
func WithHighlightStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = style
	}
}

// WithSearchLimits bounds the image subtree search. Zero keeps a default.
// Panics on negative values (programmer error).
func WithSearchLimits(maxDepth, maxEntries int) Option {
	if maxDepth < 0 || maxEntries < 0 {
		panic("md2wx: WithSearchLimits values must not be negative")
	}
	return func(c *Converter) {
		c.cfg.maxDepth = maxDepth
		c.cfg.maxEntries = maxEntries
	}
}
