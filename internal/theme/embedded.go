package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed themes/*.json
var builtin embed.FS

// DefaultThemeName is the theme used when none is requested.
const DefaultThemeName = "vibelight"

// EmbeddedLoader serves the built-in themes compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader creates an EmbeddedLoader over the built-in themes.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: builtin}
}

// LoadTheme loads themes/{name}.json from the embedded filesystem.
func (e *EmbeddedLoader) LoadTheme(name string) ([]byte, string, error) {
	if err := ValidateName(name); err != nil {
		return nil, "", err
	}

	data, err := fs.ReadFile(e.fsys, "themes/"+name+".json")
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	return data, "embedded", nil
}

// ListThemes returns the built-in theme names.
func (e *EmbeddedLoader) ListThemes() ([]string, error) {
	entries, err := fs.ReadDir(e.fsys, "themes")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrThemeRead, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return names, nil
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
