package theme

import "errors"

// Resolver combines a custom directory with the embedded themes.
// A theme in the custom directory shadows the built-in theme of the same name.
type Resolver struct {
	custom   Loader // nil if no custom directory configured
	embedded Loader
}

// NewResolver creates a Resolver.
// If customDir is empty, only embedded themes are served.
// Returns ErrInvalidBasePath if customDir is set but unusable.
func NewResolver(customDir string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if customDir != "" {
		fsLoader, err := NewFilesystemLoader(customDir)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadTheme tries the custom directory first, then the embedded themes.
// Only "not found" falls through; parse, validation and I/O errors do not.
func (r *Resolver) LoadTheme(name string) ([]byte, string, error) {
	if r.custom == nil {
		return r.embedded.LoadTheme(name)
	}

	data, source, err := r.custom.LoadTheme(name)
	if err == nil {
		return data, source, nil
	}
	if !errors.Is(err, ErrThemeNotFound) {
		return nil, "", err
	}
	return r.embedded.LoadTheme(name)
}

// ListThemes returns the union of custom and embedded names, custom first.
func (r *Resolver) ListThemes() ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	add := func(l Loader) error {
		if l == nil {
			return nil
		}
		list, err := l.ListThemes()
		if err != nil {
			return err
		}
		for _, n := range list {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
		return nil
	}

	if err := add(r.custom); err != nil {
		return nil, err
	}
	if err := add(r.embedded); err != nil {
		return nil, err
	}
	return names, nil
}

// HasCustomDir reports whether a custom theme directory is configured.
func (r *Resolver) HasCustomDir() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
