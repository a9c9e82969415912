package theme

import (
	"fmt"
	"strings"

	"github.com/alnah/go-md2wx/internal/yamlutil"
)

// Theme is a parsed theme document. It is immutable after Parse.
type Theme struct {
	Name   string // Theme name (file stem)
	Source string // Where the theme was loaded from ("embedded" or a file path)
	data   map[string]any
}

// Meta holds the informational "meta" block some themes carry.
type Meta struct {
	Name        string
	Description string
	Version     string
}

// New creates a Theme from an already-decoded mapping.
func New(name string, data map[string]any) *Theme {
	if data == nil {
		data = map[string]any{}
	}
	return &Theme{Name: name, data: data}
}

// Parse decodes a JSON or YAML theme document.
// Returns ErrThemeParse if the document is not a mapping.
func Parse(name, source string, raw []byte) (*Theme, error) {
	data, err := yamlutil.UnmarshalMapping(raw)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrThemeParse, name, err)
	}
	t := New(name, data)
	t.Source = source
	return t, nil
}

// Lookup walks the dotted key path and returns the raw value.
func (t *Theme) Lookup(path string) (any, bool) {
	var cur any = t.data
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// lookupString returns the leaf at path as a string.
// A present leaf of another type is an ErrInvalidStyle.
func (t *Theme) lookupString(path string) (string, bool, error) {
	v, ok := t.Lookup(path)
	if !ok || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", true, fmt.Errorf("%w: %s in theme %q is %T, want string", ErrInvalidStyle, path, t.Name, v)
	}
	return s, true, nil
}

// Resolve returns the style string for a key path.
//
// Required keys that are absent return ErrMissingStyle. Optional keys fall
// back to their sibling keys in order, then to a fixed literal (which may be
// empty, meaning "render the bare tag").
func (t *Theme) Resolve(path string) (string, error) {
	s, ok, err := t.lookupString(path)
	if err != nil {
		return "", err
	}
	if ok {
		return s, nil
	}

	fb, optional := optionalKeys[path]
	if !optional {
		return "", fmt.Errorf("%w: %s in theme %q", ErrMissingStyle, path, t.Name)
	}
	for _, sibling := range fb.siblings {
		// Siblings may themselves be optional (highlight -> mark -> literal).
		if s, ok, err := t.lookupString(sibling); err != nil {
			return "", err
		} else if ok {
			return s, nil
		}
		if !IsOptional(sibling) {
			return "", fmt.Errorf("%w: %s (fallback for %s) in theme %q", ErrMissingStyle, sibling, path, t.Name)
		}
	}
	return fb.literal, nil
}

// Dots returns the header window decoration styles. The list is required
// but may be empty.
func (t *Theme) Dots() ([]string, error) {
	v, ok := t.Lookup(KeyHeaderDots)
	if !ok {
		return nil, fmt.Errorf("%w: %s in theme %q", ErrMissingStyle, KeyHeaderDots, t.Name)
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s in theme %q is %T, want list", ErrInvalidStyle, KeyHeaderDots, t.Name, v)
	}
	dots := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] in theme %q is %T, want string", ErrInvalidStyle, KeyHeaderDots, i, t.Name, item)
		}
		dots = append(dots, s)
	}
	return dots, nil
}

// Meta returns the theme's informational metadata. Missing fields are empty.
func (t *Theme) Meta() Meta {
	str := func(path string) string {
		s, _, _ := t.lookupString(path)
		return s
	}
	return Meta{
		Name:        str("meta.name"),
		Description: str("meta.description"),
		Version:     str("meta.version"),
	}
}
