package theme

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestResolver_LoadTheme(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		r, err := NewResolver("")
		if err != nil {
			t.Fatalf("NewResolver() error = %v", err)
		}
		if r.HasCustomDir() {
			t.Error("HasCustomDir() = true, want false")
		}
		_, source, err := r.LoadTheme(DefaultThemeName)
		if err != nil {
			t.Fatalf("LoadTheme() error = %v", err)
		}
		if source != "embedded" {
			t.Errorf("source = %q, want embedded", source)
		}
	})

	t.Run("custom shadows embedded", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, DefaultThemeName+".json"), minimalTheme)

		r, err := NewResolver(dir)
		if err != nil {
			t.Fatalf("NewResolver() error = %v", err)
		}
		_, source, err := r.LoadTheme(DefaultThemeName)
		if err != nil {
			t.Fatalf("LoadTheme() error = %v", err)
		}
		if source == "embedded" {
			t.Error("custom theme should shadow the embedded one")
		}
	})

	t.Run("falls back to embedded", func(t *testing.T) {
		t.Parallel()

		r, _ := NewResolver(t.TempDir())
		_, source, err := r.LoadTheme("ink-mono")
		if err != nil {
			t.Fatalf("LoadTheme() error = %v", err)
		}
		if source != "embedded" {
			t.Errorf("source = %q, want embedded", source)
		}
	})

	t.Run("invalid name does not fall through", func(t *testing.T) {
		t.Parallel()

		r, _ := NewResolver(t.TempDir())
		_, _, err := r.LoadTheme("a/b")
		if !errors.Is(err, ErrInvalidThemeName) {
			t.Errorf("LoadTheme() error = %v, want ErrInvalidThemeName", err)
		}
	})

	t.Run("not found anywhere", func(t *testing.T) {
		t.Parallel()

		r, _ := NewResolver(t.TempDir())
		_, _, err := r.LoadTheme("nonexistent")
		if !errors.Is(err, ErrThemeNotFound) {
			t.Errorf("LoadTheme() error = %v, want ErrThemeNotFound", err)
		}
	})

	t.Run("bad custom dir", func(t *testing.T) {
		t.Parallel()

		_, err := NewResolver("/nonexistent/themes/xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestResolver_ListThemes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mine.json"), `{}`)
	writeFile(t, filepath.Join(dir, DefaultThemeName+".json"), `{}`)

	r, _ := NewResolver(dir)
	names, err := r.ListThemes()
	if err != nil {
		t.Fatalf("ListThemes() error = %v", err)
	}

	count := make(map[string]int)
	for _, n := range names {
		count[n]++
	}
	if count["mine"] != 1 {
		t.Errorf("ListThemes() missing custom theme: %v", names)
	}
	if count[DefaultThemeName] != 1 {
		t.Errorf("ListThemes() should list %q exactly once: %v", DefaultThemeName, names)
	}
	if count["ink-mono"] != 1 {
		t.Errorf("ListThemes() missing embedded theme: %v", names)
	}
}
