package md2wx

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultTheme is the built-in theme used when Input.Theme is empty.
const DefaultTheme = "vibelight"

// Input describes one conversion.
type Input struct {
	// Markdown is the document text. Empty content is valid and yields the
	// themed chrome only.
	Markdown string

	// SourceDir is the document's directory, the base for image lookups.
	// Empty means the current directory.
	SourceDir string

	// OutputDir receives the images/ directory with copied images. Required
	// when images are enabled.
	OutputDir string

	// Theme names the theme to apply. Empty means DefaultTheme.
	Theme string

	// AssetDirs are searched for images before any other location.
	AssetDirs []string

	// NoImages skips image resolution and renders every image as a themed
	// placeholder. Nothing is copied.
	NoImages bool
}

// Validate checks that the input can be converted.
func (in Input) Validate() error {
	if !in.NoImages && in.OutputDir == "" {
		return fmt.Errorf("%w: output directory required when images are enabled", ErrConfiguration)
	}
	return nil
}

func (in Input) themeName() string {
	if in.Theme == "" {
		return DefaultTheme
	}
	return in.Theme
}

// ImageReference records how one image token was handled.
type ImageReference struct {
	Index    int    // 1-based position in document order
	Token    string // original token text
	Wiki     bool   // written as ![[...]]
	Alt      string
	Source   string // resolved absolute source path, empty when not found
	Filename string // assigned name under images/, e.g. img_001.png
	Err      error  // non-fatal failure, nil when copied
}

// Copied reports whether the image was found and copied.
func (r ImageReference) Copied() bool {
	return r.Source != "" && r.Err == nil
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	HTML   []byte
	Theme  string           // name of the applied theme
	Images []ImageReference // one per image token, in document order

	// ImagesDir is where images were copied; empty in no-images mode.
	ImagesDir string
	// VaultRoot is the detected note vault directory, if any.
	VaultRoot string
	// SearchRoots are the directories searched for images, in priority
	// order; empty in no-images mode.
	SearchRoots []string
	// Summary is a one-line description of the extraction, empty when the
	// document had no image tokens.
	Summary string
}

// CopiedImages counts images that were copied.
func (r *ConvertResult) CopiedImages() int {
	n := 0
	for _, img := range r.Images {
		if img.Copied() {
			n++
		}
	}
	return n
}

// LoadDocument reads a document from disk into an Input with SourceDir set
// to the document's directory.
func LoadDocument(path string) (Input, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		if os.IsNotExist(err) {
			return Input{}, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return Input{}, fmt.Errorf("%w: %v", ErrInputRead, err)
	}
	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return Input{Markdown: string(data), SourceDir: dir}, nil
}
