package images

import (
	"fmt"
	"path/filepath"
)

// Reference records how one image token was handled.
type Reference struct {
	Index    int    // 1-based position in document order
	Token    string // token as written in the document
	Wiki     bool   // ![[...]] form
	Alt      string // alt text written into the rewritten token
	Target   string // name or path used for resolution
	Source   string // resolved absolute source path; empty when unresolved
	Filename string // assigned output name, e.g. img_001.png
	Err      error  // nil, or wraps ErrImageNotFound / ErrImageCopy
}

// Resolved reports whether a source file was found.
func (r Reference) Resolved() bool { return r.Source != "" }

// Copied reports whether the source was copied into the images directory.
func (r Reference) Copied() bool { return r.Source != "" && r.Err == nil }

// Summary describes the outcome of one extraction run.
type Summary struct {
	Copied    int
	Total     int
	ImagesDir string
	VaultRoot string // absolute path; empty when no vault was detected
}

// String renders the summary line printed after a conversion.
func (s Summary) String() string {
	msg := fmt.Sprintf("Extracted %d image(s) to %s%c", s.Copied, s.ImagesDir, filepath.Separator)
	if s.VaultRoot != "" {
		msg += fmt.Sprintf(" [Vault Root: %s]", filepath.Base(s.VaultRoot))
	}
	return msg
}
