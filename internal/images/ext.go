package images

import (
	"path/filepath"
	"strings"
)

// DefaultExtension is used when a path has no recognized image extension.
const DefaultExtension = ".png"

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// Extension returns the lowercased extension of path if it is a recognized
// image type, and DefaultExtension otherwise. It only inspects the string.
func Extension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if allowedExtensions[ext] {
		return ext
	}
	return DefaultExtension
}

// sameImageType reports whether two extensions name the same format.
func sameImageType(a, b string) bool {
	canon := func(ext string) string {
		if ext == ".jpeg" {
			return ".jpg"
		}
		return ext
	}
	return canon(a) == canon(b)
}
