package theme

import "errors"

// Sentinel errors for theme operations. All of them are configuration errors:
// a conversion cannot proceed once one is returned.
var (
	// ErrThemeNotFound indicates no loader has a theme with the requested name.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrThemeParse indicates the theme file is not a valid JSON/YAML mapping.
	ErrThemeParse = errors.New("failed to parse theme")

	// ErrMissingStyle indicates a required style key is absent from the theme.
	ErrMissingStyle = errors.New("required style missing")

	// ErrInvalidStyle indicates a key exists but holds the wrong type of value.
	ErrInvalidStyle = errors.New("invalid style value")

	// ErrInvalidThemeName indicates the name contains path separators or dots.
	ErrInvalidThemeName = errors.New("invalid theme name")

	// ErrInvalidBasePath indicates the custom theme directory is not usable.
	ErrInvalidBasePath = errors.New("invalid theme directory")

	// ErrThemeRead indicates an I/O error while reading a theme file.
	ErrThemeRead = errors.New("failed to read theme")

	// ErrPathTraversal indicates a theme path escaping the theme directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
