package theme

// Loader defines the contract for fetching raw theme documents.
// Implementations may read from embedded assets, a directory, or elsewhere.
type Loader interface {
	// LoadTheme returns the raw document and a description of its source.
	// Returns ErrThemeNotFound if the theme doesn't exist.
	// Returns ErrInvalidThemeName if the name contains invalid characters.
	LoadTheme(name string) (data []byte, source string, err error)

	// ListThemes returns the names of all themes this loader can serve.
	ListThemes() ([]string, error)
}
