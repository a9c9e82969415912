package theme

import (
	"fmt"
	"strings"
)

// ValidateName checks that a theme name is safe for use as a file stem.
// Returns ErrInvalidThemeName if the name is empty or contains path
// separators, dots, or NUL bytes.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidThemeName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidThemeName, name)
	}
	return nil
}
