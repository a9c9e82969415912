package md2wx

import (
	"errors"

	"github.com/alnah/go-md2wx/internal/images"
	"github.com/alnah/go-md2wx/internal/theme"
)

// Sentinel errors for library operations.
var (
	// ErrConfiguration indicates a fatal configuration problem: an unknown,
	// unparsable or incomplete theme, an invalid theme directory, or an
	// unknown highlight style.
	ErrConfiguration = errors.New("configuration error")

	// ErrInputNotFound indicates the source document does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrInputRead indicates the source document exists but cannot be read.
	ErrInputRead = errors.New("failed to read input")

	// Snapshot errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrSnapshot       = errors.New("snapshot capture failed")

	// Non-fatal image errors, reported on ImageReference.Err.
	ErrImageNotFound = errors.New("image not found")
	ErrImageCopy     = errors.New("image copy failed")
)

// Theme error categories, re-exported so callers can tell theme failures
// apart without importing internal packages. Every one of them also matches
// ErrConfiguration.
var (
	ErrThemeNotFound    = errors.New("theme not found")
	ErrThemeInvalid     = errors.New("invalid theme")
	ErrInvalidThemePath = errors.New("invalid theme path")
)

// convertThemeError maps internal theme errors to public errors.
func convertThemeError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, theme.ErrThemeNotFound):
		return wrapError(err, ErrThemeNotFound, ErrConfiguration)
	case errors.Is(err, theme.ErrInvalidThemeName):
		return wrapError(err, ErrThemeNotFound, ErrConfiguration) // an invalid name cannot exist
	case errors.Is(err, theme.ErrThemeParse),
		errors.Is(err, theme.ErrMissingStyle),
		errors.Is(err, theme.ErrInvalidStyle):
		return wrapError(err, ErrThemeInvalid, ErrConfiguration)
	case errors.Is(err, theme.ErrInvalidBasePath),
		errors.Is(err, theme.ErrPathTraversal),
		errors.Is(err, theme.ErrThemeRead):
		return wrapError(err, ErrInvalidThemePath, ErrConfiguration)
	default:
		return wrapError(err, ErrConfiguration)
	}
}

// convertImageError maps internal image errors to public errors.
func convertImageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, images.ErrImageNotFound), errors.Is(err, images.ErrSearchLimit):
		return wrapError(err, ErrImageNotFound)
	case errors.Is(err, images.ErrImageCopy):
		return wrapError(err, ErrImageCopy)
	default:
		return err
	}
}

// wrapError creates an error that keeps the original message and matches
// each public sentinel with errors.Is.
func wrapError(original error, sentinels ...error) error {
	return &wrappedError{sentinels: sentinels, original: original}
}

type wrappedError struct {
	sentinels []error
	original  error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap exposes the public sentinels only; internal errors stay hidden.
func (e *wrappedError) Unwrap() []error {
	return e.sentinels
}
