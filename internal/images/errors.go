package images

import "errors"

// Sentinel errors recorded on a Reference. None of them abort a conversion.
var (
	// ErrImageNotFound indicates no search root holds the referenced file.
	ErrImageNotFound = errors.New("image not found")

	// ErrImageCopy indicates the source was found but could not be copied.
	ErrImageCopy = errors.New("image copy failed")

	// ErrSearchLimit indicates a subtree walk stopped at its entry ceiling
	// before the file was found; a deeper copy may exist.
	ErrSearchLimit = errors.New("image search limit reached")
)

// errNotInTree is returned by a complete subtree index that lacks the name.
var errNotInTree = errors.New("not in tree")
