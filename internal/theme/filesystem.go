package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// themeExtensions are tried in order when looking up {dir}/{name}.
var themeExtensions = []string{".json", ".yaml", ".yml"}

// FilesystemLoader loads themes from a directory on disk.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given directory.
// Returns ErrInvalidBasePath if the path is not a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks so containment checks compare real paths.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// LoadTheme looks for {basePath}/{name}.json, then .yaml, then .yml.
func (f *FilesystemLoader) LoadTheme(name string) ([]byte, string, error) {
	if err := ValidateName(name); err != nil {
		return nil, "", err
	}

	for _, ext := range themeExtensions {
		filePath := filepath.Join(f.basePath, name+ext)
		if err := f.verifyPathContainment(filePath); err != nil {
			return nil, "", err
		}

		data, err := os.ReadFile(filePath) // #nosec G304 -- path validated above
		if err == nil {
			return data, filePath, nil
		}
		if !os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %v", ErrThemeRead, err)
		}
	}
	return nil, "", fmt.Errorf("%w: %q in %s", ErrThemeNotFound, name, f.basePath)
}

// ListThemes returns the stems of all theme files in the directory.
func (f *FilesystemLoader) ListThemes() ([]string, error) {
	entries, err := os.ReadDir(f.basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrThemeRead, err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !isThemeExtension(ext) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), ext)
		if ValidateName(stem) != nil || seen[stem] {
			continue
		}
		seen[stem] = true
		names = append(names, stem)
	}
	return names, nil
}

// BasePath returns the resolved theme directory.
func (f *FilesystemLoader) BasePath() string {
	return f.basePath
}

func isThemeExtension(ext string) bool {
	for _, e := range themeExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// verifyPathContainment ensures the resolved file path stays within basePath,
// including through symlinks.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// A missing file cannot be resolved; the prefix check still applies.
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes theme directory", ErrPathTraversal)
	}
	return nil
}

// Compile-time interface check.
var _ Loader = (*FilesystemLoader)(nil)
