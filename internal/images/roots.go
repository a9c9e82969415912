package images

import (
	"os"
	"path/filepath"

	"github.com/alnah/go-md2wx/internal/fileutil"
)

const (
	vaultMarker    = ".obsidian"
	maxVaultLevels = 10
)

// Attachment folders checked directly under a vault root.
var vaultFolders = []string{"attachments", "Attachments", "assets", "Assets", "media", "images"}

// Asset folders checked under the document directory and its parent.
var assetFolders = []string{"assets", "attachments", "images", "img", "附件"}

// FindVaultRoot walks up from dir, at most maxVaultLevels directories, looking
// for one that contains a .obsidian directory. Returns "" if none is found.
func FindVaultRoot(dir string) string {
	if dir == "" {
		return ""
	}
	current, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for range maxVaultLevels {
		if fileutil.DirExists(filepath.Join(current, vaultMarker)) {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return ""
}

// SearchRoots builds the ordered list of directories consulted when resolving
// an image: asset dirs, the document dir, the vault root and its attachment
// folders, then the conventional asset folders under the document dir and its
// parent. Only existing directories are kept, first occurrence wins.
func SearchRoots(docDir string, assetDirs []string, vaultRoot string) []string {
	candidates := make([]string, 0, len(assetDirs)+len(vaultFolders)+2*len(assetFolders)+2)
	candidates = append(candidates, assetDirs...)
	if docDir != "" {
		candidates = append(candidates, docDir)
	}
	if vaultRoot != "" {
		candidates = append(candidates, vaultRoot)
		for _, name := range vaultFolders {
			candidates = append(candidates, filepath.Join(vaultRoot, name))
		}
	}
	if docDir != "" {
		parent := filepath.Dir(docDir)
		for _, name := range assetFolders {
			candidates = append(candidates, filepath.Join(docDir, name), filepath.Join(parent, name))
		}
	}

	var (
		roots []string
		infos []os.FileInfo
	)
	seen := make(map[string]bool)
	for _, c := range candidates {
		abs, err := filepath.Abs(c)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true

		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		// Case-insensitive filesystems report attachments/ and Attachments/ as
		// the same directory.
		if containsSameFile(infos, info) {
			continue
		}
		roots = append(roots, abs)
		infos = append(infos, info)
	}
	return roots
}

func containsSameFile(infos []os.FileInfo, info os.FileInfo) bool {
	for _, other := range infos {
		if os.SameFile(other, info) {
			return true
		}
	}
	return false
}
