package images

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Subtree walk ceilings.
const (
	DefaultMaxDepth   = 12
	DefaultMaxEntries = 50_000
)

// treeIndex maps NFC-normalized file names to the shallowest path holding
// that name under one root.
type treeIndex struct {
	files     map[string]string
	truncated bool // walk stopped at maxEntries
}

// lookup returns the indexed path for name. A miss in a truncated index is
// ErrSearchLimit rather than errNotInTree.
func (ix *treeIndex) lookup(name string) (string, error) {
	if p, ok := ix.files[norm.NFC.String(name)]; ok {
		return p, nil
	}
	if ix.truncated {
		return "", ErrSearchLimit
	}
	return "", errNotInTree
}

// indexTree walks root breadth-first up to maxDepth directory levels and
// maxEntries visited entries. Hidden directories are skipped and symlinked
// directories are not followed. Unreadable directories are skipped. The only
// error returned is the context's.
func indexTree(ctx context.Context, root string, maxDepth, maxEntries int) (*treeIndex, error) {
	type dirNode struct {
		path  string
		depth int
	}

	ix := &treeIndex{files: make(map[string]string)}
	queue := []dirNode{{path: root}}
	visited := 0

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		node := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(node.path)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			visited++
			if visited > maxEntries {
				ix.truncated = true
				return ix, nil
			}

			name := entry.Name()
			fullPath := filepath.Join(node.path, name)

			switch {
			case entry.IsDir():
				if strings.HasPrefix(name, ".") || node.depth+1 > maxDepth {
					continue
				}
				queue = append(queue, dirNode{path: fullPath, depth: node.depth + 1})
			case entry.Type()&os.ModeSymlink != 0:
				// Index symlinked files, never descend into symlinked dirs.
				if info, err := os.Stat(fullPath); err != nil || !info.Mode().IsRegular() {
					continue
				}
				ix.add(name, fullPath)
			case entry.Type().IsRegular():
				ix.add(name, fullPath)
			}
		}
	}
	return ix, nil
}

func (ix *treeIndex) add(name, path string) {
	key := norm.NFC.String(name)
	if _, exists := ix.files[key]; !exists {
		ix.files[key] = path
	}
}
