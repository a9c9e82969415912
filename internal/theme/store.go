package theme

import (
	"sort"
	"strings"
	"sync"

	"github.com/maruel/natural"
)

// Store caches parsed themes by name. Safe for concurrent use; a theme is
// loaded and parsed at most once per Store.
type Store struct {
	loader Loader

	mu    sync.Mutex
	cache map[string]*Theme
}

// NewStore creates a Store backed by loader.
func NewStore(loader Loader) *Store {
	return &Store{
		loader: loader,
		cache:  make(map[string]*Theme),
	}
}

// Load returns the named theme, loading and parsing it on first use.
// Failed loads are not cached.
func (s *Store) Load(name string) (*Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.cache[name]; ok {
		return t, nil
	}

	data, source, err := s.loader.LoadTheme(name)
	if err != nil {
		return nil, err
	}
	t, err := Parse(name, source, data)
	if err != nil {
		return nil, err
	}
	s.cache[name] = t
	return t, nil
}

// List returns available theme names in natural order ("theme2" before
// "theme10"). Names starting with "_" (schema files) are excluded.
func (s *Store) List() ([]string, error) {
	names, err := s.loader.ListThemes()
	if err != nil {
		return nil, err
	}

	filtered := names[:0:0]
	for _, n := range names {
		if !strings.HasPrefix(n, "_") {
			filtered = append(filtered, n)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return natural.Less(filtered[i], filtered[j])
	})
	return filtered, nil
}

// Cached reports how many themes are currently cached.
func (s *Store) Cached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}
