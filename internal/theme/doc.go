// Package theme loads visual themes and resolves their style strings.
//
// # Theme Files
//
// A theme is a JSON (or YAML) object whose leaves are inline style
// declarations injected verbatim into style="..." attributes:
//
//	{
//	  "base": {"container": "...", "link": "..."},
//	  "components": {
//	    "headings": {"h2": "...", "h3": "..."},
//	    "header_window": {"style": "...", "title_style": "...", "dots": ["...", "..."]},
//	    ...
//	  }
//	}
//
// Keys are addressed by dotted path (components.headings.h2). Some keys are
// required; the rest fall back to a sibling key or a literal default (see
// Resolve). Themes are trusted configuration and are never sanitized.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in themes compiled into the binary
//	    ├── FilesystemLoader  - {dir}/{name}.json|.yaml|.yml
//	    └── Resolver          - custom directory first, embedded fallback
//
// Store caches parsed themes by name for the life of the process and is safe
// for concurrent use.
package theme
