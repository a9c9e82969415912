// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2wx/internal/fileutil"
)

// userConfigMarker identifies the per-user config directory in searched paths.
const userConfigMarker = ".config/go-md2wx"

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciEnvVars are set by the CI systems we know about.
var ciEnvVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// ForBrowserConnect returns hints for PNG capture failures. Sandboxing is
// the usual culprit in CI and containers, a missing Chrome everywhere else.
func ForBrowserConnect() string {
	var hints []string

	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

func inCI() bool {
	for _, key := range ciEnvVars {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// ForTimeout returns a hint about increasing the snapshot timeout.
func ForTimeout() string {
	return format("for long previews, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2wx/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, userConfigMarker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForThemeNotFound lists the themes that can be used instead.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return format("use --theme-dir to point at a directory of theme files")
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForImageNotFound suggests where missing images can be looked up.
func ForImageNotFound(searchedRoots []string) string {
	hint := "use --assets to add attachment folders"
	if len(searchedRoots) > 0 {
		hint += " (searched: " + strings.Join(searchedRoots, ", ") + ")"
	}
	return format(hint)
}

// ForNoImages suggests skipping image handling altogether.
func ForNoImages() string {
	return format("use --no-images to keep image embeds as placeholders")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
