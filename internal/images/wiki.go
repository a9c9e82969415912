package images

import (
	"regexp"
	"strings"
)

var wikiEmbedPattern = regexp.MustCompile(wikiEmbed)

// emptyEmbedPath stands in for the path of ![[]] so it still renders as a
// placeholder.
const emptyEmbedPath = "#"

// NormalizeWikiEmbeds rewrites ![[name]] and ![[name|size]] into the standard
// ![name](name) form without resolving anything. It is used when images are
// rendered as placeholders.
func NormalizeWikiEmbeds(markdown string) string {
	return wikiEmbedPattern.ReplaceAllStringFunc(markdown, func(token string) string {
		content := wikiEmbedPattern.FindStringSubmatch(token)[1]
		name, _, _ := strings.Cut(content, "|")
		name = strings.TrimSpace(name)
		if name == "" {
			return "![](" + emptyEmbedPath + ")"
		}
		return "![" + name + "](" + name + ")"
	})
}
