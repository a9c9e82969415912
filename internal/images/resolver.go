package images

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"github.com/alnah/go-md2wx/internal/fileutil"
)

// DirName is the images directory created under the output directory.
const DirName = "images"

// wikiEmbed is the ![[...]] token shared by extraction and no-images
// normalization.
const wikiEmbed = `!\[\[(.*?)\]\]`

// tokenPattern matches both token forms so each match is one sequence slot.
// Group 1: wiki content. Group 2: standard alt. Group 3: standard path.
var tokenPattern = regexp.MustCompile(wikiEmbed + `|!\[([^\]]*)\]\(([^)]+)\)`)

// Options configures a Resolver.
type Options struct {
	DocDir     string   // directory of the source document
	OutputDir  string   // directory of the output HTML; images go in OutputDir/images
	AssetDirs  []string // extra search roots, consulted first
	MaxDepth   int      // subtree walk depth; 0 means DefaultMaxDepth
	MaxEntries int      // subtree walk entries; 0 means DefaultMaxEntries
	Logger     *zap.Logger
}

// Resolver resolves and copies the images of one document. It owns the
// sequence counter and the images directory for its run and is not safe for
// concurrent use.
type Resolver struct {
	docDir     string
	imagesDir  string
	vaultRoot  string
	roots      []string
	maxDepth   int
	maxEntries int
	log        *zap.Logger

	counter int
	refs    []Reference
	indexes map[string]*treeIndex
	dirMade bool
}

// New builds a Resolver and its search roots.
func New(opts Options) *Resolver {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	docDir := opts.DocDir
	if docDir != "" {
		if abs, err := filepath.Abs(docDir); err == nil {
			docDir = abs
		}
	}

	r := &Resolver{
		docDir:     docDir,
		imagesDir:  filepath.Join(opts.OutputDir, DirName),
		vaultRoot:  FindVaultRoot(docDir),
		maxDepth:   opts.MaxDepth,
		maxEntries: opts.MaxEntries,
		log:        log.Named("images"),
		indexes:    make(map[string]*treeIndex),
	}
	if r.maxDepth <= 0 {
		r.maxDepth = DefaultMaxDepth
	}
	if r.maxEntries <= 0 {
		r.maxEntries = DefaultMaxEntries
	}
	if r.vaultRoot != "" {
		r.log.Info("Detected vault root", zap.String("root", r.vaultRoot))
	}
	r.roots = SearchRoots(r.docDir, opts.AssetDirs, r.vaultRoot)
	r.log.Debug("Image search roots", zap.Strings("roots", r.roots))
	return r
}

// Extract rewrites every image token in markdown to images/img_NNN.ext and
// copies resolved sources. Missing or uncopyable images are recorded and
// logged but do not fail the run; only context cancellation does.
func (r *Resolver) Extract(ctx context.Context, markdown string) (string, error) {
	matches := tokenPattern.FindAllStringSubmatchIndex(markdown, -1)
	if len(matches) == 0 {
		return markdown, nil
	}

	var b strings.Builder
	b.Grow(len(markdown))
	last := 0
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("extracting images: %w", err)
		}

		ref := parseToken(markdown, m)
		if err := r.process(ctx, &ref); err != nil {
			return "", fmt.Errorf("extracting images: %w", err)
		}
		r.refs = append(r.refs, ref)

		b.WriteString(markdown[last:m[0]])
		b.WriteString("![" + ref.Alt + "](" + DirName + "/" + ref.Filename + ")")
		last = m[1]
	}
	b.WriteString(markdown[last:])
	return b.String(), nil
}

// parseToken decodes one match of tokenPattern.
func parseToken(src string, m []int) Reference {
	ref := Reference{Token: src[m[0]:m[1]]}
	if m[2] >= 0 {
		content := src[m[2]:m[3]]
		ref.Wiki = true
		name, alias, hasAlias := strings.Cut(content, "|")
		ref.Target = strings.TrimSpace(name)
		if hasAlias {
			ref.Alt = alias
		} else {
			ref.Alt = content
		}
		return ref
	}

	ref.Alt = src[m[4]:m[5]]
	raw := src[m[6]:m[7]]
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	ref.Target = raw
	return ref
}

// process assigns the next filename to ref and copies its source if found.
func (r *Resolver) process(ctx context.Context, ref *Reference) error {
	source, findErr := r.find(ctx, ref.Target)
	if errors.Is(findErr, context.Canceled) || errors.Is(findErr, context.DeadlineExceeded) {
		return findErr
	}

	ext := Extension(ref.Target)
	if findErr == nil {
		ref.Source = source
		ext = Extension(source)
	}

	r.counter++
	ref.Index = r.counter
	ref.Filename = fmt.Sprintf("img_%03d%s", r.counter, ext)

	if findErr != nil {
		ref.Err = findErr
		r.log.Warn("Image not found",
			zap.String("token", ref.Target),
			zap.String("file", ref.Filename),
			zap.Int("roots", len(r.roots)),
			zap.Error(findErr))
		return nil
	}

	r.sniff(source, ext)

	if err := r.copy(source, ref.Filename); err != nil {
		ref.Err = fmt.Errorf("%w: %s: %v", ErrImageCopy, source, err)
		r.log.Warn("Image copy failed",
			zap.String("token", ref.Target),
			zap.String("file", ref.Filename),
			zap.String("source", source),
			zap.Error(err))
		return nil
	}

	r.log.Info("Image copied",
		zap.String("token", ref.Target),
		zap.String("source", filepath.Base(source)),
		zap.String("file", ref.Filename))
	return nil
}

// find resolves target: as given, relative to the document, then per root as
// root/target, root/basename and finally by subtree search.
func (r *Resolver) find(ctx context.Context, target string) (string, error) {
	if target == "" || fileutil.IsURL(target) {
		return "", fmt.Errorf("%w: %q", ErrImageNotFound, target)
	}

	if fileutil.FileExists(target) {
		return absPath(target), nil
	}
	if r.docDir != "" {
		if p := filepath.Join(r.docDir, target); fileutil.FileExists(p) {
			return p, nil
		}
	}

	base := filepath.Base(filepath.FromSlash(target))
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("%w: %q", ErrImageNotFound, target)
	}

	limited := false
	for _, root := range r.roots {
		if p := filepath.Join(root, target); fileutil.FileExists(p) {
			return p, nil
		}
		if p := filepath.Join(root, base); fileutil.FileExists(p) {
			return p, nil
		}

		ix, err := r.index(ctx, root)
		if err != nil {
			return "", err
		}
		p, err := ix.lookup(base)
		switch {
		case err == nil:
			return p, nil
		case errors.Is(err, ErrSearchLimit):
			limited = true
		}
	}

	if limited {
		return "", fmt.Errorf("%w: %q: %w", ErrImageNotFound, target, ErrSearchLimit)
	}
	return "", fmt.Errorf("%w: %q", ErrImageNotFound, target)
}

// index returns the cached subtree index for root, building it on first use.
func (r *Resolver) index(ctx context.Context, root string) (*treeIndex, error) {
	if ix, ok := r.indexes[root]; ok {
		return ix, nil
	}
	ix, err := indexTree(ctx, root, r.maxDepth, r.maxEntries)
	if err != nil {
		return nil, err
	}
	if ix.truncated {
		r.log.Debug("Image search limit reached",
			zap.String("root", root),
			zap.Int("maxEntries", r.maxEntries))
	}
	r.indexes[root] = ix
	return ix, nil
}

// copy writes source to imagesDir/name, creating imagesDir on first use.
func (r *Resolver) copy(source, name string) error {
	if !r.dirMade {
		if err := os.MkdirAll(r.imagesDir, 0o750); err != nil {
			return fmt.Errorf("creating %s: %w", r.imagesDir, err)
		}
		r.dirMade = true
	}
	return fileutil.CopyFile(source, filepath.Join(r.imagesDir, name))
}

// sniff logs when the file content disagrees with its extension. Naming is
// not affected.
func (r *Resolver) sniff(source, ext string) {
	kind, err := filetype.MatchFile(source)
	if err != nil || kind == filetype.Unknown || kind.Extension == "" {
		return
	}
	if !sameImageType("."+kind.Extension, ext) {
		r.log.Debug("Image content does not match extension",
			zap.String("source", source),
			zap.String("extension", ext),
			zap.String("detected", kind.MIME.Value))
	}
}

// References returns the per-token records in document order.
func (r *Resolver) References() []Reference {
	out := make([]Reference, len(r.refs))
	copy(out, r.refs)
	return out
}

// Roots returns the search roots in priority order.
func (r *Resolver) Roots() []string {
	out := make([]string, len(r.roots))
	copy(out, r.roots)
	return out
}

// VaultRoot returns the detected vault root, or "".
func (r *Resolver) VaultRoot() string { return r.vaultRoot }

// Summary reports how many images were copied and where.
func (r *Resolver) Summary() Summary {
	s := Summary{Total: len(r.refs), ImagesDir: r.imagesDir, VaultRoot: r.vaultRoot}
	for _, ref := range r.refs {
		if ref.Copied() {
			s.Copied++
		}
	}
	return s
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
