package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	md2wx "github.com/alnah/go-md2wx"
	"github.com/alnah/go-md2wx/internal/hints"
)

//go:embed sample/preview.md
var previewMarkdown string

// Preview defaults.
const (
	defaultTimeout  = md2wx.DefaultSnapshotTimeout
	defaultWidth    = md2wx.DefaultSnapshotWidth
	previewHTMLName = "preview.html"
	previewPNGName  = "preview.png"
)

// Snapshotter captures converted HTML as PNG.
type Snapshotter interface {
	Snapshot(ctx context.Context, fragment []byte, baseDir string) ([]byte, error)
}

// Compile-time interface implementation check.
var _ Snapshotter = (*md2wx.Snapshotter)(nil)

// Pool abstracts snapshot pool operations for testability.
type Pool interface {
	Acquire() Snapshotter
	Release(Snapshotter)
	Size() int
}

// poolAdapter exposes a *md2wx.SnapshotPool through Pool.
type poolAdapter struct {
	pool *md2wx.SnapshotPool
}

func (a *poolAdapter) Acquire() Snapshotter { return a.pool.Acquire() }

func (a *poolAdapter) Release(s Snapshotter) {
	sn, ok := s.(*md2wx.Snapshotter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", s))
	}
	a.pool.Release(sn)
}

func (a *poolAdapter) Size() int { return a.pool.Size() }

// PreviewResult holds the outcome for one theme.
type PreviewResult struct {
	Theme    string
	Dir      string
	Err      error
	Duration time.Duration
}

// runPreviewsCommand parses previews flags, sizes the worker pool, and
// renders every theme.
func runPreviewsCommand(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: previews takes no arguments, got %q", ErrUsage, positional[0])
	}

	log := newLogger(env.Stdout, env.Stderr, flags.common.verbose, flags.common.quiet)
	defer func() { _ = log.Sync() }()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	undo, _ := maxprocs.Set(maxprocs.Logger(log.Sugar().Debugf))
	defer undo()

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	timeout, err := resolveTimeout(flags.timeout)
	if err != nil {
		return err
	}

	workers := md2wx.ResolvePoolSize(flags.workers)
	log.Debug("Pool size", zap.Int("workers", workers))

	var pool Pool
	if flags.png {
		sp := md2wx.NewSnapshotPool(workers, timeout, flags.width)
		defer func() {
			if cerr := sp.Close(); cerr != nil {
				log.Warn("Closing browsers", zap.Error(cerr))
			}
		}()
		pool = &poolAdapter{pool: sp}
	}

	return runPreviews(ctx, flags, workers, pool, log)
}

// runPreviews renders the sample document with every theme into its own
// directory. pool is nil when PNG capture is off.
func runPreviews(ctx context.Context, flags *previewFlags, workers int, pool Pool, log *zap.Logger) error {
	if flags.output == "" {
		return fmt.Errorf("%w: --output is required", ErrUsage)
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}
	if flags.common.themeDir != "" {
		cfg.ThemeDir = flags.common.themeDir
	}

	conv, err := md2wx.NewConverter(converterOptions(cfg, log)...)
	if err != nil {
		return err
	}
	themes, err := conv.Themes()
	if err != nil {
		return err
	}

	results := renderPreviews(ctx, conv, pool, themes, flags.output, workers)

	var errs error
	for _, r := range results {
		if r.Err != nil {
			errs = multierr.Append(errs, fmt.Errorf("theme %s: %w", r.Theme, r.Err))
			continue
		}
		log.Debug("Rendered preview",
			zap.String("theme", r.Theme),
			zap.String("dir", r.Dir),
			zap.Duration("took", r.Duration.Round(time.Millisecond)))
	}

	failed := len(multierr.Errors(errs))
	if errs != nil && pool != nil && isBrowserError(errs) {
		errs = fmt.Errorf("%w%s%s", errs, hints.ForBrowserConnect(), hints.ForTimeout())
	}
	log.Info(fmt.Sprintf("Generated %d of %d preview(s) in %s", len(results)-failed, len(results), flags.output))
	return errs
}

// renderPreviews runs one job per theme on a bounded set of workers.
func renderPreviews(ctx context.Context, conv *md2wx.Converter, pool Pool, themes []string, outDir string, workers int) []PreviewResult {
	if len(themes) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency > len(themes) {
		concurrency = len(themes)
	}

	results := make([]PreviewResult, len(themes))
	var wg sync.WaitGroup
	jobs := make(chan int, len(themes))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			var snap Snapshotter
			if pool != nil {
				snap = pool.Acquire()
				defer pool.Release(snap)
			}

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = PreviewResult{Theme: themes[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = renderPreview(ctx, conv, snap, themes[idx], outDir)
			}
		}()
	}

	for i := range themes {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderPreview converts the sample with one theme and writes the HTML and,
// when snap is set, a PNG capture.
func renderPreview(ctx context.Context, conv *md2wx.Converter, snap Snapshotter, theme, outDir string) PreviewResult {
	start := time.Now()
	dir := filepath.Join(outDir, slug.Make(theme))
	result := PreviewResult{Theme: theme, Dir: dir}

	res, err := conv.Convert(ctx, md2wx.Input{
		Markdown: previewMarkdown,
		Theme:    theme,
		NoImages: true,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		result.Duration = time.Since(start)
		return result
	}

	// #nosec G306 -- HTML output is meant to be readable
	if err := os.WriteFile(filepath.Join(dir, previewHTMLName), res.HTML, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		result.Duration = time.Since(start)
		return result
	}

	if snap != nil {
		png, err := snap.Snapshot(ctx, res.HTML, dir)
		if err != nil {
			result.Err = err
			result.Duration = time.Since(start)
			return result
		}
		// #nosec G306 -- PNG output is meant to be readable
		if err := os.WriteFile(filepath.Join(dir, previewPNGName), png, filePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	result.Duration = time.Since(start)
	return result
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2wx.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2wx.MaxPoolSize)
	}
	return nil
}

// resolveTimeout parses the --timeout value. Empty means the default.
func resolveTimeout(value string) (time.Duration, error) {
	if value == "" {
		return defaultTimeout, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (use e.g. 30s, 2m)", ErrInvalidTimeout, value)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, value)
	}
	return d, nil
}

func isBrowserError(err error) bool {
	return exitCodeFor(err) == ExitBrowser
}
