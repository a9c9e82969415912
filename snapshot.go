package md2wx

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2wx/internal/fileutil"
	"github.com/alnah/go-md2wx/internal/pipeline"
	"github.com/alnah/go-md2wx/internal/process"
)

// Snapshot viewport, close to a phone-sized article view.
const (
	DefaultSnapshotWidth = 420
	snapshotHeight       = 900
	snapshotScale        = 2
)

// DefaultSnapshotTimeout bounds page loading when the context has no deadline.
const DefaultSnapshotTimeout = 30 * time.Second

// pageRenderer abstracts PNG capture from an HTML file to enable testing
// without a browser.
type pageRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

var _ pageRenderer = (*rodRenderer)(nil)

// Snapshotter renders converted HTML to PNG in headless Chrome. The browser
// is launched on first use; call Close to release it. Not safe for
// concurrent use; use a SnapshotPool for parallel work.
type Snapshotter struct {
	renderer pageRenderer
}

// NewSnapshotter creates a Snapshotter. A zero timeout means
// DefaultSnapshotTimeout and a zero width means DefaultSnapshotWidth.
func NewSnapshotter(timeout time.Duration, width int) *Snapshotter {
	if timeout <= 0 {
		timeout = DefaultSnapshotTimeout
	}
	if width <= 0 {
		width = DefaultSnapshotWidth
	}
	return &Snapshotter{renderer: &rodRenderer{timeout: timeout, width: width}}
}

// Snapshot captures a full-page PNG of an HTML fragment. Relative image
// sources resolve against baseDir, normally the directory holding images/.
func (s *Snapshotter) Snapshot(ctx context.Context, fragment []byte, baseDir string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := pipeline.RewriteImageSources(string(fragment), baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: rewriting image sources: %v", ErrSnapshot, err)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(wrapDocument(content), "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return s.renderer.RenderFromFile(ctx, tmpPath)
}

// Close releases browser resources.
func (s *Snapshotter) Close() error {
	if s.renderer != nil {
		return s.renderer.Close()
	}
	return nil
}

// wrapDocument turns a fragment into a standalone page.
func wrapDocument(fragment string) string {
	return "<!DOCTYPE html>\n<html>\n<head>\n" +
		`<meta charset="utf-8">` + "\n" +
		`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n" +
		"</head>\n" +
		`<body style="margin: 0; padding: 16px; background: #ffffff;">` + "\n" +
		fragment +
		"\n</body>\n</html>\n"
}

// rodRenderer implements pageRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	width    int
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// RenderFromFile opens a local HTML file at phone width and captures the
// whole page as PNG.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             r.width,
		Height:            snapshotHeight,
		DeviceScaleFactor: snapshotScale,
		Mobile:            true,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	loading := page.Timeout(timeout)
	if err := loading.Navigate("file://" + filePath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := loading.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	png, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	return png, nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	r.kill()
	return err
}

// kill makes sure no Chrome child outlives the renderer.
func (r *rodRenderer) kill() {
	if r.launcher == nil {
		return
	}
	process.KillProcessGroup(r.launcher.PID())
	r.launcher.Kill()
	r.launcher = nil
}
