// Package md2wx converts Markdown documents into a single HTML fragment
// styled entirely with inline style attributes, ready to paste into
// rich-text article editors that strip <style> elements and classes.
//
// # Quick Start
//
//	conv, err := md2wx.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	in, err := md2wx.LoadDocument("post.md")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	in.OutputDir = "dist"
//	in.Theme = "ink-mono"
//
//	result, err := conv.Convert(ctx, in)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("dist/post.html", result.HTML, 0o644)
//
// # Conversion Pipeline
//
//  1. Preprocessing (byte order mark, CRLF and CR line endings)
//  2. Image extraction: every ![alt](path) and ![[name]] token is resolved
//     across the search roots, copied to OutputDir/images/img_NNN.ext and
//     rewritten to point at the copy
//  3. Block parsing into a flat sequence (headings, lists, quotes, code, ...)
//  4. Rendering with the theme's styles, inline rules applied per text span
//  5. Assembly inside the themed window header and footer
//
// Missing images never fail a conversion. They keep their sequence number,
// are logged, and are reported in ConvertResult.Images.
//
// # Themes
//
// Three themes are built in (vibelight, finance-professional, ink-mono).
// WithThemeDir adds a directory of JSON or YAML theme files, which shadow
// built-in themes of the same name. Theme problems are fatal and match
// ErrConfiguration.
//
// # Previews
//
// Snapshotter and SnapshotPool render converted HTML to PNG in headless
// Chrome via go-rod, which downloads a managed Chromium on first run.
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package md2wx
