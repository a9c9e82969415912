package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config   string
	themeDir string
	quiet    bool
	verbose  bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	theme      string
	assets     []string
	noImages   bool
	highlight  string
	listThemes bool
}

// previewFlags holds all flags for the previews command.
type previewFlags struct {
	common  commonFlags
	output  string
	png     bool
	workers int
	timeout string
	width   int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.themeDir, "theme-dir", "", "directory of custom themes")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

// parseConvertFlags parses convert flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output HTML file")
	fs.StringVarP(&f.theme, "theme", "t", "", "theme name")
	fs.StringArrayVarP(&f.assets, "assets", "a", nil, "extra image folder (repeatable)")
	fs.BoolVar(&f.noImages, "no-images", false, "render images as placeholders")
	fs.StringVar(&f.highlight, "highlight", "", "syntax highlighting style for code blocks")
	fs.BoolVar(&f.listThemes, "list-themes", false, "list available themes and exit")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err, usage, printConvertUsage)
	}
	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	return f, fs.Args(), nil
}

// parsePreviewFlags parses previews flags and returns positional args.
func parsePreviewFlags(args []string, usage io.Writer) (*previewFlags, []string, error) {
	fs := flag.NewFlagSet("previews", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &previewFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.BoolVar(&f.png, "png", false, "also capture a PNG per theme")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.timeout, "timeout", "", "PNG capture timeout (e.g., 30s, 2m)")
	fs.IntVar(&f.width, "width", 0, "PNG viewport width in CSS pixels (0 = default)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err, usage, printPreviewsUsage)
	}
	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	return f, fs.Args(), nil
}

// usageError prints usage on -h and tags every other parse failure as a
// usage error.
func usageError(err error, w io.Writer, printUsage func(io.Writer)) error {
	if errors.Is(err, flag.ErrHelp) {
		printUsage(w)
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
