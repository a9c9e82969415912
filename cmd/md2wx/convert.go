package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	md2wx "github.com/alnah/go-md2wx"
	"github.com/alnah/go-md2wx/internal/config"
	"github.com/alnah/go-md2wx/internal/fileutil"
	"github.com/alnah/go-md2wx/internal/hints"
)

// runConvertCommand parses convert flags and runs one conversion.
func runConvertCommand(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	log := newLogger(env.Stdout, env.Stderr, flags.common.verbose, flags.common.quiet)
	defer func() { _ = log.Sync() }()

	return runConvert(ctx, positional, flags, log, env)
}

// runConvert orchestrates the conversion of a single document.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, log *zap.Logger, env *Environment) error {
	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}
	mergeConvertFlags(flags, cfg)

	conv, err := md2wx.NewConverter(converterOptions(cfg, log)...)
	if err != nil {
		return err
	}

	if flags.listThemes {
		return listThemes(conv, env.Stdout)
	}

	inputPath, err := resolveInputPath(positional)
	if err != nil {
		return err
	}
	if flags.output == "" {
		return fmt.Errorf("%w: --output is required", ErrUsage)
	}

	input, err := md2wx.LoadDocument(inputPath)
	if err != nil {
		return err
	}
	input.Theme = cfg.Theme
	input.AssetDirs = cfg.Assets
	input.NoImages = !cfg.Images.Enabled
	input.OutputDir = filepath.Dir(flags.output)

	if err := fileutil.EnsureParentDir(flags.output); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}

	result, err := conv.Convert(ctx, input)
	if err != nil {
		if errors.Is(err, md2wx.ErrThemeNotFound) {
			names, _ := conv.Themes()
			return fmt.Errorf("%w%s", err, hints.ForThemeNotFound(names))
		}
		return err
	}

	// #nosec G306 -- HTML output is meant to be readable
	if err := os.WriteFile(flags.output, result.HTML, filePermissions); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}

	reportConversion(log, result, flags.output)
	return nil
}

// loadConfig loads the named config, or the defaults when name is empty.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeConvertFlags applies CLI flags over config values (CLI wins).
func mergeConvertFlags(flags *convertFlags, cfg *config.Config) {
	if flags.common.themeDir != "" {
		cfg.ThemeDir = flags.common.themeDir
	}
	if flags.theme != "" {
		cfg.Theme = flags.theme
	}
	if len(flags.assets) > 0 {
		cfg.Assets = flags.assets
	}
	if flags.noImages {
		cfg.Images.Enabled = false
	}
	if flags.highlight != "" {
		cfg.Highlight.Style = flags.highlight
	}
}

// converterOptions maps config values to converter options.
func converterOptions(cfg *config.Config, log *zap.Logger) []md2wx.Option {
	return []md2wx.Option{
		md2wx.WithLogger(log),
		md2wx.WithThemeDir(cfg.ThemeDir),
		md2wx.WithHighlightStyle(cfg.Highlight.Style),
		md2wx.WithSearchLimits(cfg.Search.MaxDepth, cfg.Search.MaxEntries),
	}
}

// resolveInputPath returns the single positional input.
func resolveInputPath(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("%w: usage: md2wx <input.md> -o <output.html>", ErrNoInput)
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected one input file, got %d", ErrUsage, len(args))
	}
}

// listThemes prints one theme name per line.
func listThemes(conv *md2wx.Converter, w io.Writer) error {
	names, err := conv.Themes()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

// reportConversion logs the extraction summary, missing images, and the
// written file.
func reportConversion(log *zap.Logger, result *md2wx.ConvertResult, output string) {
	if result.Summary != "" {
		log.Info(result.Summary)
	}

	missing := len(result.Images) - result.CopiedImages()
	if missing > 0 {
		log.Warn("Some images were not copied"+hints.ForImageNotFound(result.SearchRoots)+hints.ForNoImages(),
			zap.Int("missing", missing))
	}

	log.Info("Created "+output, zap.String("theme", result.Theme))
}
