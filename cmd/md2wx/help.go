package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wx <input.md> -o <output.html> [flags]")
	fmt.Fprintln(w, "       md2wx <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  previews   Render a sample document with every theme")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2wx help convert' for conversion flags.")
}

// printConvertUsage prints usage for a conversion.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wx <input.md> -o <output.html> [flags]")
	fmt.Fprintln(w, "       md2wx --list-themes [--theme-dir <dir>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a markdown note to themed, inline-styled HTML.")
	fmt.Fprintln(w, "Images are copied next to the output under images/.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output HTML file")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Theme:")
	fmt.Fprintln(w, "  -t, --theme <name>        Theme name (default: vibelight)")
	fmt.Fprintln(w, "      --theme-dir <dir>     Directory of custom themes")
	fmt.Fprintln(w, "      --list-themes         List available themes and exit")
	fmt.Fprintln(w, "      --highlight <style>   Syntax highlighting style (e.g., monokai)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Images:")
	fmt.Fprintln(w, "  -a, --assets <dir>        Extra image folder, searched first (repeatable)")
	fmt.Fprintln(w, "      --no-images           Render images as placeholders, copy nothing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
	fmt.Fprintln(w)
	printExitCodes(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES")
	fmt.Fprintln(w, "  md2wx note.md -o out/note.html")
	fmt.Fprintln(w, "  md2wx note.md -o out/note.html -t ink-mono -a ~/vault/attachments")
	fmt.Fprintln(w, "  md2wx note.md -o note.html --no-images --highlight monokai")
	fmt.Fprintln(w, "  md2wx --list-themes --theme-dir ./themes")
}

// printPreviewsUsage prints usage for the previews command.
func printPreviewsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wx previews -o <dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the built-in sample document with every available theme.")
	fmt.Fprintln(w, "Each theme gets <dir>/<theme>/preview.html.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "      --theme-dir <dir>     Directory of custom themes")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --png                 Also capture preview.png (requires Chrome)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintf(w, "      --timeout <duration>  PNG capture timeout (default: %s)\n", defaultTimeout)
	fmt.Fprintln(w, "                            Examples: 30s, 2m, 1m30s")
	fmt.Fprintf(w, "      --width <px>          PNG viewport width (default: %d)\n", defaultWidth)
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
	fmt.Fprintln(w)
	printExitCodes(w)
}

func printExitCodes(w io.Writer) {
	fmt.Fprintln(w, "Exit Codes:")
	fmt.Fprintln(w, "  0  Success")
	fmt.Fprintln(w, "  1  General error")
	fmt.Fprintln(w, "  2  Usage error (invalid flags, config, or theme)")
	fmt.Fprintln(w, "  3  I/O error (input not found, output not writable)")
	fmt.Fprintln(w, "  4  Browser error (Chrome not found, capture failed)")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "previews":
		printPreviewsUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2wx version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2wx help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return nil
}
