package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

const appName = "md2wx"

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrWriteOutput        = errors.New("failed to write output")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches a command line and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch args[1] {
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "%s %s\n", appName, Version)
	case "help":
		err = runHelp(args[2:], env)
	case "previews":
		err = runPreviewsCommand(ctx, args[2:], env)
	default:
		err = runConvertCommand(ctx, args[1:], env)
	}

	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "%s: %v\n", appName, err)
	return exitCodeFor(err)
}
