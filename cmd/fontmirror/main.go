package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// requiredArgs is the number of positional arguments:
// source, output stylesheet, download directory, served path.
const requiredArgs = 4

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain parses arguments, runs the mirror and returns the process exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "fontmirror %s\n", Version)
		return ExitSuccess
	}
	if len(positional) != requiredArgs {
		fmt.Fprintf(env.Stderr, "error: %v: expected %d, got %d\n\n", ErrUsage, requiredArgs, len(positional))
		printUsage(env.Stderr)
		return ExitUsage
	}

	log := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	warnUnknownEnvVars(log)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runMirror(ctx, positional, flags, env, log); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, flags.common.config))
		return exitCodeFor(err)
	}
	return ExitSuccess
}
