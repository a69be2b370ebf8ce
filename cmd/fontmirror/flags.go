package main

import (
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds output and config flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// apiFlags override the api section of the config file.
type apiFlags struct {
	url       string
	display   string
	userAgent string
	timeout   time.Duration
}

// mirrorFlags holds every flag accepted by fontmirror.
type mirrorFlags struct {
	common       commonFlags
	api          apiFlags
	source       string
	fallbackName string
	version      bool
	help         bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show warnings and errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "list every asset")
}

// addAPIFlags adds fonts API flags to a FlagSet.
func addAPIFlags(fs *flag.FlagSet, f *apiFlags) {
	fs.StringVar(&f.url, "api-url", "", "css2 endpoint URL")
	fs.StringVar(&f.display, "display", "", "font-display value")
	fs.StringVar(&f.userAgent, "user-agent", "", "User-Agent sent with every request")
	fs.DurationVar(&f.timeout, "timeout", 0, "per-request timeout (0 = none)")
}

// parseFlags parses args (without the program name) and returns the flags
// and the remaining positional arguments.
func parseFlags(args []string) (*mirrorFlags, []string, error) {
	fs := flag.NewFlagSet("fontmirror", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	f := &mirrorFlags{}
	addCommonFlags(fs, &f.common)
	addAPIFlags(fs, &f.api)
	fs.StringVar(&f.source, "source", "", "source kind: theme or template (default: by extension)")
	fs.StringVar(&f.fallbackName, "fallback-name", "", "file name for asset URLs without a path")
	fs.BoolVar(&f.version, "version", false, "show version")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
