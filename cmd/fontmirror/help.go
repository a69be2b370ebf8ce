package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: fontmirror [flags] <source> <output.css> <download-dir> <served-path>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Download the font files referenced by a stylesheet and rewrite it to")
	fmt.Fprintln(w, "point at local copies.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  source          Theme document (.json, .yaml) or CSS template (.css)")
	fmt.Fprintln(w, "  output.css      Rewritten stylesheet, replaced if it exists")
	fmt.Fprintln(w, "  download-dir    Directory for font files, created if missing")
	fmt.Fprintln(w, "  served-path     URL prefix the download directory is served under")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --source <kind>       Source kind: theme, template (default: by extension)")
	fmt.Fprintln(w, "      --api-url <url>       css2 endpoint (default: Google Fonts)")
	fmt.Fprintln(w, "      --display <s>         font-display: auto, block, swap, fallback, optional")
	fmt.Fprintln(w, "      --user-agent <s>      User-Agent header; decides woff2 vs ttf")
	fmt.Fprintln(w, "      --timeout <d>         Per-request timeout, e.g. 30s (default: none)")
	fmt.Fprintln(w, "      --fallback-name <s>   File name for asset URLs without a path")
	fmt.Fprintln(w, "  -q, --quiet               Only show warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose             List every asset")
	fmt.Fprintln(w, "      --version             Show version")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  FONTMIRROR_CONFIG, FONTMIRROR_API_URL, FONTMIRROR_USER_AGENT, FONTMIRROR_TIMEOUT")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  fontmirror theme.json static/css/fonts.css static/fonts /static/fonts")
	fmt.Fprintln(w, "  fontmirror --display optional fonts.tmpl.css out/fonts.css out/fonts /fonts")
}
