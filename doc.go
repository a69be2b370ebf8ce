// Package fontmirror self-hosts web fonts at build time.
//
// It downloads font stylesheets from the Google Fonts css2 API (or takes a
// local CSS template), downloads every remote asset referenced by a url(...)
// token, and rewrites the stylesheet so those references point at local
// copies served under a configurable path prefix.
//
// # Quick Start
//
//	svc := fontmirror.New(fontmirror.WithLogger(logrus.StandardLogger()))
//
//	res, err := svc.RunToFile(ctx, fontmirror.Input{
//	    Families:    []fontmirror.Family{{Name: "Barlow", Weights: []int{500, 700}}},
//	    DownloadDir: "static/fonts",
//	    ServedPath:  "/static/fonts",
//	}, "static/css/fonts.css")
//
// # Pipeline
//
//  1. Stylesheets are fetched concurrently, one request per family. Any
//     failure aborts the run and nothing is written.
//  2. The combined CSS is scanned for url("http(s)://...") tokens. Each asset
//     is downloaded once, sequentially, into the download directory. Files
//     already present are reused without a request.
//  3. Each token is replaced with url("<served path>/<file name>"). Assets
//     that fail to download keep their original remote URL.
//
// The scan is a narrow regular expression over raw text, not a CSS parser.
package fontmirror
