package main

import (
	"errors"
	"os"

	fontmirror "github.com/alnah/go-fontmirror"
	"github.com/alnah/go-fontmirror/internal/config"
	"github.com/alnah/go-fontmirror/internal/fetch"
	"github.com/alnah/go-fontmirror/internal/fileutil"
)

// Exit codes for the fontmirror CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Stylesheet written (failed assets included)
	ExitGeneral = 1 // General/unexpected error, interrupted run
	ExitUsage   = 2 // Invalid arguments, flags, config, or theme
	ExitIO      = 3 // Unreadable source, unwritable output or download dir
	ExitNetwork = 4 // Stylesheet request failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Network errors (exit 4)
	if errors.Is(err, fontmirror.ErrStylesheetFetch) ||
		errors.Is(err, fetch.ErrRequest) ||
		errors.Is(err, fetch.ErrHTTPStatus) ||
		errors.Is(err, fetch.ErrBodyTooLarge) ||
		errors.Is(err, fetch.ErrEncoding) {
		return ExitNetwork
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadTemplate) ||
		errors.Is(err, config.ErrThemeNotFound) ||
		errors.Is(err, fileutil.ErrNotDirectory) ||
		errors.Is(err, fontmirror.ErrWriteAsset) ||
		errors.Is(err, fontmirror.ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidSource) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, config.ErrThemeParse) ||
		errors.Is(err, config.ErrThemeField) ||
		errors.Is(err, fontmirror.ErrNoSource) ||
		errors.Is(err, fontmirror.ErrConflictingSource) ||
		errors.Is(err, fontmirror.ErrNoDownloadDir) ||
		errors.Is(err, fontmirror.ErrInvalidFamily) {
		return ExitUsage
	}

	return ExitGeneral
}
