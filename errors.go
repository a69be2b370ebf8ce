package fontmirror

import "errors"

// Sentinel errors for library operations.
var (
	// Input validation errors.
	ErrNoSource          = errors.New("no font families or template given")
	ErrConflictingSource = errors.New("font families and template are mutually exclusive")
	ErrNoDownloadDir     = errors.New("download directory is required")
	ErrInvalidFamily     = errors.New("invalid font family")

	// Fetch errors. Stylesheet failures are fatal; asset failures are recorded per asset.
	ErrStylesheetFetch = errors.New("failed to fetch stylesheet")
	ErrAssetDownload   = errors.New("failed to download asset")
	ErrInvalidAssetURL = errors.New("invalid asset URL")

	// Filesystem errors.
	ErrWriteAsset  = errors.New("failed to write asset file")
	ErrWriteOutput = errors.New("failed to write output stylesheet")
)
