package fontmirror

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-fontmirror/internal/fileutil"
)

// assetURLPattern matches url(...) tokens holding an absolute http(s) URL,
// optionally single- or double-quoted. Group 1 is the URL.
var assetURLPattern = regexp.MustCompile(`url\(["']?(https?://[^"')]+)["']?\)`)

// DeriveFilename maps an asset URL to a local file name: the last segment of
// the escaped URL path, or fallback when the path is empty once slashes are
// trimmed. Percent-escapes are kept as-is.
func DeriveFilename(rawURL, fallback string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAssetURL, err)
	}

	name := fallback
	if trimmed := strings.Trim(u.EscapedPath(), "/"); trimmed != "" {
		name = trimmed[strings.LastIndex(trimmed, "/")+1:]
	}

	if err := fileutil.ValidateName(name); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidAssetURL, rawURL, err)
	}
	return name, nil
}

// servedURL joins the served path prefix and a file name with a single '/'.
// The prefix may be a path ("/static/fonts") or an absolute URL.
func servedURL(servedPath, name string) string {
	if servedPath == "" {
		return name
	}
	return strings.TrimRight(servedPath, "/") + "/" + name
}

// cssURL renders a double-quoted url() token.
func cssURL(ref string) string {
	return `url("` + ref + `")`
}

// assetSet tracks file names already available in the download directory:
// downloaded earlier in this run, or present on disk from a previous one.
type assetSet struct {
	dir  string
	seen map[string]bool
}

func newAssetSet(dir string) *assetSet {
	return &assetSet{dir: dir, seen: make(map[string]bool)}
}

// Has reports whether name needs no download. Disk hits are remembered.
func (a *assetSet) Has(name string) bool {
	if a.seen[name] {
		return true
	}
	if fileutil.FileExists(filepath.Join(a.dir, name)) {
		a.seen[name] = true
		return true
	}
	return false
}

// Add records name as available.
func (a *assetSet) Add(name string) {
	a.seen[name] = true
}

// Localize downloads every remote asset referenced by css into downloadDir
// and rewrites the references to servedPath. Assets are processed one at a
// time in match order.
//
// A failed download leaves its token untouched and is reported in the
// returned assets; it is not an error. Failing to create the directory or
// write a file is.
func (s *Service) Localize(ctx context.Context, css, downloadDir, servedPath string) (string, []Asset, error) {
	if downloadDir == "" {
		return "", nil, ErrNoDownloadDir
	}
	if err := fileutil.EnsureDir(downloadDir); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrWriteAsset, err)
	}

	matches := assetURLPattern.FindAllStringSubmatchIndex(css, -1)
	if len(matches) == 0 {
		return css, nil, nil
	}

	available := newAssetSet(downloadDir)
	assets := make([]Asset, 0, len(matches))

	var b strings.Builder
	b.Grow(len(css))
	last := 0

	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}

		token := css[m[0]:m[1]]
		rawURL := css[m[2]:m[3]]

		replacement, asset, err := s.localizeAsset(ctx, token, rawURL, servedPath, available)
		if err != nil {
			return "", nil, err
		}

		b.WriteString(css[last:m[0]])
		b.WriteString(replacement)
		last = m[1]
		assets = append(assets, asset)
	}
	b.WriteString(css[last:])

	return b.String(), assets, nil
}

// localizeAsset handles a single match and returns the text to put in its place.
func (s *Service) localizeAsset(ctx context.Context, token, rawURL, servedPath string, available *assetSet) (string, Asset, error) {
	log := s.log.WithField("url", rawURL)
	asset := Asset{URL: rawURL}

	name, err := DeriveFilename(rawURL, s.cfg.fallbackName)
	if err != nil {
		log.WithError(err).Warn("skipping asset")
		asset.Status = AssetFailed
		asset.Err = err
		return token, asset, nil
	}
	asset.Filename = name

	if available.Has(name) {
		log.WithField("file", name).Debug("asset already present")
		asset.Status = AssetCached
		return cssURL(servedURL(servedPath, name)), asset, nil
	}

	data, err := s.fetcher.Get(ctx, rawURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", Asset{}, ctxErr
		}
		log.WithError(err).Warn("asset download failed, keeping remote URL")
		asset.Status = AssetFailed
		asset.Err = fmt.Errorf("%w: %w", ErrAssetDownload, err)
		return token, asset, nil
	}

	dest := filepath.Join(available.dir, name)
	if err := fileutil.WriteFileAtomic(dest, data); err != nil {
		return "", Asset{}, fmt.Errorf("%w: %s: %w", ErrWriteAsset, dest, err)
	}
	available.Add(name)

	log.WithFields(logrus.Fields{"file": name, "bytes": len(data)}).Debug("asset downloaded")
	asset.Status = AssetDownloaded
	asset.Size = len(data)
	return cssURL(servedURL(servedPath, name)), asset, nil
}
