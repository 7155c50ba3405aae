package repository

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/manifest"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/utilio"
	"github.com/pingcap/errors"
	"github.com/spf13/afero"
)

// MaxManifestSize bounds how much of a manifest source is read, after decompression.
const MaxManifestSize = 16 << 20

// HTTPDoer is the transport used for remote manifests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Loader obtains manifest documents from local files or HTTPS endpoints and
// validates them. Loads are synchronous and never retried.
type Loader struct {
	fs     afero.Fs
	client HTTPDoer
	token  string
}

type LoaderOption func(*Loader)

// WithFs sets the filesystem local manifest paths are read from.
func WithFs(fs afero.Fs) LoaderOption {
	return func(l *Loader) {
		l.fs = fs
	}
}

// WithHTTPClient sets the transport for remote manifests.
func WithHTTPClient(c HTTPDoer) LoaderOption {
	return func(l *Loader) {
		l.client = c
	}
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:     afero.NewOsFs(),
		client: http.DefaultClient,
		token:  defaultReadOnlyToken,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load reads and validates the manifest identified by source, which is
// either a local path (optionally file://), or an https:// URL fetched
// without credentials. http:// sources are refused before any request is made.
func (l *Loader) Load(ctx context.Context, source string) (manifest.Document, error) {
	lower := strings.ToLower(source)
	switch {
	case strings.HasPrefix(lower, "https://"):
		return l.download(ctx, source, nil)
	case strings.HasPrefix(lower, "http://"):
		return nil, &SecurityPolicyError{Source: source}
	case strings.HasPrefix(lower, "file://"):
		return l.loadLocal(ctx, source[len("file://"):])
	default:
		return l.loadLocal(ctx, source)
	}
}

func (l *Loader) loadLocal(ctx context.Context, path string) (manifest.Document, error) {
	slog.Info("using manifest file", "path", path)
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, &FileLoadError{Path: path, Err: errors.Wrapf(err, "fs.Open(%q)", path)}
	}
	defer f.Close() //nolint:errcheck

	data, err := utilio.ReadAllLimit(ctx, f, MaxManifestSize)
	if err != nil {
		return nil, &FileLoadError{Path: path, Err: errors.Wrapf(err, "reading %q", path)}
	}
	data, err = decompress(ctx, data)
	if err != nil {
		return nil, &FileLoadError{Path: path, Err: err}
	}
	raw, err := decodeBody(data, isYAML(path))
	if err != nil {
		return nil, &FileLoadError{Path: path, Err: err}
	}
	return validated(path, raw)
}

func (l *Loader) download(ctx context.Context, rawurl string, header http.Header) (manifest.Document, error) {
	slog.Info("downloading manifest file", "url", rawurl)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, &DownloadError{
			URL:    rawurl,
			Reason: "invalid request",
			Err:    errors.Wrapf(err, "http.NewRequestWithContext(%q)", rawurl),
		}
	}
	for k, vs := range header {
		req.Header[k] = vs
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &DownloadError{URL: rawurl, Reason: err.Error(), Err: errors.Wrapf(err, "http.Get(%q)", rawurl)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DownloadError{URL: rawurl, StatusCode: resp.StatusCode, Reason: reasonPhrase(resp)}
	}

	data, err := utilio.ReadAllLimit(ctx, resp.Body, MaxManifestSize)
	if err != nil {
		return nil, &DownloadError{
			URL:        rawurl,
			StatusCode: resp.StatusCode,
			Reason:     "reading response body: " + err.Error(),
			Err:        errors.AddStack(err),
		}
	}
	raw, err := decodeBody(data, false)
	if err != nil {
		return nil, &DownloadError{URL: rawurl, StatusCode: resp.StatusCode, Reason: "invalid manifest body", Err: err}
	}
	return validated(rawurl, raw)
}

func validated(source string, raw any) (manifest.Document, error) {
	doc, err := manifest.FromValue(raw)
	if err != nil {
		return nil, &MalformedSourceError{Source: source, Err: err}
	}
	err = manifest.Validate(doc)
	if err != nil {
		return nil, &MalformedSourceError{Source: source, Err: err}
	}
	slog.Debug("manifest validated", "source", source, "versions", doc.Versions())
	return doc, nil
}

// reasonPhrase extracts "Not Found" from a "404 Not Found" status line.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	if reason == "" {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	return reason
}
