package repository

import (
	"fmt"

	"github.com/pingcap/errors"
)

// SecurityPolicyError is returned for manifest sources that would be fetched
// over plain HTTP. No request is made.
type SecurityPolicyError struct {
	Source string
}

func (e *SecurityPolicyError) Error() string {
	return fmt.Sprintf("downloading manifest files from non-HTTPS servers is not supported: %s", e.Source)
}

// DownloadError is a transport failure or non-success status from a remote manifest source.
type DownloadError struct {
	URL string
	// StatusCode is zero when no response was received.
	StatusCode int
	// Reason is the server's reason phrase, or a description of the transport failure.
	Reason string
	Err    error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("error downloading manifest file from %s: %s", e.URL, e.Reason)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// FileLoadError is an I/O or parse failure for a local manifest file.
type FileLoadError struct {
	Path string
	Err  error
}

func (e *FileLoadError) Error() string {
	return fmt.Sprintf("unable to load manifest file %q: %v", e.Path, e.Err)
}

func (e *FileLoadError) Unwrap() error {
	return e.Err
}

// MalformedSourceError is a manifest that parsed but failed structural validation.
// Err is the *manifest.ValidationError describing the first violation.
type MalformedSourceError struct {
	Source string
	Err    error
}

func (e *MalformedSourceError) Error() string {
	return fmt.Sprintf("%s is not a usable manifest: %v", e.Source, e.Err)
}

func (e *MalformedSourceError) Unwrap() error {
	return e.Err
}

func IsSecurityPolicy(err error) bool {
	_, ok := errors.Cause(err).(*SecurityPolicyError)
	return ok
}

func IsDownload(err error) bool {
	_, ok := errors.Cause(err).(*DownloadError)
	return ok
}

func IsFileLoad(err error) bool {
	_, ok := errors.Cause(err).(*FileLoadError)
	return ok
}

func IsMalformedSource(err error) bool {
	_, ok := errors.Cause(err).(*MalformedSourceError)
	return ok
}
