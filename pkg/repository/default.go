package repository

import (
	"context"
	"net/http"

	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/manifest"
)

// DefaultManifestURL is where the published artifact manifest lives.
const DefaultManifestURL = "https://edge.urm.nvidia.com/artifactory/sw-holoscan-cli-generic/artifacts.json"

// defaultReadOnlyToken is a pre-issued credential scoped to read-only access of
// the public manifest group. It is bundled at package time:
//
//	-ldflags "-X github.com/nvidia-holoscan/holoscan-artifacts/pkg/repository.defaultReadOnlyToken=..."
//
// It is never taken from user input.
var defaultReadOnlyToken = ""

// LoadDefault downloads and validates the published manifest, authenticating
// with the bundled read-only token. A build without a token fails here
// instead of sending an empty credential.
func (l *Loader) LoadDefault(ctx context.Context) (manifest.Document, error) {
	if l.token == "" {
		return nil, &DownloadError{
			URL:    DefaultManifestURL,
			Reason: "no read-only token was bundled with this build; pass --manifest to use another source",
		}
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+l.token)
	return l.download(ctx, DefaultManifestURL, header)
}
