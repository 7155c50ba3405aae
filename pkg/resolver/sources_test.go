package resolver

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/enumtypes"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/manifest"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/manifest/manifesttest"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/repository"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type cannedDoer struct {
	status int
	body   string
}

func (d *cannedDoer) Do(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: d.status,
		Status:     http.StatusText(d.status),
		Body:       io.NopCloser(strings.NewReader(d.body)),
		Request:    req,
	}, nil
}

// stubLoader hands back a fixed document without checking it.
type stubLoader struct {
	doc manifest.Document
	err error
}

func (l stubLoader) Load(context.Context, string) (manifest.Document, error) {
	return l.doc, l.err
}

func (l stubLoader) LoadDefault(context.Context) (manifest.Document, error) {
	return l.doc, l.err
}

const updatedJSON = `{
  "2.0.0": {
    "holoscan": {
      "debian-packages": { "amd64": "https://pkg/amd64-updated.deb" },
      "base-images": { "dgpu": "img:dgpu-base", "igpu": "img:igpu-base" },
      "build-images": { "dgpu": "img:dgpu-build", "igpu": "img:igpu-build" }
    },
    "health-probes": "img:health"
  }
}`

func newTestSources(t *testing.T, doer repository.HTTPDoer) *Sources {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/artifacts.json", manifesttest.ArtifactsJSON, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/updated.json", []byte(updatedJSON), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/malformed.json", []byte(`{"2.0.0": {}}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/null.json", []byte(`null`), 0o644))
	return NewSources(repository.NewLoader(repository.WithFs(fs), repository.WithHTTPClient(doer)))
}

func TestSources_PanicsBeforeLoad(t *testing.T) {
	t.Parallel()
	s := newTestSources(t, &cannedDoer{status: http.StatusOK})
	require.Nil(t, s.Catalogue())
	require.Panics(t, func() { _, _ = s.BaseImages("2.0.0") })
	require.Panics(t, func() { _, _ = s.DebianPackage("2.0.0", enumtypes.ArchAmd64, enumtypes.PlatformConfigurationDGPU) })
}

func TestSources_LoadLocal(t *testing.T) {
	t.Parallel()
	s := newTestSources(t, &cannedDoer{status: http.StatusOK})
	require.NoError(t, s.Load(t.Context(), "/artifacts.json"))

	base, err := s.BaseImages("2.1.0")
	require.NoError(t, err)
	require.Equal(t, "nvcr.io/nvidia/tensorrt:24.01-py3-igpu", base["igpu"])

	build, err := s.BuildImages("2.1.0")
	require.NoError(t, err)
	require.Equal(t, "nvcr.io/nvidia/clara-holoscan/holoscan:v2.1.0-igpu", build["igpu"])

	probes, err := s.HealthProbes("2.1.0")
	require.NoError(t, err)
	require.Equal(t, "ghcr.io/grpc-ecosystem/grpc-health-probe:v0.4.24", probes)

	uri, ok := s.DebianPackage("2.1.0", enumtypes.ArchArm64, enumtypes.PlatformConfigurationDGPU)
	require.False(t, ok)
	require.Empty(t, uri)
}

func TestSources_LoadDefault(t *testing.T) {
	t.Parallel()
	s := NewSources(stubLoader{doc: decode(t, manifesttest.MinimalJSON)})
	require.NoError(t, s.LoadDefault(t.Context()))
	require.Equal(t, []string{"2.0.0"}, s.Catalogue().Versions())
}

func TestSources_UnvalidatedDocumentIsMalformed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		doc        manifest.Document
		wantTarget string
	}{
		{name: "nil document", doc: nil},
		{name: "missing build images", doc: decode(t, `{"2.0.0": {"holoscan": {"debian-packages": {}, "base-images": {"dgpu": 1, "igpu": 2}}}}`), wantTarget: "holoscan.build-images"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewSources(stubLoader{doc: tt.doc})

			for _, err := range []error{
				s.Load(t.Context(), "/artifacts.json"),
				s.LoadDefault(t.Context()),
			} {
				require.True(t, repository.IsMalformedSource(err), "got %v", err)
				var verr *manifest.ValidationError
				require.ErrorAs(t, err, &verr)
				require.Equal(t, tt.wantTarget, verr.Target)
			}
			require.Nil(t, s.Catalogue())
		})
	}
}

func TestSources_NullManifestKeepsPreviousCatalogue(t *testing.T) {
	t.Parallel()
	s := newTestSources(t, &cannedDoer{status: http.StatusOK, body: "null"})
	require.NoError(t, s.Load(t.Context(), "/artifacts.json"))
	before := s.Catalogue()

	err := s.Load(t.Context(), "/null.json")
	require.True(t, repository.IsMalformedSource(err), "got %v", err)
	require.Same(t, before, s.Catalogue())

	err = s.Load(t.Context(), "https://example.com/artifacts.json")
	require.True(t, repository.IsMalformedSource(err), "got %v", err)
	require.Same(t, before, s.Catalogue())
	require.Equal(t, []string{"2.0.0", "2.1.0"}, s.Catalogue().Versions())
}

func TestSources_FailedLoadWithoutPriorCatalogue(t *testing.T) {
	t.Parallel()
	s := newTestSources(t, &cannedDoer{status: http.StatusForbidden})

	err := s.Load(t.Context(), "https://example.com/artifacts.json")
	require.True(t, repository.IsDownload(err))
	require.Nil(t, s.Catalogue(), "nothing may be installed after a failed load")

	err = s.LoadDefault(t.Context())
	require.True(t, repository.IsDownload(err))
	require.Nil(t, s.Catalogue())
}

func TestSources_FailedReloadKeepsPreviousCatalogue(t *testing.T) {
	t.Parallel()
	s := newTestSources(t, &cannedDoer{status: http.StatusInternalServerError})
	require.NoError(t, s.Load(t.Context(), "/artifacts.json"))
	before := s.Catalogue()

	for _, source := range []string{
		"https://example.com/artifacts.json",
		"http://example.com/artifacts.json",
		"/malformed.json",
		"/null.json",
		"/missing.json",
	} {
		err := s.Load(t.Context(), source)
		require.Error(t, err, source)
		require.Same(t, before, s.Catalogue(), "catalogue changed after failed load of %s", source)
	}

	uri, ok := s.DebianPackage("2.0.0", enumtypes.ArchAmd64, enumtypes.PlatformConfigurationIGPU)
	require.True(t, ok)
	require.Equal(t, "https://developer.download.example.com/holoscan_2.0.0.0-1_amd64.deb", uri)
}

func TestSources_ReloadReplacesWholesale(t *testing.T) {
	t.Parallel()
	s := newTestSources(t, &cannedDoer{status: http.StatusOK})
	require.NoError(t, s.Load(t.Context(), "/artifacts.json"))
	require.NoError(t, s.Load(t.Context(), "/updated.json"))

	require.Equal(t, []string{"2.0.0"}, s.Catalogue().Versions())
	_, err := s.BaseImages("2.1.0")
	require.True(t, IsNotFound(err), "versions from the previous manifest must not survive a reload")

	uri, ok := s.DebianPackage("2.0.0", enumtypes.ArchAmd64, enumtypes.PlatformConfigurationDGPU)
	require.True(t, ok)
	require.Equal(t, "https://pkg/amd64-updated.deb", uri)

	_, ok = s.DebianPackage("2.0.0", enumtypes.ArchArm64, enumtypes.PlatformConfigurationDGPU)
	require.False(t, ok)
}

func TestSources_ConcurrentReadersDuringReload(t *testing.T) {
	t.Parallel()
	s := newTestSources(t, &cannedDoer{status: http.StatusOK})
	require.NoError(t, s.Load(t.Context(), "/artifacts.json"))

	oldURI := "https://developer.download.example.com/holoscan_2.0.0.0-1_amd64.deb"
	newURI := "https://pkg/amd64-updated.deb"

	ctx, cancel := context.WithCancel(t.Context())
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				c := s.Catalogue()
				uri, ok := c.DebianPackage("2.0.0", enumtypes.ArchAmd64, enumtypes.PlatformConfigurationDGPU)
				if !ok || (uri != oldURI && uri != newURI) {
					t.Errorf("unexpected resolution %q (ok=%v)", uri, ok)
					return
				}
				// a single snapshot is internally consistent
				if uri == newURI && c.HasVersion("2.1.0") {
					t.Errorf("observed a partially updated catalogue")
					return
				}
			}
		}()
	}

	for range 20 {
		require.NoError(t, s.Load(t.Context(), "/updated.json"))
		require.NoError(t, s.Load(t.Context(), "/artifacts.json"))
	}
	cancel()
	wg.Wait()
}

func TestSources_SupportedVersionsIndependentOfLoad(t *testing.T) {
	t.Parallel()
	s := newTestSources(t, &cannedDoer{status: http.StatusOK})
	before := s.SupportedVersions()
	require.NoError(t, s.Load(t.Context(), "/artifacts.json"))
	require.Equal(t, before, s.SupportedVersions())
}
