package resolver

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/enumtypes"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/manifest"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/repository"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/sdk"
	"github.com/pingcap/errors"
)

// ManifestLoader fetches raw manifest documents. *repository.Loader is the
// production implementation; Sources validates whatever a loader returns.
type ManifestLoader interface {
	Load(ctx context.Context, source string) (manifest.Document, error)
	LoadDefault(ctx context.Context) (manifest.Document, error)
}

// Sources owns the current artifact catalogue. A catalogue is only installed
// after it has been fully loaded and validated, so concurrent readers observe
// either the previous catalogue or the new one.
type Sources struct {
	loader  ManifestLoader
	current atomic.Pointer[Catalogue]
}

func NewSources(loader ManifestLoader) *Sources {
	return &Sources{loader: loader}
}

// Load replaces the catalogue with the manifest from source (a local path or
// https:// URL). On error the previous catalogue, if any, stays installed.
func (s *Sources) Load(ctx context.Context, source string) error {
	doc, err := s.loader.Load(ctx, source)
	if err != nil {
		return err
	}
	return s.install(source, doc)
}

// LoadDefault replaces the catalogue with the published manifest.
func (s *Sources) LoadDefault(ctx context.Context) error {
	doc, err := s.loader.LoadDefault(ctx)
	if err != nil {
		return err
	}
	return s.install(repository.DefaultManifestURL, doc)
}

func (s *Sources) install(source string, doc manifest.Document) error {
	c, err := NewCatalogue(doc)
	if err != nil {
		return &repository.MalformedSourceError{Source: source, Err: errors.Cause(err)}
	}
	s.current.Store(c)
	slog.Info("artifact catalogue loaded", "source", source, "versions", c.Versions())
	return nil
}

// Catalogue returns the installed catalogue, or nil before the first successful load.
func (s *Sources) Catalogue() *Catalogue {
	return s.current.Load()
}

func (s *Sources) mustCatalogue() *Catalogue {
	c := s.current.Load()
	if c == nil {
		panic("resolver: artifact catalogue used before a manifest was loaded")
	}
	return c
}

// SupportedVersions returns the SDK versions this build supports. It does not
// depend on what has been loaded.
func (s *Sources) SupportedVersions() []string {
	return sdk.SupportedVersions()
}

// The accessors below panic if no manifest has been loaded yet.

func (s *Sources) BaseImages(version string) (map[string]any, error) {
	return s.mustCatalogue().BaseImages(version)
}

func (s *Sources) BuildImages(version string) (map[string]any, error) {
	return s.mustCatalogue().BuildImages(version)
}

func (s *Sources) HealthProbes(version string) (any, error) {
	return s.mustCatalogue().HealthProbes(version)
}

func (s *Sources) DebianPackage(
	version string, arch enumtypes.Arch, pc enumtypes.PlatformConfiguration,
) (string, bool) {
	return s.mustCatalogue().DebianPackage(version, arch, pc)
}
