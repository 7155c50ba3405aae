package resolver

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/enumtypes"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/manifest"
	"github.com/pingcap/errors"
)

// NotFoundError is returned by image and health-probe lookups for a version
// that is not in the catalogue, or that lacks the requested section.
type NotFoundError struct {
	Version string
	// Section is empty when the version itself is absent.
	Section string
}

func (e *NotFoundError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("version %q not found in manifest", e.Version)
	}
	return fmt.Sprintf("version %q has no %q section", e.Version, e.Section)
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

type release struct {
	baseImages      map[string]any
	buildImages     map[string]any
	healthProbes    any
	hasHealthProbes bool
	debianPackages  any
}

// Catalogue is the validated, read-only form of a manifest. It is safe for
// concurrent use; values handed out are copies.
type Catalogue struct {
	releases map[string]*release
	versions []string
}

// NewCatalogue validates doc and builds a catalogue from it. doc is copied;
// later changes to it are not observed.
func NewCatalogue(doc manifest.Document) (*Catalogue, error) {
	err := manifest.Validate(doc)
	if err != nil {
		return nil, errors.AddStack(err)
	}

	c := &Catalogue{releases: make(map[string]*release, len(doc))}
	for version, entry := range doc {
		// Validate guarantees the section and both image maps are objects
		sdk, _ := entry.SdkSection(manifest.SdkKind)
		base, _ := sdk[manifest.SectionBaseImages].(map[string]any)
		build, _ := sdk[manifest.SectionBuildImages].(map[string]any)
		probes, hasProbes := entry.HealthProbes()

		c.releases[version] = &release{
			baseImages:      cloneObject(base),
			buildImages:     cloneObject(build),
			healthProbes:    cloneValue(probes),
			hasHealthProbes: hasProbes,
			debianPackages:  cloneValue(sdk[manifest.SectionDebianPackages]),
		}
		c.versions = append(c.versions, version)
	}
	sortVersions(c.versions)
	slog.Debug("catalogue built", "versions", c.versions)
	return c, nil
}

// Versions lists the versions present in the manifest, oldest first.
func (c *Catalogue) Versions() []string {
	return slices.Clone(c.versions)
}

func (c *Catalogue) HasVersion(version string) bool {
	_, ok := c.releases[version]
	return ok
}

func (c *Catalogue) lookup(version string) (*release, error) {
	r, ok := c.releases[version]
	if !ok {
		return nil, &NotFoundError{Version: version}
	}
	return r, nil
}

// BaseImages returns the base image descriptors keyed by platform configuration.
func (c *Catalogue) BaseImages(version string) (map[string]any, error) {
	r, err := c.lookup(version)
	if err != nil {
		return nil, err
	}
	return cloneObject(r.baseImages), nil
}

// BuildImages returns the build image descriptors keyed by platform configuration.
func (c *Catalogue) BuildImages(version string) (map[string]any, error) {
	r, err := c.lookup(version)
	if err != nil {
		return nil, err
	}
	return cloneObject(r.buildImages), nil
}

// HealthProbes returns the version level health-probe descriptor.
func (c *Catalogue) HealthProbes(version string) (any, error) {
	r, err := c.lookup(version)
	if err != nil {
		return nil, err
	}
	if !r.hasHealthProbes {
		return nil, &NotFoundError{Version: version, Section: manifest.SectionHealthProbes}
	}
	return cloneValue(r.healthProbes), nil
}

// DebianPackage returns the URI of the Debian package published for the
// combination, and false if there is none.
//
// amd64 publishes one package regardless of platform configuration; arm64
// publishes one per platform configuration. Missing or unexpectedly shaped
// data is reported as absent, never as an error.
func (c *Catalogue) DebianPackage(
	version string, arch enumtypes.Arch, pc enumtypes.PlatformConfiguration,
) (string, bool) {
	r, ok := c.releases[version]
	if !ok {
		return "", false
	}
	sources, ok := r.debianPackages.(map[string]any)
	if !ok {
		return "", false
	}

	switch arch {
	case enumtypes.ArchAmd64:
		uri, ok := sources[string(arch)].(string)
		return uri, ok
	case enumtypes.ArchArm64:
		byConfig, ok := sources[string(arch)].(map[string]any)
		if !ok {
			return "", false
		}
		uri, ok := byConfig[string(pc)].(string)
		return uri, ok
	}
	return "", false
}

// sortVersions orders semantic versions ascending; anything unparsable sorts
// after them, lexically.
func sortVersions(vs []string) {
	slices.SortFunc(vs, func(a, b string) int {
		va, errA := semver.NewVersion(a)
		vb, errB := semver.NewVersion(b)
		switch {
		case errA == nil && errB == nil:
			if c := va.Compare(vb); c != 0 {
				return c
			}
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		}
		return strings.Compare(a, b)
	})
}

func cloneObject(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue deep copies decoded JSON data.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneObject(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
