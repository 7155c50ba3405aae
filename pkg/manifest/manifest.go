package manifest

import (
	"maps"
	"slices"

	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/enumtypes"
)

// Section names used inside a manifest version entry.
const (
	SectionDebianPackages = "debian-packages"
	SectionBaseImages     = "base-images"
	SectionBuildImages    = "build-images"
	SectionHealthProbes   = "health-probes"
)

// SdkKind is the key every version entry must nest its artifact sections under.
const SdkKind = enumtypes.SdkHoloscan

// Document is a raw manifest: SDK version string to version entry.
//
//	{
//	  "2.0.0": {
//	    "holoscan": {
//	      "debian-packages": {"amd64": "https://...", "arm64": {"igpu": "...", "dgpu": "..."}},
//	      "base-images": {"dgpu": ..., "igpu": ...},
//	      "build-images": {"dgpu": ..., "igpu": ...}
//	    },
//	    "health-probes": ...
//	  }
//	}
type Document map[string]VersionEntry

// VersionEntry holds the sections published for one SDK version. Descriptor
// values are kept as decoded and never interpreted here.
type VersionEntry map[string]any

// FromValue converts a generically decoded JSON value into a Document. The
// value and each of its members must be objects; anything deeper is checked by
// Validate.
func FromValue(v any) (Document, error) {
	root, ok := asObject(v)
	if !ok {
		return nil, &ValidationError{Problem: problemNotObject}
	}
	doc := make(Document, len(root))
	for _, version := range slices.Sorted(maps.Keys(root)) {
		entry, ok := asObject(root[version])
		if !ok {
			return nil, &ValidationError{Version: version, Problem: problemNotObject}
		}
		doc[version] = entry
	}
	return doc, nil
}

// Versions returns the version keys in lexical order.
func (d Document) Versions() []string {
	return slices.Sorted(maps.Keys(d))
}

// SdkSection returns the section for the given SDK kind, if present and an object.
func (e VersionEntry) SdkSection(kind enumtypes.SdkType) (map[string]any, bool) {
	return asObject(e[string(kind)])
}

// HealthProbes returns the version level health-probe descriptor.
func (e VersionEntry) HealthProbes() (any, bool) {
	v, ok := e[SectionHealthProbes]
	return v, ok
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
