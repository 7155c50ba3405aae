package manifest

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/enumtypes"
)

// ValidationError reports the first structural expectation a document did not meet.
type ValidationError struct {
	// Version is empty when the document itself is at fault.
	Version string
	// Target is the dotted path of the offending key, e.g. "holoscan.base-images.igpu",
	// or empty when the version entry itself is at fault.
	Target string
	// Problem is either "is missing" or "must be an object".
	Problem string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Version == "":
		return "manifest " + e.Problem
	case e.Target == "":
		return fmt.Sprintf("version %q %s", e.Version, e.Problem)
	}
	return fmt.Sprintf("version %q: %q %s", e.Version, e.Target, e.Problem)
}

const (
	problemMissing   = "is missing"
	problemNotObject = "must be an object"
)

var requiredSdkSections = []string{
	SectionDebianPackages,
	SectionBaseImages,
	SectionBuildImages,
}

// Validate checks every version entry of doc, in version order, against the
// structural contract:
//
//  1. the SDK kind key is present
//  2. debian-packages, base-images and build-images are present under it
//  3. base-images and build-images each hold a key for every platform configuration
//
// Descriptor values and the contents of debian-packages are not inspected.
func Validate(doc Document) error {
	if doc == nil {
		return &ValidationError{Problem: problemNotObject}
	}
	slog.Debug("validating manifest", "versions", len(doc))
	for _, version := range doc.Versions() {
		if err := validateEntry(version, doc[version]); err != nil {
			return err
		}
	}
	return nil
}

func validateEntry(version string, entry VersionEntry) error {
	if entry == nil {
		return &ValidationError{Version: version, Problem: problemNotObject}
	}
	kind := string(SdkKind)
	raw, ok := entry[kind]
	if !ok {
		return &ValidationError{Version: version, Target: kind, Problem: problemMissing}
	}
	sdk, ok := asObject(raw)
	if !ok {
		return &ValidationError{Version: version, Target: kind, Problem: problemNotObject}
	}

	for _, section := range requiredSdkSections {
		if _, ok := sdk[section]; !ok {
			return &ValidationError{Version: version, Target: join(kind, section), Problem: problemMissing}
		}
	}

	for _, pc := range enumtypes.PlatformConfigurations {
		for _, section := range []string{SectionBaseImages, SectionBuildImages} {
			images, ok := asObject(sdk[section])
			if !ok {
				return &ValidationError{Version: version, Target: join(kind, section), Problem: problemNotObject}
			}
			if _, ok := images[string(pc)]; !ok {
				return &ValidationError{
					Version: version,
					Target:  join(kind, section, string(pc)),
					Problem: problemMissing,
				}
			}
		}
	}
	return nil
}

func join(parts ...string) string {
	return strings.Join(parts, ".")
}
