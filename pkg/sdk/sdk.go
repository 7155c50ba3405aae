// Package sdk knows which SDK versions this build of the tooling supports and
// how to work out which SDK and version a caller is targeting.
package sdk

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/enumtypes"
	"github.com/pingcap/errors"
)

var supportedVersions = []string{"2.0.0"}

// SupportedVersions returns the SDK versions supported by this build, in order.
// The list is fixed at compile time and is unrelated to any loaded manifest.
func SupportedVersions() []string {
	return slices.Clone(supportedVersions)
}

var (
	ErrInvalidSdk            = errors.New("invalid SDK")
	ErrFailedToDetectVersion = errors.New("failed to detect SDK version")
)

var programSdks = map[string]enumtypes.SdkType{
	"holoscan":     enumtypes.SdkHoloscan,
	"monai-deploy": enumtypes.SdkMonaiDeploy,
}

// DetectSdk maps the name the tool was invoked as (e.g. os.Args[0]) to an SDK.
func DetectSdk(program string) (enumtypes.SdkType, error) {
	name := strings.TrimSuffix(filepath.Base(program), filepath.Ext(program))
	if s, ok := programSdks[name]; ok {
		return s, nil
	}
	return "", errors.Wrapf(ErrInvalidSdk, "unrecognized program name %q", name)
}

// DetectVersion picks the SDK version to use. A requested version must be one
// of supported. Otherwise the installed version is reduced to
// major.minor.patch, so "2.0.0-beta-1" selects "2.0.0", and must be supported.
func DetectVersion(supported []string, requested, installed string) (string, error) {
	if requested != "" {
		if slices.Contains(supported, requested) {
			return requested, nil
		}
		return "", errors.Wrapf(ErrInvalidSdk,
			"version %s is not supported; supported versions: %s", requested, strings.Join(supported, ", "))
	}

	if installed == "" {
		return "", errors.Wrap(ErrFailedToDetectVersion, "no installed SDK version found")
	}
	v, err := semver.NewVersion(installed)
	if err != nil {
		return "", errors.Wrapf(ErrFailedToDetectVersion, "parsing installed version %q: %v", installed, err)
	}
	base := fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
	slog.Debug("detected installed SDK version", "installed", installed, "base", base)
	if !slices.Contains(supported, base) {
		return "", errors.Wrapf(ErrFailedToDetectVersion,
			"installed version %s is not supported; supported versions: %s", base, strings.Join(supported, ", "))
	}
	return base, nil
}
