package enumtypes

import (
	"fmt"
	"strings"
)

// Arch is a target CPU family as it appears in the manifest's debian-packages section.
type Arch string

const (
	ArchAmd64 Arch = "amd64"
	ArchArm64 Arch = "arm64"
)

// Arches lists every supported architecture.
var Arches = []Arch{ArchAmd64, ArchArm64}

// Platform returns the container platform string for the architecture (e.g. "linux/arm64").
func (a Arch) Platform() string {
	return "linux/" + string(a)
}

func (a Arch) String() string {
	return string(a)
}

// ParseArch accepts either the bare architecture ("arm64") or a container platform ("linux/arm64").
func ParseArch(s string) (Arch, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "linux/")
	switch s {
	case "amd64", "x86_64":
		return ArchAmd64, nil
	case "arm64", "aarch64":
		return ArchArm64, nil
	}
	return "", fmt.Errorf("unknown architecture %q", s)
}

// PlatformConfiguration discriminates builds for the same architecture,
// e.g. discrete vs. integrated GPU.
type PlatformConfiguration string

const (
	PlatformConfigurationDGPU PlatformConfiguration = "dgpu"
	PlatformConfigurationIGPU PlatformConfiguration = "igpu"
)

// PlatformConfigurations is the closed set every manifest version must provide images for.
var PlatformConfigurations = []PlatformConfiguration{
	PlatformConfigurationDGPU,
	PlatformConfigurationIGPU,
}

func (p PlatformConfiguration) String() string {
	return string(p)
}

func ParsePlatformConfiguration(s string) (PlatformConfiguration, error) {
	for _, p := range PlatformConfigurations {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform configuration %q", s)
}

// SdkType is the namespace artifact sections are nested under.
type SdkType string

const (
	SdkHoloscan    SdkType = "holoscan"
	SdkMonaiDeploy SdkType = "monai-deploy"
)

func (s SdkType) String() string {
	return string(s)
}
