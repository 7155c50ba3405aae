package version

const (
	CLIName     = "hsartifacts"
	FullVersion = CLIName + " v" + Version
	Version     = "0.1.0"
)

// InstalledSDKVersion is the Holoscan SDK version this tool was packaged with.
// It is set at build time:
//
//	go build -ldflags "-X github.com/nvidia-holoscan/holoscan-artifacts/pkg/version.InstalledSDKVersion=2.0.0"
var InstalledSDKVersion = ""
