// Package manifesttest holds sample manifests shared by tests.
package manifesttest

import _ "embed"

// ArtifactsJSON is a valid manifest with versions 2.0.0 and 2.1.0.
// 2.1.0 publishes no arm64 dgpu Debian package.
//
//go:embed artifacts.json
var ArtifactsJSON []byte

// MinimalJSON is the smallest valid single-version manifest.
const MinimalJSON = `{
  "2.0.0": {
    "holoscan": {
      "debian-packages": { "amd64": "https://pkg/amd64.deb" },
      "base-images": { "dgpu": "img:dgpu-base", "igpu": "img:igpu-base" },
      "build-images": { "dgpu": "img:dgpu-build", "igpu": "img:igpu-build" }
    },
    "health-probes": "img:health"
  }
}`
