package sdk

import (
	"testing"

	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/enumtypes"
	"github.com/pingcap/errors"
	"github.com/stretchr/testify/require"
)

func TestSupportedVersions(t *testing.T) {
	t.Parallel()
	vs := SupportedVersions()
	require.Equal(t, []string{"2.0.0"}, vs)

	// callers get a copy
	vs[0] = "mutated"
	require.Equal(t, []string{"2.0.0"}, SupportedVersions())
}

func TestDetectSdk(t *testing.T) {
	t.Parallel()
	s, err := DetectSdk("/path/to/holoscan")
	require.NoError(t, err)
	require.Equal(t, enumtypes.SdkHoloscan, s)

	s, err = DetectSdk("/path/to/monai-deploy")
	require.NoError(t, err)
	require.Equal(t, enumtypes.SdkMonaiDeploy, s)

	_, err = DetectSdk("/path/to/bla")
	require.Equal(t, ErrInvalidSdk, errors.Cause(err))
}

func TestDetectVersion(t *testing.T) {
	t.Parallel()
	supported := []string{"0.6.0", "2.0.0"}
	tests := []struct {
		name      string
		requested string
		installed string
		want      string
		wantErr   error
	}{
		{name: "valid requested version", requested: "0.6.0", installed: "9.9.9", want: "0.6.0"},
		{name: "invalid requested version", requested: "0.1.0", wantErr: ErrInvalidSdk},
		{name: "installed version", installed: "2.0.0", want: "2.0.0"},
		{name: "installed version with pre-release", installed: "0.6.0-beta-1", want: "0.6.0"},
		{name: "installed version unsupported", installed: "0.1.2", wantErr: ErrFailedToDetectVersion},
		{name: "installed version no match", installed: "100", wantErr: ErrFailedToDetectVersion},
		{name: "installed version garbage", installed: "not-a-version", wantErr: ErrFailedToDetectVersion},
		{name: "nothing installed", wantErr: ErrFailedToDetectVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DetectVersion(supported, tt.requested, tt.installed)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.Equal(t, tt.wantErr, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
