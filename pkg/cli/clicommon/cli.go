package clicommon

import (
	"context"
	"fmt"

	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/enumtypes"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/repository"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/resolver"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/sdk"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/version"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

type loaderKey struct{}

// ContextWithLoader makes commands run with ctx load manifests through l
// instead of a default repository.Loader.
func ContextWithLoader(ctx context.Context, l *repository.Loader) context.Context {
	return context.WithValue(ctx, loaderKey{}, l)
}

func loaderFromContext(ctx context.Context) *repository.Loader {
	if ctx != nil {
		if l, ok := ctx.Value(loaderKey{}).(*repository.Loader); ok {
			return l
		}
	}
	return repository.NewLoader()
}

// AddManifestFlags registers the flags shared by every command that reads a manifest.
func AddManifestFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("manifest", "m", "",
		"Manifest file path or https:// URL (defaults to the published manifest)")
}

// GetInitializedSources loads the manifest selected by the --manifest flag.
func GetInitializedSources(cmd *cobra.Command) (*resolver.Sources, error) {
	source, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get manifest source")
	}

	sources := resolver.NewSources(loaderFromContext(cmd.Context()))
	if source == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Using the published artifact manifest\n") //nolint:errcheck
		err = sources.LoadDefault(cmd.Context())
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "Using artifact manifest from %s\n", source) //nolint:errcheck
		err = sources.Load(cmd.Context(), source)
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "ERROR: Unable to load artifact manifest:\n%v\n", err) //nolint:errcheck
		return nil, errors.Wrap(err, "failed to load artifact manifest")
	}
	return sources, nil
}

// AddSDKVersionFlag registers --sdk-version on cmd.
func AddSDKVersionFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("sdk-version", "s", "",
		"SDK version (defaults to the installed SDK version)")
}

// GetSDKVersion returns the --sdk-version flag, checked against the supported
// versions, or the installed SDK version when the flag is unset.
func GetSDKVersion(cmd *cobra.Command) (string, error) {
	requested, err := cmd.Flags().GetString("sdk-version")
	if err != nil {
		return "", errors.Wrap(err, "failed to get sdk-version flag")
	}
	v, err := sdk.DetectVersion(sdk.SupportedVersions(), requested, version.InstalledSDKVersion)
	if err != nil {
		return "", errors.Wrap(err, "failed to determine SDK version")
	}
	return v, nil
}

// AddPlatformFlags registers --arch and --platform-config on cmd.
func AddPlatformFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("arch", "a", string(enumtypes.ArchAmd64), "Target architecture (amd64, arm64)")
	cmd.Flags().StringP("platform-config", "p", string(enumtypes.PlatformConfigurationDGPU),
		"Platform configuration (dgpu, igpu)")
}

func GetPlatform(cmd *cobra.Command) (enumtypes.Arch, enumtypes.PlatformConfiguration, error) {
	archFlag, err := cmd.Flags().GetString("arch")
	if err != nil {
		return "", "", errors.Wrap(err, "failed to get arch flag")
	}
	pcFlag, err := cmd.Flags().GetString("platform-config")
	if err != nil {
		return "", "", errors.Wrap(err, "failed to get platform-config flag")
	}
	arch, err := enumtypes.ParseArch(archFlag)
	if err != nil {
		return "", "", errors.AddStack(err)
	}
	pc, err := enumtypes.ParsePlatformConfiguration(pcFlag)
	if err != nil {
		return "", "", errors.AddStack(err)
	}
	return arch, pc, nil
}
