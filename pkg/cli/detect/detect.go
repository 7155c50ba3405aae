package detect

import (
	"fmt"

	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/sdk"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/version"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [flags]",
		Short: "Show which SDK and SDK version would be used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			program, err := cmd.Flags().GetString("sdk")
			if err != nil {
				return errors.Wrap(err, "failed to get sdk flag")
			}
			requested, err := cmd.Flags().GetString("sdk-version")
			if err != nil {
				return errors.Wrap(err, "failed to get sdk-version flag")
			}
			installed, err := cmd.Flags().GetString("installed")
			if err != nil {
				return errors.Wrap(err, "failed to get installed flag")
			}

			sdkType, err := sdk.DetectSdk(program)
			if err != nil {
				return errors.AddStack(err)
			}
			v, err := sdk.DetectVersion(sdk.SupportedVersions(), requested, installed)
			if err != nil {
				return errors.AddStack(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "SDK: %s\nVersion: %s\n", sdkType, v) //nolint:errcheck
			return nil
		},
	}
	cmd.Flags().String("sdk", "holoscan", "SDK program name (holoscan, monai-deploy)")
	cmd.Flags().StringP("sdk-version", "s", "", "Requested SDK version")
	cmd.Flags().String("installed", version.InstalledSDKVersion, "Installed SDK version")
	return cmd
}
