package debian

import (
	"fmt"

	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/cli/clicommon"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debian [flags]",
		Short: "Print the Debian package URI for an SDK version and platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sdkVersion, err := clicommon.GetSDKVersion(cmd)
			if err != nil {
				return err
			}
			arch, pc, err := clicommon.GetPlatform(cmd)
			if err != nil {
				return err
			}
			sources, err := clicommon.GetInitializedSources(cmd)
			if err != nil {
				return errors.Wrap(err, "failed to look up Debian package")
			}

			uri, ok := sources.DebianPackage(sdkVersion, arch, pc)
			if !ok {
				// sparse coverage is routine, not a failure
				fmt.Fprintf(cmd.OutOrStdout(), //nolint:errcheck
					"No Debian package published for %s (%s, %s)\n", sdkVersion, arch, pc)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), uri) //nolint:errcheck
			return nil
		},
	}
	clicommon.AddSDKVersionFlag(cmd)
	clicommon.AddPlatformFlags(cmd)
	return cmd
}
