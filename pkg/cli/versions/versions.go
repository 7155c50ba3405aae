package versions

import (
	"fmt"
	"slices"

	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/cli/clicommon"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/sdk"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions [flags]",
		Short: "List supported SDK versions and the versions published in the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			supported := sdk.SupportedVersions()
			fmt.Fprint(out, "Supported SDK versions:\n") //nolint:errcheck
			for _, v := range supported {
				fmt.Fprintf(out, "  %s\n", v) //nolint:errcheck
			}

			supportedOnly, err := cmd.Flags().GetBool("supported")
			if err != nil {
				return errors.Wrap(err, "failed to get supported flag")
			}
			if supportedOnly {
				return nil
			}

			sources, err := clicommon.GetInitializedSources(cmd)
			if err != nil {
				return errors.Wrap(err, "failed to list manifest versions")
			}
			fmt.Fprint(out, "Published in manifest:\n") //nolint:errcheck
			for _, v := range sources.Catalogue().Versions() {
				marker := ""
				if !slices.Contains(supported, v) {
					marker = " (unsupported)"
				}
				fmt.Fprintf(out, "  %s%s\n", v, marker) //nolint:errcheck
			}
			return nil
		},
	}
	cmd.Flags().Bool("supported", false, "Only list the supported versions; do not load a manifest")
	return cmd
}
