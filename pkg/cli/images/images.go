package images

import (
	"encoding/json"

	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/cli/clicommon"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

const (
	kindBase   = "base"
	kindBuild  = "build"
	kindHealth = "health"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images [flags]",
		Short: "Print the image descriptors published for an SDK version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := cmd.Flags().GetString("kind")
			if err != nil {
				return errors.Wrap(err, "failed to get kind flag")
			}
			sdkVersion, err := clicommon.GetSDKVersion(cmd)
			if err != nil {
				return err
			}
			sources, err := clicommon.GetInitializedSources(cmd)
			if err != nil {
				return errors.Wrap(err, "failed to look up images")
			}

			var descriptors any
			switch kind {
			case kindBase:
				descriptors, err = sources.BaseImages(sdkVersion)
			case kindBuild:
				descriptors, err = sources.BuildImages(sdkVersion)
			case kindHealth:
				descriptors, err = sources.HealthProbes(sdkVersion)
			default:
				return errors.Errorf("unknown image kind %q (want %s, %s or %s)", kind, kindBase, kindBuild, kindHealth)
			}
			if err != nil {
				return errors.AddStack(err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return errors.AddStack(enc.Encode(descriptors))
		},
	}
	clicommon.AddSDKVersionFlag(cmd)
	cmd.Flags().StringP("kind", "k", kindBase, "Image kind: base, build or health")
	return cmd
}
