package validate

import (
	"fmt"

	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/cli/clicommon"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [flags]",
		Short: "Check that an artifact manifest is well formed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sources, err := clicommon.GetInitializedSources(cmd)
			if err != nil {
				return errors.Wrap(err, "failed to validate manifest")
			}

			versions := sources.Catalogue().Versions()
			fmt.Fprintf(cmd.OutOrStdout(), "Manifest is valid (%d versions):\n", len(versions)) //nolint:errcheck
			for _, v := range versions {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", v) //nolint:errcheck
			}
			return nil
		},
	}
	return cmd
}
