package main

import (
	"log/slog"

	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/cli/clicommon"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/cli/debian"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/cli/detect"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/cli/images"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/cli/validate"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/cli/versions"
	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/version"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

func NewRootCmd(lvl *slog.LevelVar) *cobra.Command {
	cmd := &cobra.Command{
		Use:     version.CLIName,
		Short:   "Discover Holoscan SDK container images and Debian packages",
		Version: version.Version,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := cmd.Flags().GetString("log-level")
			if err != nil {
				return errors.Wrap(err, "failed to get log-level flag")
			}
			return errors.Wrapf(lvl.UnmarshalText([]byte(level)), "invalid log level %q", level)
		},
	}

	cmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	clicommon.AddManifestFlags(cmd)

	cmd.AddCommand(debian.NewCommand())
	cmd.AddCommand(detect.NewCommand())
	cmd.AddCommand(images.NewCommand())
	cmd.AddCommand(validate.NewCommand())
	cmd.AddCommand(versions.NewCommand())

	return cmd
}
