package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/buildcond/internal/cmdutil"
	"github.com/opmodel/buildcond/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *cmdutil.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show buildcond version information.

Displays:
  - buildcond version, commit, and build date
  - Go version and platform
  - CUE SDK version used for config validation`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), version.GetInfo().String())
			return nil
		},
	}
}
