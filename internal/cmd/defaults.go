package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/buildcond/internal/cmdutil"
	"github.com/opmodel/buildcond/internal/conditionals"
)

// NewDefaultsCmd creates the defaults command.
func NewDefaultsCmd(_ *cmdutil.GlobalConfig) *cobra.Command {
	var of cmdutil.OutputFlags

	c := &cobra.Command{
		Use:   "defaults",
		Short: "Print the baseline flag set",
		Long: `Print the baseline flag set: the values every flag holds before any
manifest has been resolved. Nearly every capability is assumed present.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			format, err := of.Parse()
			if err != nil {
				return err
			}
			base := conditionals.Baseline()
			return cmdutil.WriteBuild(&base, format, c.OutOrStdout())
		},
	}

	of.AddTo(c, false)
	return c
}
