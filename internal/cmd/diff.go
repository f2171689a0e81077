package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/buildcond/internal/cmdutil"
	"github.com/opmodel/buildcond/internal/conditionals"
	oerrors "github.com/opmodel/buildcond/internal/errors"
	"github.com/opmodel/buildcond/internal/output"
)

// baselineName labels the baseline side of a diff.
const baselineName = "baseline"

// NewDiffCmd creates the diff command.
func NewDiffCmd(cfg *cmdutil.GlobalConfig) *cobra.Command {
	var rf cmdutil.ResolveFlags

	c := &cobra.Command{
		Use:   "diff <old> [new]",
		Short: "Compare resolved flag sets",
		Long: `Compare the flag sets of two manifests, resolved with the same configuration.

With a single manifest, the baseline flag set is compared with the resolved
one, which shows every capability the bundler can drop for this app.

Exits 0 whether or not the flag sets differ.

Examples:
  # What does this app not need?
  buildcond diff build/modules.yaml

  # What changed between two builds?
  buildcond diff old/modules.yaml build/modules.yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(c, args, cfg, &rf)
		},
	}

	rf.AddTo(c)
	return c
}

func runDiff(c *cobra.Command, args []string, cfg *cmdutil.GlobalConfig, rf *cmdutil.ResolveFlags) error {
	buildCfg, err := cmdutil.LoadBuildConfig(cfg, c.ErrOrStderr())
	if err != nil {
		return err
	}

	resolve := func(path string) (*conditionals.Build, error) {
		result, err := cmdutil.ResolveManifest(c.Context(), cmdutil.ResolveManifestOpts{
			ManifestPath: path,
			AppModules:   rf.AppModules,
			Config:       buildCfg,
			ErrOut:       c.ErrOrStderr(),
		})
		if err != nil {
			return nil, err
		}
		return result.Build, nil
	}

	var from, to *conditionals.Build
	fromName := baselineName
	toName := args[0]

	if len(args) == 2 {
		fromName, toName = args[0], args[1]
		if from, err = resolve(fromName); err != nil {
			return err
		}
	} else {
		base := conditionals.Baseline()
		from = &base
	}
	if to, err = resolve(toName); err != nil {
		return err
	}

	report, err := output.DiffDocuments(from, to, output.DiffOptions{
		FromName: fromName,
		ToName:   toName,
		UseColor: output.IsTTY(),
	})
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("computing diff: %w", err)}
	}

	changes := conditionals.Changes(from, to)
	if report != "" {
		fmt.Fprint(c.OutOrStdout(), report)
	}
	output.Info(output.StyleSummary.Render(output.DiffSummary(len(changes))),
		"from", fromName, "to", toName)
	return nil
}
