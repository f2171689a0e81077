package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/buildcond/internal/cmdutil"
	"github.com/opmodel/buildcond/internal/conditionals"
	"github.com/opmodel/buildcond/internal/config"
	"github.com/opmodel/buildcond/internal/output"
	"github.com/opmodel/buildcond/internal/pipeline"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd(cfg *cmdutil.GlobalConfig) *cobra.Command {
	var (
		rf cmdutil.ResolveFlags
		of cmdutil.OutputFlags
	)

	c := &cobra.Command{
		Use:   "watch [manifest]",
		Short: "Re-resolve whenever the manifest or config changes",
		Long: `Resolve the manifest, then resolve it again every time the manifest or the
config file changes, until interrupted.

Each time the flags change the new flag set is written to --out-file, or to
stdout as a new document, and the changed flags are logged. Invalid
intermediate edits are reported and skipped.

Examples:
  # Keep the bundler's flag file up to date
  buildcond watch build/modules.yaml -o json --out-file www/build/conditionals.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runWatch(c, args, cfg, &rf, &of)
		},
	}

	rf.AddTo(c)
	of.AddTo(c, true)
	return c
}

func runWatch(c *cobra.Command, args []string, cfg *cmdutil.GlobalConfig, rf *cmdutil.ResolveFlags, of *cmdutil.OutputFlags) error {
	format, err := of.Parse()
	if err != nil {
		return err
	}

	manifestPath := cmdutil.ResolveManifestPath(args)
	passes := 0

	err = pipeline.Watch(c.Context(), pipeline.WatchOptions{
		Resolve: pipeline.ResolveOptions{
			ManifestPath: manifestPath,
			AppModules:   rf.AppModules,
			NoSpinner:    true,
		},
		ConfigPath: cmdutil.WatchableConfigPath(cfg),
		LoadConfig: func() (*config.BuildConfig, error) {
			return cmdutil.LoadBuildConfig(cfg, c.ErrOrStderr())
		},
		OnResult: func(res *pipeline.ResolveResult, changes []conditionals.FlagChange) error {
			passes++
			cmdutil.LogChanges(changes)

			if of.OutFile != "" {
				if err := cmdutil.WriteBuildFile(res.Build, format, of.OutFile); err != nil {
					return err
				}
				output.ManifestLogger(res.ManifestPath).Info(output.FormatCheckmark(fmt.Sprintf("wrote flag set to %s", of.OutFile)))
				return nil
			}

			if passes > 1 && format == output.FormatYAML {
				fmt.Fprintln(c.OutOrStdout(), "---")
			}
			return cmdutil.WriteBuild(res.Build, format, c.OutOrStdout())
		},
	})
	if err != nil {
		return cmdutil.ReportError(c.ErrOrStderr(), "watch failed", err)
	}
	return nil
}
