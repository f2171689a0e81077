package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/buildcond/internal/cmdutil"
	"github.com/opmodel/buildcond/internal/output"
)

// NewResolveCmd creates the resolve command.
func NewResolveCmd(cfg *cmdutil.GlobalConfig) *cobra.Command {
	var (
		rf cmdutil.ResolveFlags
		of cmdutil.OutputFlags
	)

	c := &cobra.Command{
		Use:   "resolve [manifest]",
		Short: "Resolve the build conditionals of an app",
		Long: `Resolve the build conditionals of an app and print the flag set.

Feature flags are extracted from the app components and from every module
reachable from the app modules through local imports. Environment flags come
from the build configuration and its target; derived flags are computed last.

Arguments:
  manifest    Module manifest, YAML or JSON (default: ` + cmdutil.DefaultManifestFileName + `)

Examples:
  # Resolve the manifest in the current directory
  buildcond resolve

  # Resolve as a table
  buildcond resolve build/modules.yaml -o table

  # Only treat one module as the app
  buildcond resolve build/modules.yaml --app src/components/app-root/app-root.tsx

  # Write the flag set for the bundler
  buildcond resolve build/modules.yaml -o json --out-file www/build/conditionals.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runResolve(c, args, cfg, &rf, &of)
		},
	}

	rf.AddTo(c)
	of.AddTo(c, true)
	return c
}

func runResolve(c *cobra.Command, args []string, cfg *cmdutil.GlobalConfig, rf *cmdutil.ResolveFlags, of *cmdutil.OutputFlags) error {
	format, err := of.Parse()
	if err != nil {
		return err
	}

	buildCfg, err := cmdutil.LoadBuildConfig(cfg, c.ErrOrStderr())
	if err != nil {
		return err
	}

	result, err := cmdutil.ResolveManifest(c.Context(), cmdutil.ResolveManifestOpts{
		ManifestPath: cmdutil.ResolveManifestPath(args),
		AppModules:   rf.AppModules,
		Config:       buildCfg,
		ErrOut:       c.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	if of.OutFile == "" {
		return cmdutil.WriteBuild(result.Build, format, c.OutOrStdout())
	}

	if err := cmdutil.WriteBuildFile(result.Build, format, of.OutFile); err != nil {
		return err
	}
	output.ManifestLogger(result.ManifestPath).Info(output.FormatCheckmark(fmt.Sprintf("wrote flag set to %s", of.OutFile)))
	return nil
}
